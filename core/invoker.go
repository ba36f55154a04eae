package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/armon/circbuf"
)

const (
	// lxcBinary is resolved through PATH so tests and alternative
	// client builds can interpose their own executable.
	lxcBinary = "lxc"

	// maxStreamSize caps captured output per stream; on overflow the
	// most recent bytes win.
	maxStreamSize = 10 * 1024 * 1024
)

// rawResult is the unprocessed outcome of one lxc invocation.
type rawResult struct {
	Stdout     []byte
	Stderr     []byte
	ExitStatus int
}

// invoker runs one lxc subcommand to completion. Implementations
// return an error only when the process could not be spawned or spoken
// to; a non-zero exit is a result, not an error.
type invoker interface {
	Run(subcommand []string, extra []string, stdin io.Reader) (*rawResult, error)
}

// cliInvoker shells out to the lxc client on PATH.
type cliInvoker struct {
	logger Logger
}

func (in *cliInvoker) Run(subcommand, extra []string, stdin io.Reader) (*rawResult, error) {
	argv := make([]string, 0, len(subcommand)+len(extra))
	argv = append(argv, subcommand...)
	argv = append(argv, extra...)

	outBuf, err := circbuf.NewBuffer(maxStreamSize)
	if err != nil {
		return nil, fmt.Errorf("output buffer: %w", err)
	}
	errBuf, err := circbuf.NewBuffer(maxStreamSize)
	if err != nil {
		return nil, fmt.Errorf("error buffer: %w", err)
	}

	in.logger.Debugf("Executing `%s %s`", lxcBinary, strings.Join(argv, " "))

	// #nosec G204 -- argv is assembled from validated target fields
	cmd := exec.Command(lxcBinary, argv...)
	cmd.Stdout = outBuf
	cmd.Stderr = errBuf
	cmd.Stdin = stdin
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		if _, ok := errors.AsType[*exec.ExitError](err); !ok {
			return nil, fmt.Errorf("run %s: %w", lxcBinary, err)
		}
	}

	return &rawResult{
		Stdout:     outBuf.Bytes(),
		Stderr:     errBuf.Bytes(),
		ExitStatus: exitStatus(cmd.ProcessState),
	}, nil
}

// exitStatus maps the process state onto the transport's exit code
// contract. Missing or signal-terminated states report StatusUnknown.
func exitStatus(state *os.ProcessState) int {
	if state == nil || !state.Exited() {
		return StatusUnknown
	}
	return state.ExitCode()
}

// runJSON invokes a subcommand in structured output mode and decodes
// stdout into v.
func runJSON(in invoker, subcommand []string, v any) error {
	res, err := in.Run(subcommand, []string{"--format", "json"}, nil)
	if err != nil {
		return err
	}
	if res.ExitStatus != 0 {
		return fmt.Errorf("%s %s exited %d: %s", lxcBinary, strings.Join(subcommand, " "),
			res.ExitStatus, strings.TrimSpace(normalizeOutput(res.Stderr)))
	}
	if err := json.Unmarshal(res.Stdout, v); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedOutput, lxcBinary, strings.Join(subcommand, " "), err)
	}
	return nil
}
