package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/moorcli/moor/core"
)

// ScriptCommand uploads a local script into a scratch directory on the
// target, runs it and cleans up afterwards.
type ScriptCommand struct {
	ConfigFile string   `long:"config" env:"MOOR_CONFIG" description:"inventory file" default:"./moor.ini"`
	Target     string   `long:"target" short:"t" env:"MOOR_TARGET" required:"true" description:"inventory target to run against"`
	Env        []string `long:"env" short:"e" description:"remote environment entry NAME=VALUE, repeatable"`
	EnvFile    string   `long:"env-file" description:"dotenv file merged into the remote environment"`
	Name       string   `long:"name" description:"filename for the uploaded script, defaults to its basename"`
	Stdin      bool     `long:"stdin" description:"stream local stdin to the script"`
	LogLevel   string   `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level (overrides config)"`
	Logger     core.Logger
}

// Execute runs SCRIPT [ARGS...] remotely through a tempdir.
func (c *ScriptCommand) Execute(positional []string) error {
	ApplyLogLevel(c.LogLevel)
	conf, err := BuildFromFile(c.ConfigFile, c.Logger)
	if err != nil {
		return err
	}
	if c.LogLevel == "" {
		ApplyLogLevel(conf.Global.LogLevel)
	}

	if len(positional) == 0 {
		return ErrScriptUsage
	}
	scriptPath, scriptArgs := positional[0], positional[1:]
	if _, err := os.Stat(scriptPath); err != nil {
		return fmt.Errorf("stat %s: %w", scriptPath, err)
	}

	env, err := buildEnvironment(c.Env, c.EnvFile)
	if err != nil {
		return err
	}

	conn, err := openConnection(conf, c.Target, c.Logger)
	if err != nil {
		return err
	}

	var res *core.Result
	err = conn.WithRemoteTempdir(func(dir string) error {
		remotePath, err := conn.WriteRemoteExecutable(dir, scriptPath, c.Name)
		if err != nil {
			return err
		}

		opts := core.ExecuteOptions{Environment: env}
		if c.Stdin {
			opts.Stdin = os.Stdin
		}

		started := time.Now()
		r, err := conn.Execute(append([]string{remotePath}, scriptArgs...), opts)
		if err != nil {
			return err
		}
		res = r

		recorded := strings.Join(append([]string{scriptPath}, scriptArgs...), " ")
		recordExecution(conf, c.Logger, conn, c.Target, recorded, r.ExitStatus, started)
		return nil
	})
	if err != nil {
		return err
	}

	printResult(res)
	if !res.Success() {
		return core.NonZeroExitError{ExitCode: res.ExitStatus}
	}
	return nil
}
