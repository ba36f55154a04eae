package core

import (
	"strings"
	"unicode/utf8"
)

// StatusUnknown is reported when the child process terminated without a
// usable exit code, for example after a signal.
const StatusUnknown = -32768

// Result holds the outcome of one remote command. A non-zero exit is a
// normal result, not an error; only failures to spawn or talk to the
// lxc client surface as errors.
type Result struct {
	Stdout     string
	Stderr     string
	ExitStatus int
}

// Success reports whether the remote command exited zero.
func (r *Result) Success() bool {
	return r.ExitStatus == 0
}

// Output merges stdout and stderr for diagnostics.
func (r *Result) Output() string {
	out := strings.TrimSpace(r.Stdout)
	errOut := strings.TrimSpace(r.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	}
	return out + "\n" + errOut
}

func newResult(raw *rawResult) *Result {
	return &Result{
		Stdout:     normalizeOutput(raw.Stdout),
		Stderr:     normalizeOutput(raw.Stderr),
		ExitStatus: raw.ExitStatus,
	}
}

// normalizeOutput forces captured bytes into valid UTF-8 and collapses
// CRLF line endings so callers always see Unix-style text.
func normalizeOutput(b []byte) string {
	s := string(b)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return strings.ReplaceAll(s, "\r\n", "\n")
}
