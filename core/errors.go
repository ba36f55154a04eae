package core

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failed transport operation. Codes are stable
// strings so callers can branch on the failure class without parsing
// messages.
type ErrorCode string

const (
	ConnectError ErrorCode = "CONNECT_ERROR"
	WriteError   ErrorCode = "WRITE_ERROR"
	MkdirError   ErrorCode = "MKDIR_ERROR"
	TempdirError ErrorCode = "TEMPDIR_ERROR"
	ChmodError   ErrorCode = "CHMOD_ERROR"
)

// Common errors used across the package
var (
	// Target errors
	ErrMissingHost = errors.New("target has no host")

	// Session errors
	ErrRemoteNotFound    = errors.New("remote not found")
	ErrContainerNotFound = errors.New("container not found")
	ErrNotConnected      = errors.New("connection not established")

	// CLI output errors
	ErrMalformedOutput = errors.New("unparseable lxc output")
)

// TransportError reclassifies a failed transport operation into a
// stable code plus a human-readable message. The original cause, when
// there is one, stays reachable through errors.Is/errors.As chains.
type TransportError struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *TransportError) Unwrap() error { return e.Err }

func newConnectError(target string, err error) *TransportError {
	return &TransportError{Code: ConnectError, Msg: fmt.Sprintf("failed to connect to %s", target), Err: err}
}

func newFileError(code ErrorCode, msg string) *TransportError {
	return &TransportError{Code: code, Msg: msg}
}

// IsTransportError reports whether err carries the given code.
func IsTransportError(err error, code ErrorCode) bool {
	te, ok := errors.AsType[*TransportError](err)
	return ok && te.Code == code
}

// NonZeroExitError represents a remote command exit with non-zero code
type NonZeroExitError struct {
	ExitCode int
}

func (e NonZeroExitError) Error() string {
	return fmt.Sprintf("non-zero exit code: %d", e.ExitCode)
}

// IsNonZeroExitError checks if the error is a non-zero exit code error
func IsNonZeroExitError(err error) bool {
	_, ok := errors.AsType[NonZeroExitError](err)
	return ok
}
