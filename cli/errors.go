package cli

import "errors"

// Validation errors
var (
	ErrTargetNameRequired = errors.New("target section must have a name")
	ErrUnknownTarget      = errors.New("unknown target")
	ErrCommandMissing     = errors.New("no command given")
	ErrCommandConflict    = errors.New("use either --command or positional arguments, not both")
	ErrInvalidEnvEntry    = errors.New("environment entries must look like NAME=VALUE")
	ErrPushUsage          = errors.New("push needs exactly a source and a destination")
	ErrScriptUsage        = errors.New("script needs a local script path")
	ErrNoHistoryFile      = errors.New("no history-file configured in [global]")
	ErrTargetsUnreachable = errors.New("unreachable targets")
	ErrNoTargetsMatched   = errors.New("no targets matched the limit expression")
	ErrNoTargets          = errors.New("inventory has no targets")
)
