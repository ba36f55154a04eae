package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gobs/args"
	"github.com/joho/godotenv"

	"github.com/moorcli/moor/core"
)

// RunCommand executes a single command on an inventory target.
type RunCommand struct {
	ConfigFile  string   `long:"config" env:"MOOR_CONFIG" description:"inventory file" default:"./moor.ini"`
	Target      string   `long:"target" short:"t" env:"MOOR_TARGET" required:"true" description:"inventory target to run against"`
	Command     string   `long:"command" short:"c" description:"command line to run, parsed shell-style"`
	Env         []string `long:"env" short:"e" description:"remote environment entry NAME=VALUE, repeatable"`
	EnvFile     string   `long:"env-file" description:"dotenv file merged into the remote environment"`
	Interpreter string   `long:"interpreter" description:"interpreter command prepended to the command"`
	Stdin       bool     `long:"stdin" description:"stream local stdin to the remote process"`
	LogLevel    string   `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level (overrides config)"`
	Logger      core.Logger
}

// Execute runs the command given after -- (or via -c) on the target.
// A non-zero remote exit surfaces as NonZeroExitError so main can
// mirror the exit code.
func (c *RunCommand) Execute(positional []string) error {
	ApplyLogLevel(c.LogLevel)
	conf, err := BuildFromFile(c.ConfigFile, c.Logger)
	if err != nil {
		return err
	}
	if c.LogLevel == "" {
		ApplyLogLevel(conf.Global.LogLevel)
	}

	command, err := buildCommand(c.Command, positional)
	if err != nil {
		return err
	}
	env, err := buildEnvironment(c.Env, c.EnvFile)
	if err != nil {
		return err
	}

	conn, err := openConnection(conf, c.Target, c.Logger)
	if err != nil {
		return err
	}

	opts := core.ExecuteOptions{Environment: env}
	if c.Interpreter != "" {
		opts.Interpreter = args.GetArgs(c.Interpreter)
	}
	if c.Stdin {
		opts.Stdin = os.Stdin
	}

	started := time.Now()
	res, err := conn.Execute(command, opts)
	if err != nil {
		return err
	}
	recordExecution(conf, c.Logger, conn, c.Target, strings.Join(command, " "), res.ExitStatus, started)

	printResult(res)
	if !res.Success() {
		return core.NonZeroExitError{ExitCode: res.ExitStatus}
	}
	return nil
}

// openConnection resolves an inventory target and establishes its
// session.
func openConnection(conf *Config, name string, logger core.Logger) (*core.Connection, error) {
	target, err := conf.Target(name)
	if err != nil {
		return nil, err
	}
	conn, err := core.NewConnection(target, logger)
	if err != nil {
		return nil, err
	}
	if err := conn.Connect(); err != nil {
		return nil, err
	}
	return conn, nil
}

// buildCommand picks the remote command from either the -c flag or the
// positional arguments after --.
func buildCommand(flag string, positional []string) ([]string, error) {
	switch {
	case flag != "" && len(positional) > 0:
		return nil, ErrCommandConflict
	case flag != "":
		return args.GetArgs(flag), nil
	case len(positional) > 0:
		return positional, nil
	}
	return nil, ErrCommandMissing
}

// buildEnvironment merges a dotenv file with NAME=VALUE flag entries;
// flag entries win.
func buildEnvironment(entries []string, envFile string) (map[string]string, error) {
	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		env = fileEnv
	}
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEnvEntry, entry)
		}
		env[name] = value
	}
	return env, nil
}

// printResult forwards the captured remote streams to the local ones.
func printResult(res *core.Result) {
	if res.Stdout != "" {
		fmt.Fprint(os.Stdout, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}
}
