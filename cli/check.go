package cli

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/moorcli/moor/core"
)

// CheckCommand connects to inventory targets and reports reachability.
type CheckCommand struct {
	ConfigFile string `long:"config" env:"MOOR_CONFIG" description:"inventory file" default:"./moor.ini"`
	Limit      string `long:"limit" short:"l" description:"boolean expression over name, host and remote selecting targets"`
	LogLevel   string `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level (overrides config)"`
	Logger     core.Logger
}

// limitEnv is the evaluation environment of a --limit expression.
type limitEnv struct {
	Name   string `expr:"name"`
	Host   string `expr:"host"`
	Remote string `expr:"remote"`
}

func limitEnvFor(name string, tc *TargetConfig) limitEnv {
	remote := tc.ServiceURL
	if remote == "" {
		remote = "local"
	}
	return limitEnv{Name: name, Host: tc.Host, Remote: remote}
}

// compileLimit compiles a --limit expression into a boolean program.
func compileLimit(limit string) (*vm.Program, error) {
	program, err := expr.Compile(limit, expr.Env(limitEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid limit %q: %w", limit, err)
	}
	return program, nil
}

func evalLimit(program *vm.Program, env limitEnv) (bool, error) {
	output, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("limit evaluation failed: %w", err)
	}
	keep, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("limit must return a boolean, got %T", output)
	}
	return keep, nil
}

// Execute connects to every matching target in turn. It fails when any
// target is unreachable or nothing matched.
func (c *CheckCommand) Execute(_ []string) error {
	ApplyLogLevel(c.LogLevel)
	conf, err := BuildFromFile(c.ConfigFile, c.Logger)
	if err != nil {
		return err
	}
	if c.LogLevel == "" {
		ApplyLogLevel(conf.Global.LogLevel)
	}

	var program *vm.Program
	if c.Limit != "" {
		if program, err = compileLimit(c.Limit); err != nil {
			return err
		}
	}

	checked, failed := 0, 0
	for _, name := range conf.TargetNames() {
		tc := conf.Targets[name]
		if program != nil {
			keep, err := evalLimit(program, limitEnvFor(name, tc))
			if err != nil {
				return err
			}
			if !keep {
				continue
			}
		}
		checked++

		conn, err := core.NewConnection(tc.Target(name), c.Logger)
		if err == nil {
			err = conn.Connect()
		}
		if err != nil {
			failed++
			c.Logger.Errorf("%s: %v", name, err)
			continue
		}
		info := conn.Container()
		c.Logger.Noticef("%s: %s is %s on remote %q", name, info.Name, info.Status, conn.Remote())
	}

	if checked == 0 {
		if c.Limit != "" {
			return fmt.Errorf("%w: %q", ErrNoTargetsMatched, c.Limit)
		}
		return ErrNoTargets
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTargetsUnreachable, failed, checked)
	}
	c.Logger.Noticef("All %d targets reachable", checked)
	return nil
}
