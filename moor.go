package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	ini "gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/moorcli/moor/cli"
	"github.com/moorcli/moor/core"
)

var version string
var build string

const defaultConfigFile = "./moor.ini"

func buildLogger(level string) core.Logger {
	logrus.SetOutput(os.Stdout)

	forceColors := false
	if term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("TERM") != "dumb" && os.Getenv("NO_COLOR") == "" {
		forceColors = true
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     forceColors,
		DisableQuote:    true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return &core.LogrusAdapter{Logger: logrus.StandardLogger()}
}

// configLogLevel reads the [global] log-level from the inventory file
// without a full parse, so logging is configured before command dispatch.
func configLogLevel(configFile string) string {
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(configFile)
		if err != nil {
			return ""
		}
		var raw struct {
			Global struct {
				LogLevel string `yaml:"log-level"`
			} `yaml:"global"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return ""
		}
		return raw.Global.LogLevel
	default:
		cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true, InsensitiveKeys: true}, configFile)
		if err != nil {
			return ""
		}
		sec, err := cfg.GetSection("global")
		if err != nil {
			return ""
		}
		return sec.Key("log-level").String()
	}
}

// exitCode clamps a remote exit status into the range the OS accepts.
// Unknown statuses map to a plain failure.
func exitCode(status int) int {
	if status < 1 || status > 255 {
		return 1
	}
	return status
}

func main() {
	// Pre-parse the log-level and config flags so the logger is ready
	// before the real parser dispatches a command.
	var pre struct {
		LogLevel   string `long:"log-level"`
		ConfigFile string `long:"config"`
	}
	cliArgs := os.Args[1:]
	preParser := flags.NewParser(&pre, flags.IgnoreUnknown)
	_, _ = preParser.ParseArgs(cliArgs)

	if pre.ConfigFile == "" {
		pre.ConfigFile = defaultConfigFile
	}
	if pre.LogLevel == "" {
		pre.LogLevel = configLogLevel(pre.ConfigFile)
	}

	logger := buildLogger(pre.LogLevel)

	parser := flags.NewNamedParser("moor", flags.Default)
	_, _ = parser.AddCommand("run", "Run a command on a target", "", &cli.RunCommand{
		Logger: logger, LogLevel: pre.LogLevel, ConfigFile: pre.ConfigFile,
	})
	_, _ = parser.AddCommand("push", "Upload a file or directory to a target", "", &cli.PushCommand{
		Logger: logger, LogLevel: pre.LogLevel, ConfigFile: pre.ConfigFile,
	})
	_, _ = parser.AddCommand("script", "Run a local script on a target", "", &cli.ScriptCommand{
		Logger: logger, LogLevel: pre.LogLevel, ConfigFile: pre.ConfigFile,
	})
	_, _ = parser.AddCommand("check", "Check that inventory targets are reachable", "", &cli.CheckCommand{
		Logger: logger, LogLevel: pre.LogLevel, ConfigFile: pre.ConfigFile,
	})
	_, _ = parser.AddCommand("history", "Show recent executions", "", &cli.HistoryCommand{
		Logger: logger, LogLevel: pre.LogLevel, ConfigFile: pre.ConfigFile,
	})
	_, _ = parser.AddCommand("validate", "Validate the inventory file", "", &cli.ValidateCommand{
		Logger: logger, LogLevel: pre.LogLevel, ConfigFile: pre.ConfigFile,
	})
	_, _ = parser.AddCommand("init", "Create an inventory file interactively", "", &cli.InitCommand{
		Logger: logger, LogLevel: pre.LogLevel,
	})

	if _, err := parser.ParseArgs(cliArgs); err != nil {
		if flagErr, ok := errors.AsType[*flags.Error](err); ok {
			if flagErr.Type == flags.ErrHelp {
				return
			}
			parser.WriteHelp(os.Stdout)
			fmt.Printf("\nBuild information\n  commit: %s\n  date: %s\n", version, build)
			os.Exit(1)
		}
		if exitErr, ok := errors.AsType[core.NonZeroExitError](err); ok {
			os.Exit(exitCode(exitErr.ExitCode))
		}
		os.Exit(1)
	}
}
