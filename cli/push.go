package cli

import (
	"fmt"
	"os"

	"github.com/moorcli/moor/core"
)

// PushCommand uploads a local file or directory to a target.
type PushCommand struct {
	ConfigFile string `long:"config" env:"MOOR_CONFIG" description:"inventory file" default:"./moor.ini"`
	Target     string `long:"target" short:"t" env:"MOOR_TARGET" required:"true" description:"inventory target to push to"`
	LogLevel   string `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level (overrides config)"`
	Logger     core.Logger
}

// Execute pushes SOURCE DEST. Directories upload recursively.
func (c *PushCommand) Execute(positional []string) error {
	ApplyLogLevel(c.LogLevel)
	conf, err := BuildFromFile(c.ConfigFile, c.Logger)
	if err != nil {
		return err
	}
	if c.LogLevel == "" {
		ApplyLogLevel(conf.Global.LogLevel)
	}

	if len(positional) != 2 {
		return fmt.Errorf("%w, got %d arguments", ErrPushUsage, len(positional))
	}
	source, destination := positional[0], positional[1]

	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("stat %s: %w", source, err)
	}

	conn, err := openConnection(conf, c.Target, c.Logger)
	if err != nil {
		return err
	}

	if info.IsDir() {
		if err := conn.WriteRemoteDirectory(source, destination); err != nil {
			return err
		}
	} else {
		if err := conn.WriteRemoteFile(source, destination); err != nil {
			return err
		}
	}

	c.Logger.Noticef("Pushed %s to %s on %s", source, destination, c.Target)
	return nil
}
