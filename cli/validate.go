package cli

import (
	"encoding/json"
	"fmt"

	"github.com/moorcli/moor/core"
)

// ValidateCommand validates the inventory file
type ValidateCommand struct {
	ConfigFile string `long:"config" env:"MOOR_CONFIG" description:"inventory file" default:"./moor.ini"`
	LogLevel   string `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level (overrides config)"`
	Logger     core.Logger
}

// Execute parses the inventory, checks every target constructs a valid
// connection and dumps the result.
func (c *ValidateCommand) Execute(_ []string) error {
	ApplyLogLevel(c.LogLevel)
	c.Logger.Debugf("Validating %q ... ", c.ConfigFile)
	conf, err := BuildFromFile(c.ConfigFile, c.Logger)
	if err != nil {
		c.Logger.Errorf("ERROR")
		return err
	}
	if c.LogLevel == "" {
		ApplyLogLevel(conf.Global.LogLevel)
	}

	for _, name := range conf.TargetNames() {
		if _, err := core.NewConnection(conf.Targets[name].Target(name), c.Logger); err != nil {
			c.Logger.Errorf("ERROR")
			return err
		}
	}

	out, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	c.Logger.Debugf("OK")
	return nil
}
