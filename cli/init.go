package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/manifoldco/promptui"
	"gopkg.in/ini.v1"

	"github.com/moorcli/moor/core"
)

// InitCommand is an interactive wizard that writes a starter inventory.
type InitCommand struct {
	Output   string `long:"output" short:"o" description:"Output file path" default:"./moor.ini"`
	LogLevel string `long:"log-level" env:"MOOR_LOG_LEVEL" description:"Set log level"`
	Logger   core.Logger
}

// initConfig holds the inventory being built by the wizard.
type initConfig struct {
	LogLevel    string
	HistoryFile string
	Targets     []initTargetConfig
}

// initTargetConfig is one wizard-created inventory entry.
type initTargetConfig struct {
	TargetName string
	Host       string
	Remote     string
	Tmpdir     string
}

func (t *initTargetConfig) ToINI(section *ini.Section) {
	section.Key("host").SetValue(t.Host)
	if t.Remote != "" && t.Remote != "local" {
		section.Key("service-url").SetValue(t.Remote)
	}
	if t.Tmpdir != "" {
		section.Key("tmpdir").SetValue(t.Tmpdir)
	}
}

// Execute runs the interactive inventory wizard
func (c *InitCommand) Execute(_ []string) error {
	ApplyLogLevel(c.LogLevel)

	c.Logger.Noticef("🚀 Welcome to moor setup!")
	c.Logger.Noticef("This wizard will help you describe the containers you want to reach.")

	if _, err := os.Stat(c.Output); err == nil {
		if !c.confirmOverwrite() {
			c.Logger.Noticef("Setup canceled")
			return nil
		}
	}

	config := &initConfig{}

	if err := c.promptGlobalSettings(config); err != nil {
		return fmt.Errorf("failed to gather global settings: %w", err)
	}
	if err := c.promptTargets(config); err != nil {
		return fmt.Errorf("failed to gather targets: %w", err)
	}
	if err := c.saveConfig(config); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	c.Logger.Noticef("✅ Inventory saved to: %s", c.Output)

	if err := c.postCreationActions(); err != nil {
		c.Logger.Warningf("Post-creation action failed: %v", err)
	}

	c.printNextSteps()
	return nil
}

// confirmOverwrite asks the user to confirm overwriting an existing file
func (c *InitCommand) confirmOverwrite() bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("File %s already exists. Overwrite", c.Output),
		IsConfirm: true,
		Default:   "n",
	}
	_, err := prompt.Run()
	return err == nil
}

// promptGlobalSettings gathers the [global] section
func (c *InitCommand) promptGlobalSettings(config *initConfig) error {
	c.Logger.Noticef("=== Global Settings ===")

	logLevelPrompt := promptui.Select{
		Label:     "Log level",
		Items:     []string{"panic", "fatal", "error", "warning", "info", "debug", "trace"},
		CursorPos: 4, // Default to "info"
	}
	var err error
	_, config.LogLevel, err = logLevelPrompt.Run()
	if err != nil {
		return err
	}

	historyPrompt := promptui.Prompt{
		Label:   "History database path (optional, empty disables history)",
		Default: "",
	}
	config.HistoryFile, err = historyPrompt.Run()
	if err != nil {
		return err
	}

	return nil
}

// promptTargets gathers inventory targets
func (c *InitCommand) promptTargets(config *initConfig) error {
	c.Logger.Noticef("=== Targets ===")
	c.Logger.Noticef("Let's describe your first container target.")

	for {
		target, err := c.promptTarget()
		if err != nil {
			return err
		}

		config.Targets = append(config.Targets, *target)
		c.Logger.Noticef("✓ Added target: %s (container %s)", target.TargetName, target.Host)

		addMore := promptui.Prompt{
			Label:     "Add another target",
			IsConfirm: true,
			Default:   "n",
		}
		if _, err := addMore.Run(); err != nil {
			break
		}
	}

	if len(config.Targets) == 0 {
		c.Logger.Warningf("⚠️  Warning: no targets configured. moor has nothing to connect to.")
	}
	return nil
}

// promptTarget prompts for one inventory entry
func (c *InitCommand) promptTarget() (*initTargetConfig, error) {
	target := &initTargetConfig{}

	namePrompt := promptui.Prompt{
		Label:    "Target name (alphanumeric, hyphens, underscores)",
		Validate: validateTargetName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, err
	}
	target.TargetName = name

	hostPrompt := promptui.Prompt{
		Label:    "Container name",
		Default:  name,
		Validate: validateContainerName,
	}
	target.Host, err = hostPrompt.Run()
	if err != nil {
		return nil, err
	}

	remotePrompt := promptui.Prompt{
		Label:   "LXD remote",
		Default: "local",
	}
	target.Remote, err = remotePrompt.Run()
	if err != nil {
		return nil, err
	}

	tmpdirPrompt := promptui.Prompt{
		Label:   "Tempdir base inside the container (optional)",
		Default: "",
	}
	target.Tmpdir, err = tmpdirPrompt.Run()
	if err != nil {
		return nil, err
	}

	return target, nil
}

// validateTargetName checks a wizard-entered target name
func validateTargetName(input string) error {
	if input == "" {
		return fmt.Errorf("target name cannot be empty")
	}
	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(input) {
		return fmt.Errorf("target name must be alphanumeric with hyphens or underscores only")
	}
	return nil
}

// validateContainerName checks a wizard-entered container name
func validateContainerName(input string) error {
	if input == "" {
		return fmt.Errorf("container name cannot be empty")
	}
	if !regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`).MatchString(input) {
		return fmt.Errorf("container names are alphanumeric with interior hyphens")
	}
	return nil
}

// saveConfig writes the inventory to an INI file
func (c *InitCommand) saveConfig(config *initConfig) error {
	dir := filepath.Dir(c.Output)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	cfg := ini.Empty()

	global := cfg.Section("global")
	if config.LogLevel != "" {
		global.Key("log-level").SetValue(config.LogLevel)
	}
	if config.HistoryFile != "" {
		global.Key("history-file").SetValue(config.HistoryFile)
	}

	for i := range config.Targets {
		target := &config.Targets[i]
		sectionName := fmt.Sprintf("%s \"%s\"", targetSection, target.TargetName)
		target.ToINI(cfg.Section(sectionName))
	}

	if err := cfg.SaveTo(c.Output); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// postCreationActions offers validation of the generated inventory
func (c *InitCommand) postCreationActions() error {
	validatePrompt := promptui.Prompt{
		Label:     "Validate inventory now",
		IsConfirm: true,
		Default:   "Y",
	}
	if _, err := validatePrompt.Run(); err != nil {
		return nil
	}

	conf, err := BuildFromFile(c.Output, c.Logger)
	if err != nil {
		c.Logger.Errorf("❌ Inventory validation failed: %v", err)
		return err
	}
	for _, name := range conf.TargetNames() {
		if _, err := core.NewConnection(conf.Targets[name].Target(name), c.Logger); err != nil {
			c.Logger.Errorf("❌ Inventory validation failed: %v", err)
			return err
		}
	}
	c.Logger.Noticef("✅ Inventory is valid!")

	showPrompt := promptui.Prompt{
		Label:     "Show generated inventory",
		IsConfirm: true,
		Default:   "n",
	}
	if _, err := showPrompt.Run(); err == nil {
		content, _ := os.ReadFile(c.Output)
		c.Logger.Noticef("\n%s", string(content))
	}

	return nil
}

// printNextSteps displays helpful next steps
func (c *InitCommand) printNextSteps() {
	c.Logger.Noticef("📋 Setup complete! Next steps:")
	c.Logger.Noticef("  → Review inventory: cat %s", c.Output)
	c.Logger.Noticef("  → Check reachability: moor check --config=%s", c.Output)
	c.Logger.Noticef("  → Run something: moor run --config=%s --target=<name> -- uptime", c.Output)
}
