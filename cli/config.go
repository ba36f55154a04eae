package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/moorcli/moor/core"

	defaults "github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
	ini "gopkg.in/ini.v1"
)

const targetSection = "target"

// Config is the target inventory plus global settings.
type Config struct {
	Global struct {
		LogLevel    string `gcfg:"log-level" mapstructure:"log-level" json:"log-level,omitempty"`
		HistoryFile string `gcfg:"history-file" mapstructure:"history-file" json:"history-file,omitempty"`
	} `json:"global"`
	Targets map[string]*TargetConfig `gcfg:"target" mapstructure:"target" json:"targets"`

	configPath string
	logger     core.Logger
}

// TargetConfig is one inventory entry.
type TargetConfig struct {
	Host       string `gcfg:"host" mapstructure:"host" json:"host"`
	ServiceURL string `gcfg:"service-url" mapstructure:"service-url" json:"service-url,omitempty"`
	Tmpdir     string `gcfg:"tmpdir" mapstructure:"tmpdir" json:"tmpdir,omitempty"`
}

// Target materializes the inventory entry into a transport descriptor.
func (tc *TargetConfig) Target(name string) *core.Target {
	opts := map[string]any{}
	if tc.ServiceURL != "" {
		opts["service-url"] = tc.ServiceURL
	}
	if tc.Tmpdir != "" {
		opts["tmpdir"] = tc.Tmpdir
	}
	return &core.Target{Name: name, Host: tc.Host, Options: opts}
}

func NewConfig(logger core.Logger) *Config {
	c := &Config{
		Targets: make(map[string]*TargetConfig),
		logger:  logger,
	}

	defaults.Set(c)
	return c
}

// BuildFromFile loads an inventory file. YAML is picked by extension,
// everything else parses as INI.
func BuildFromFile(filename string, logger core.Logger) (*Config, error) {
	c := NewConfig(logger)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := parseYAML(data, c); err != nil {
			return nil, err
		}
	default:
		cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true, InsensitiveKeys: true}, filename)
		if err != nil {
			return nil, err
		}
		if err := parseIni(cfg, c); err != nil {
			return nil, err
		}
	}
	c.configPath = filename
	logger.Debugf("loaded inventory %s", filename)
	return c, nil
}

// BuildFromString loads an inventory from INI text.
func BuildFromString(config string, logger core.Logger) (*Config, error) {
	c := NewConfig(logger)
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true, InsensitiveKeys: true}, []byte(config))
	if err != nil {
		return nil, err
	}
	if err := parseIni(cfg, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Target resolves an inventory entry by name.
func (c *Config) Target(name string) (*core.Target, error) {
	tc, ok := c.Targets[name]
	if !ok {
		known := c.TargetNames()
		if len(known) == 0 {
			return nil, fmt.Errorf("%w: %q (inventory has no targets)", ErrUnknownTarget, name)
		}
		return nil, fmt.Errorf("%w: %q (known targets: %s)", ErrUnknownTarget, name, strings.Join(known, ", "))
	}
	return tc.Target(name), nil
}

// TargetNames lists the inventory targets in stable order.
func (c *Config) TargetNames() []string {
	return slices.Sorted(maps.Keys(c.Targets))
}

func parseIni(cfg *ini.File, c *Config) error {
	if sec, err := cfg.GetSection("global"); err == nil {
		if err := mapstructure.WeakDecode(sectionToMap(sec), &c.Global); err != nil {
			return err
		}
	}

	for _, section := range cfg.Sections() {
		name := strings.TrimSpace(section.Name())
		if name != targetSection && !strings.HasPrefix(name, targetSection+" ") {
			continue
		}
		targetName := parseTargetName(name, targetSection)
		if targetName == "" {
			return ErrTargetNameRequired
		}
		tc := &TargetConfig{}
		if err := mapstructure.WeakDecode(sectionToMap(section), tc); err != nil {
			return err
		}
		c.Targets[targetName] = tc
	}
	return nil
}

func parseTargetName(section, prefix string) string {
	s := strings.TrimPrefix(section, prefix)
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"")
}

func sectionToMap(section *ini.Section) map[string]interface{} {
	m := make(map[string]interface{})
	for _, key := range section.Keys() {
		vals := key.ValueWithShadows()
		if len(vals) > 1 {
			cp := make([]string, len(vals))
			copy(cp, vals)
			m[key.Name()] = cp
		} else if len(vals) == 1 {
			m[key.Name()] = vals[0]
		} else {
			// Handle empty values
			m[key.Name()] = ""
		}
	}
	return m
}
