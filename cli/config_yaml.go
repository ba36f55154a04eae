package cli

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// parseYAML fills c from a YAML inventory of the shape:
//
//	global:
//	  log-level: debug
//	targets:
//	  web:
//	    host: web-1
//	    service-url: local
func parseYAML(data []byte, c *Config) error {
	var raw struct {
		Global  map[string]any            `yaml:"global"`
		Targets map[string]map[string]any `yaml:"targets"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml inventory: %w", err)
	}

	if raw.Global != nil {
		if err := mapstructure.WeakDecode(raw.Global, &c.Global); err != nil {
			return err
		}
	}
	for name, section := range raw.Targets {
		if name == "" {
			return ErrTargetNameRequired
		}
		tc := &TargetConfig{}
		if err := mapstructure.WeakDecode(section, tc); err != nil {
			return err
		}
		c.Targets[name] = tc
	}
	return nil
}
