package core

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Target describes one container to connect to. Host is the container
// name and is the only mandatory field; everything else rides along in
// Options.
type Target struct {
	Name    string         `validate:"-"`
	Host    string         `validate:"required"`
	Options map[string]any `validate:"-"`
}

// targetOptions are the transport options understood by this adapter.
// Unknown keys in Target.Options pass through untouched.
type targetOptions struct {
	Remote string `mapstructure:"service-url" default:"local"`
	Tmpdir string `mapstructure:"tmpdir"`
}

var validate = validator.New()

// DisplayName is the label used in logs and error messages. It falls
// back to the host when the target was built without a name.
func (t *Target) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Host
}

func (t *Target) check() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("target %q: %w", t.Name, ErrMissingHost)
	}
	return nil
}

// transportOptions decodes Target.Options on top of the defaults. A
// service-url present in the options wins verbatim, even when empty.
func (t *Target) transportOptions() (*targetOptions, error) {
	opts := &targetOptions{}
	if err := defaults.Set(opts); err != nil {
		return nil, fmt.Errorf("target %q defaults: %w", t.DisplayName(), err)
	}
	if err := mapstructure.WeakDecode(t.Options, opts); err != nil {
		return nil, fmt.Errorf("target %q options: %w", t.DisplayName(), err)
	}
	return opts, nil
}
