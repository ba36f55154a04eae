package cli

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/ini.v1"
)

func TestValidateTargetName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"simple name", "web", false},
		{"with hyphen", "web-prod", false},
		{"with underscore", "web_prod", false},
		{"with digits", "web01", false},
		{"empty", "", true},
		{"with space", "web prod", true},
		{"with dot", "web.prod", true},
		{"with slash", "web/prod", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTargetName(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("validateTargetName(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
		})
	}
}

func TestValidateContainerName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"simple name", "web-1", false},
		{"single char", "a", false},
		{"digits", "c01", false},
		{"empty", "", true},
		{"leading hyphen", "-web", true},
		{"with underscore", "web_1", true},
		{"with space", "web 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContainerName(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("validateContainerName(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
		})
	}
}

func TestTargetConfigToINI(t *testing.T) {
	tests := []struct {
		name     string
		target   *initTargetConfig
		validate func(*testing.T, *ini.Section)
	}{
		{
			name: "complete target",
			target: &initTargetConfig{
				TargetName: "db",
				Host:       "db-1",
				Remote:     "cluster",
				Tmpdir:     "/var/tmp",
			},
			validate: func(t *testing.T, section *ini.Section) {
				if got := section.Key("host").String(); got != "db-1" {
					t.Errorf("host = %q, want %q", got, "db-1")
				}
				if got := section.Key("service-url").String(); got != "cluster" {
					t.Errorf("service-url = %q, want %q", got, "cluster")
				}
				if got := section.Key("tmpdir").String(); got != "/var/tmp" {
					t.Errorf("tmpdir = %q, want %q", got, "/var/tmp")
				}
			},
		},
		{
			name: "minimal target omits defaults",
			target: &initTargetConfig{
				TargetName: "web",
				Host:       "web-1",
				Remote:     "local",
			},
			validate: func(t *testing.T, section *ini.Section) {
				if got := section.Key("host").String(); got != "web-1" {
					t.Errorf("host = %q, want %q", got, "web-1")
				}
				if section.HasKey("service-url") {
					t.Error("service-url key should not be present for the local remote")
				}
				if section.HasKey("tmpdir") {
					t.Error("tmpdir key should not be present when unset")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ini.Empty()
			section := cfg.Section("test")

			tt.target.ToINI(section)
			tt.validate(t, section)
		})
	}
}

func TestSaveConfig(t *testing.T) {
	output := filepath.Join(t.TempDir(), "moor.ini")

	cmd := &InitCommand{Output: output, Logger: &TestLogger{}}
	config := &initConfig{
		LogLevel:    "info",
		HistoryFile: "/var/lib/moor/history.db",
		Targets: []initTargetConfig{
			{TargetName: "web", Host: "web-1", Remote: "local"},
			{TargetName: "db", Host: "db-1", Remote: "cluster", Tmpdir: "/var/tmp"},
		},
	}

	if err := cmd.saveConfig(config); err != nil {
		t.Fatalf("saveConfig() error = %v", err)
	}

	cfg, err := ini.Load(output)
	if err != nil {
		t.Fatalf("failed to load generated inventory: %v", err)
	}
	global := cfg.Section("global")
	if got := global.Key("log-level").String(); got != "info" {
		t.Errorf("log-level = %q, want %q", got, "info")
	}
	if got := global.Key("history-file").String(); got != "/var/lib/moor/history.db" {
		t.Errorf("history-file = %q, want %q", got, "/var/lib/moor/history.db")
	}
	if got := cfg.Section(`target "db"`).Key("service-url").String(); got != "cluster" {
		t.Errorf("db service-url = %q, want %q", got, "cluster")
	}

	// The wizard's output must round-trip through the inventory loader.
	conf, err := BuildFromFile(output, &TestLogger{})
	if err != nil {
		t.Fatalf("BuildFromFile() on generated inventory: %v", err)
	}
	if len(conf.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(conf.Targets))
	}
	if got := conf.Targets["web"].Host; got != "web-1" {
		t.Errorf("web host = %q, want %q", got, "web-1")
	}
	if got := conf.Targets["db"].Tmpdir; got != "/var/tmp" {
		t.Errorf("db tmpdir = %q, want %q", got, "/var/tmp")
	}
}

func TestSaveConfigSkipsEmptyGlobals(t *testing.T) {
	output := filepath.Join(t.TempDir(), "moor.ini")

	cmd := &InitCommand{Output: output, Logger: &TestLogger{}}
	if err := cmd.saveConfig(&initConfig{Targets: []initTargetConfig{{TargetName: "web", Host: "web-1"}}}); err != nil {
		t.Fatalf("saveConfig() error = %v", err)
	}

	cfg, err := ini.Load(output)
	if err != nil {
		t.Fatalf("failed to load generated inventory: %v", err)
	}
	global := cfg.Section("global")
	if global.HasKey("log-level") {
		t.Error("log-level key should not be present when unset")
	}
	if global.HasKey("history-file") {
		t.Error("history-file key should not be present when unset")
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "deep", "moor.ini")

	cmd := &InitCommand{Output: nested, Logger: &TestLogger{}}
	if err := cmd.saveConfig(&initConfig{LogLevel: "info"}); err != nil {
		t.Fatalf("saveConfig() error = %v", err)
	}

	if _, err := os.Stat(nested); os.IsNotExist(err) {
		t.Error("inventory was not created in nested directory")
	}
}
