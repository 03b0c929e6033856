// Package config holds the tunable parameters of the UI test harness.
//
// Every delay below is a fixed wait standing in for an acknowledgement that Notepad++ does
// not give us. The defaults were found by trial and error; slower machines may need larger
// values, which can be supplied in a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EditorConfig describes where Notepad++ is installed and how its window is recognized.
type EditorConfig struct {
	ProgramFiles      string `toml:"program_files"`
	ProgramFilesX86   string `toml:"program_files_x86"`
	WindowTitleSuffix string `toml:"window_title_suffix"`
	// WindowTimeout bounds the wait for the editor window after launching it. Zero waits forever.
	WindowTimeout time.Duration `toml:"window_timeout"`
}

// Delays are the settle times after each kind of action.
type Delays struct {
	KeySettle      time.Duration `toml:"key_settle"`
	WindowPoll     time.Duration `toml:"window_poll"`
	OpenTree       time.Duration `toml:"open_tree"`
	QueryStep      time.Duration `toml:"query_step"`
	Compress       time.Duration `toml:"compress"`
	PrettyPrint    time.Duration `toml:"pretty_print"`
	NavigateTo     time.Duration `toml:"navigate_to"`
	FormStep       time.Duration `toml:"form_step"`
	SettingsSettle time.Duration `toml:"settings_settle"`
	LintSettle     time.Duration `toml:"lint_settle"`
}

// SettingsConfig locates the JsonTools settings file. An empty path means the default
// location under the user's application data directory.
type SettingsConfig struct {
	Path string `toml:"path"`
}

// Config is the complete harness configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Delays   Delays         `toml:"delays"`
	Settings SettingsConfig `toml:"settings"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			ProgramFiles:      `C:\Program Files`,
			ProgramFilesX86:   `C:\Program Files (x86)`,
			WindowTitleSuffix: " - Notepad++",
		},
		Delays: Delays{
			KeySettle:      150 * time.Millisecond,
			WindowPoll:     300 * time.Millisecond,
			OpenTree:       500 * time.Millisecond,
			QueryStep:      250 * time.Millisecond,
			Compress:       200 * time.Millisecond,
			PrettyPrint:    200 * time.Millisecond,
			NavigateTo:     250 * time.Millisecond,
			FormStep:       time.Second,
			SettingsSettle: 500 * time.Millisecond,
			LintSettle:     500 * time.Millisecond,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Editor.ProgramFiles == "" || c.Editor.ProgramFilesX86 == "" {
		return errors.New("config: editor program_files and program_files_x86 are required")
	}
	if c.Editor.WindowTitleSuffix == "" {
		return errors.New("config: editor window_title_suffix is required")
	}
	if c.Editor.WindowTimeout < 0 {
		return errors.New("config: editor window_timeout must not be negative")
	}
	if c.Delays.WindowPoll <= 0 {
		return errors.New("config: delays window_poll must be positive")
	}
	return nil
}
