// Package config persists user-level settings for the documentation
// toolchain: workspace location, preferred output format, and the
// directories derived from the config root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".go-docgen"
	configFileName = "config.yml"

	// DefaultFormat is used when the user has not chosen an output format.
	DefaultFormat = "markdown"
)

// UserSettings captures writer-specific preferences.
type UserSettings struct {
	// WorkspacePath is where rendered documents land by default.
	WorkspacePath string `yaml:"workspace_path,omitempty"`
	// DefaultFormat names the renderer used when a request does not pick
	// one ("markdown" or "zonbook").
	DefaultFormat string `yaml:"default_format"`
}

// Settings is the persisted configuration document.
type Settings struct {
	User UserSettings `yaml:"user"`

	// configDir is the directory the settings were loaded from and will be
	// saved to. Not serialized.
	configDir string
}

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load reads settings from the default config directory, returning defaults
// when no config file exists yet.
func Load() (Settings, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return Settings{}, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads settings from an explicit directory. A missing file is not
// an error; callers get the defaults bound to that directory.
func LoadFrom(dir string) (Settings, error) {
	settings := defaults(dir)

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("config: read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("config: parse settings: %w", err)
	}
	if settings.User.DefaultFormat == "" {
		settings.User.DefaultFormat = DefaultFormat
	}
	settings.configDir = dir
	return settings, nil
}

// Save writes the settings to their config directory, creating it on demand.
func (s Settings) Save() error {
	if s.configDir == "" {
		return errors.New("config: settings have no config directory")
	}
	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return fmt.Errorf("config: create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.configDir, configFileName), data, 0o644); err != nil {
		return fmt.Errorf("config: write settings: %w", err)
	}
	return nil
}

// ConfigDir reports the directory backing these settings.
func (s Settings) ConfigDir() string {
	return s.configDir
}

// TemplatesDir reports where user-managed templates live.
func (s Settings) TemplatesDir() string {
	if s.configDir == "" {
		return ""
	}
	return filepath.Join(s.configDir, "templates")
}

func defaults(dir string) Settings {
	return Settings{
		User: UserSettings{
			DefaultFormat: DefaultFormat,
		},
		configDir: dir,
	}
}
