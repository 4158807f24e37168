package config

import (
	"fmt"
	"os"
	"path/filepath"

	"vimpi/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// DefaultPlaceholder is shown by the editor while no file is loaded.
const DefaultPlaceholder = "Open file to edit"

// Config represents the application configuration structure.
type Config struct {
	Root   string `yaml:"root"` // Directory the explorer opens at
	Editor struct {
		Placeholder string `yaml:"placeholder"`  // Text shown while no file is loaded
		LineNumbers bool   `yaml:"line_numbers"` // Show line numbers in the editor
	} `yaml:"editor"`
	Tree struct {
		ShowHidden bool     `yaml:"show_hidden"` // List dotfiles
		Ignore     []string `yaml:"ignore"`      // Glob patterns hidden from the tree
	} `yaml:"tree"`
	Watch struct {
		Enabled bool `yaml:"enabled"` // Refresh the tree when directories change
	} `yaml:"watch"`
	Theme struct {
		Path string `yaml:"path"` // Style resource loaded at startup
	} `yaml:"theme"`
	Notify struct {
		TimeoutSeconds int `yaml:"timeout_seconds"` // How long a notification stays visible
	} `yaml:"notify"`
	Log struct {
		File  string `yaml:"file"`  // Log destination; the terminal belongs to the UI
		JSON  bool   `yaml:"json"`  // Emit JSON lines
		Debug bool   `yaml:"debug"` // Enable debug level
	} `yaml:"log"`
}

// DefaultPath returns ~/.config/vimpi/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vimpi", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/vimpi/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	// Unset booleans cannot be told apart from false, so re-read the
	// sections that default to true.
	var raw struct {
		Editor map[string]interface{} `yaml:"editor"`
		Watch  map[string]interface{} `yaml:"watch"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if tempCfg.Root != "" {
		cfg.Root = tempCfg.Root
	}
	if tempCfg.Editor.Placeholder != "" {
		cfg.Editor.Placeholder = tempCfg.Editor.Placeholder
	}
	if _, ok := raw.Editor["line_numbers"]; ok {
		cfg.Editor.LineNumbers = tempCfg.Editor.LineNumbers
	}
	cfg.Tree.ShowHidden = tempCfg.Tree.ShowHidden
	if tempCfg.Tree.Ignore != nil {
		cfg.Tree.Ignore = tempCfg.Tree.Ignore
	}
	if _, ok := raw.Watch["enabled"]; ok {
		cfg.Watch.Enabled = tempCfg.Watch.Enabled
	}
	if tempCfg.Theme.Path != "" {
		cfg.Theme.Path = tempCfg.Theme.Path
	}
	if tempCfg.Notify.TimeoutSeconds != 0 {
		cfg.Notify.TimeoutSeconds = tempCfg.Notify.TimeoutSeconds
	}
	if tempCfg.Log.File != "" {
		cfg.Log.File = tempCfg.Log.File
	}
	cfg.Log.JSON = tempCfg.Log.JSON
	cfg.Log.Debug = tempCfg.Log.Debug

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Root = "."
	cfg.Editor.Placeholder = DefaultPlaceholder
	cfg.Editor.LineNumbers = true
	cfg.Tree.ShowHidden = false
	cfg.Tree.Ignore = []string{".git", "__pycache__", "*.pyc", "node_modules"}
	cfg.Watch.Enabled = true
	cfg.Notify.TimeoutSeconds = 3
	cfg.Log.File = filepath.Join(os.TempDir(), "vimpi.log")

	return cfg
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if c.Root == "" {
		return errors.NewConfigError("root directory is required", "root", errors.InvalidConfig, nil)
	}

	if c.Notify.TimeoutSeconds < 0 {
		return errors.NewConfigError("notification timeout must be >= 0 seconds", "notify.timeout_seconds", errors.InvalidConfig, nil)
	}

	if _, err := c.IgnoreGlobs(); err != nil {
		return err
	}

	return nil
}

// IgnoreGlobs compiles the tree ignore patterns.
func (c *Config) IgnoreGlobs() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Tree.Ignore))
	for i, pattern := range c.Tree.Ignore {
		if pattern == "" {
			return nil, errors.NewConfigError(fmt.Sprintf("ignore pattern %d is empty", i), "tree.ignore", errors.InvalidConfig, nil)
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("ignore pattern %q does not compile", pattern), "tree.ignore", errors.InvalidConfig, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
