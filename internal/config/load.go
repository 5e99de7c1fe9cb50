package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor
// TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.toml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(ConfigDir(), "config.toml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, err := homedir.Dir()
	if err != nil {
		home, _ = os.UserHomeDir()
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Meadow")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Meadow")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meadow")
		}
		return filepath.Join(home, ".config", "meadow")
	}
}

// loadFromFile loads config from a YAML or TOML file, chosen by extension,
// merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	unmarshal, err := decoderFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return unmarshal(data, cfg)
}

func decoderFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	case ".toml":
		return toml.Unmarshal, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// expandPaths resolves a leading ~ in file settings.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Assets.Root, &c.Terrain.Heightmap, &c.Logging.LogFile} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
