package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to path, as TOML for a .toml extension and as
// YAML otherwise.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	marshal := yaml.Marshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		marshal = toml.Marshal
	}
	data, err := marshal(c)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return os.WriteFile(path, data, 0644)
}
