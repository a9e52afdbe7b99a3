// Package config handles global quill configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global quill configuration.
type Config struct {
	// DefaultVault names the vault from Vaults used when none is given.
	DefaultVault string `toml:"default_vault"`

	// Vaults maps vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	Model   ModelConfig   `toml:"model"`
	Link    LinkConfig    `toml:"link"`
	Enhance EnhanceConfig `toml:"enhance"`
	UI      UIConfig      `toml:"ui"`
}

// ModelConfig configures the external model CLI.
type ModelConfig struct {
	// Command is the executable to invoke (default "claude").
	Command string `toml:"command"`

	// Args are passed before the prompt.
	Args []string `toml:"args"`
}

// LinkConfig sets wiki-link generation defaults.
type LinkConfig struct {
	// Strategy is "existing-only" or "all-entities".
	Strategy string `toml:"strategy"`

	// Mode is "first" or "all".
	Mode string `toml:"mode"`
}

// EnhanceConfig sets frontmatter-enhancement defaults.
type EnhanceConfig struct {
	// Limit is how many similar notes to use as examples.
	Limit int `toml:"limit"`
}

// UIConfig holds optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0"-"255") or hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// GetVaultPath returns the path for a named vault, or the default vault
// when name is empty.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}
	if path, ok := c.Vaults[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("vault '%s' not found in config", name)
}

// Load loads the configuration from the default location, returning a
// zero config if the file doesn't exist.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file path, preferring the
// XDG-style ~/.config/quill/config.toml.
func DefaultPath() string {
	if env := os.Getenv("QUILL_CONFIG"); env != "" {
		return env
	}
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "quill", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "quill", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}
