// Package config handles loading and saving user configuration for swty.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Game    GameConfig    `yaml:"game"`
	History HistoryConfig `yaml:"history"`
}

// SourceConfig selects where sentences come from.
type SourceConfig struct {
	URL     string        `yaml:"url"`     // Endpoint returning {"answer": "..."}
	File    string        `yaml:"file"`    // Local comma/newline separated file
	Timeout time.Duration `yaml:"timeout"` // HTTP request timeout
}

// GameConfig tunes a practice round.
type GameConfig struct {
	Shuffle      bool          `yaml:"shuffle"`
	Limit        int           `yaml:"limit"`         // Max sentences per round, 0 = all
	AdvanceDelay time.Duration `yaml:"advance_delay"` // Pause after a completed sentence
}

// HistoryConfig controls the round history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Relative paths resolve against the config dir
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Timeout: 10 * time.Second,
		},
		Game: GameConfig{
			Shuffle:      true,
			AdvanceDelay: 150 * time.Millisecond,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "history.db",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout must not be negative"))
	}
	if c.Game.Limit < 0 {
		errs = append(errs, fmt.Errorf("game.limit must not be negative"))
	}
	if c.Game.AdvanceDelay < 0 {
		errs = append(errs, fmt.Errorf("game.advance_delay must not be negative"))
	}
	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, fmt.Errorf("history.path is required when history is enabled"))
	}
	return errors.Join(errs...)
}

// HistoryPath resolves the history database path against dir.
func (c *Config) HistoryPath(dir string) string {
	if c.History.Path == "" || filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(dir, c.History.Path)
}

// Load reads a config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDir loads FileName from dir. A missing file yields the defaults.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "swty"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "swty"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
