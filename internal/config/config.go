// Package config loads the optional pngme configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ysh86/pngme/internal/log"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable pointing to the config file.
const EnvPath = "PNGME_CONFIG"

// Config holds the settings read from the config file.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Color    string `yaml:"color"`
	Verbose  bool   `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Color:    log.ColorAuto,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pngme", "config.yaml")
}

// Load reads the config file at path. An empty path falls back to $PNGME_CONFIG
// and then to DefaultPath; only the default location may be missing.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		explicit = false
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	default:
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all values are known.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Color {
	case log.ColorAuto, log.ColorAlways, log.ColorNever, "":
	default:
		return fmt.Errorf("unknown color mode %q", c.Color)
	}
	return nil
}
