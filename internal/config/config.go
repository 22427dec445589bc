// Package config loads tool configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultExtension is the snapshot extension used when nothing else
	// is configured.
	DefaultExtension = "gpg"

	dirPermSecure  = 0700
	filePermSecure = 0600
)

// Config holds the tool configuration. Precedence, lowest to highest:
// built-in defaults, the JSON config file, ACCESSKEEPER_* environment
// variables, command-line flags (applied by the caller).
type Config struct {
	WorkDir    string `json:"work_dir" env:"ACCESSKEEPER_WORK_DIR"`
	Extension  string `json:"extension" env:"ACCESSKEEPER_EXTENSION"`
	UseKeyring bool   `json:"use_keyring" env:"ACCESSKEEPER_USE_KEYRING"`
	Passphrase string `json:"-" env:"ACCESSKEEPER_PASSPHRASE"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, "accesskeeper", "config.json"), nil
}

// Load reads the config file at path and applies environment overrides.
// A missing or empty file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{Extension: DefaultExtension}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(data) > 0 {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	case os.IsNotExist(err):
		// First run, defaults apply
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg.WorkDir = wd
	}
	return cfg, nil
}

// Save writes the config back to path, creating parent directories as
// needed. The passphrase is never written.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermSecure); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, filePermSecure); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
