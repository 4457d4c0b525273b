// Package config resolves application settings from an optional TOML file
// and environment variables. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime settings.
type Config struct {
	DBPath      string `toml:"db_path"`       // GANTTFORM_DB
	Color       bool   `toml:"color"`         // GANTTFORM_COLOR
	LogUseCases bool   `toml:"log_use_cases"` // GANTTFORM_LOG_USE_CASES
}

// DefaultConfig returns the settings used when neither file nor
// environment says otherwise. The DB lives under ~/.ganttform.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath: filepath.Join(home, ".ganttform", "ganttform.db"),
		Color:  true,
	}, nil
}

// Load resolves the effective configuration. The file path comes from
// GANTTFORM_CONFIG or defaults to ~/.ganttform/config.toml; a missing
// file is not an error.
func Load() (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	path := os.Getenv("GANTTFORM_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".ganttform", "config.toml")
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTTFORM_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GANTTFORM_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Color = b
		}
	}
	if v := os.Getenv("GANTTFORM_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
}
