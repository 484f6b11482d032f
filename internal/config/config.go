// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the root configuration.
type Config struct {
	API APIConfig `toml:"api"`
	UI  UIConfig  `toml:"ui"`
	Log LogConfig `toml:"log"`
}

// APIConfig configures the assistant endpoint.
type APIConfig struct {
	// BaseURL is the assistant API base, e.g. "https://api.compy.pe/ai".
	BaseURL string `toml:"base_url" env:"COMPY_API_URL"`

	// MaxToolSteps caps chained tool invocations per user message.
	MaxToolSteps int `toml:"max_tool_steps" env:"COMPY_MAX_TOOL_STEPS"`
}

// UIConfig configures presentation.
type UIConfig struct {
	// ShowSuggestions toggles the welcome-screen suggestion chips.
	ShowSuggestions bool `toml:"show_suggestions" env:"COMPY_SHOW_SUGGESTIONS"`
}

// LogConfig configures the log file the TUI writes to.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `toml:"level" env:"COMPY_LOG_LEVEL"`

	// File is the log destination; empty disables logging.
	File string `toml:"file" env:"COMPY_LOG_FILE"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:      "https://api.compy.pe/ai",
			MaxToolSteps: 3,
		},
		UI: UIConfig{
			ShowSuggestions: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  defaultLogPath(),
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "compy", "config.toml")
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "compy", "compy.log")
}

// Load reads configuration in three layers: defaults, then the TOML file,
// then environment variables. An empty path falls back to DefaultPath; a
// missing file at the default location is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url is not a valid http(s) URL: %s", c.API.BaseURL)
	}

	if c.API.MaxToolSteps < 1 {
		return fmt.Errorf("api.max_tool_steps must be at least 1, got %d", c.API.MaxToolSteps)
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be trace|debug|info|warn|error, got %q", c.Log.Level)
	}

	return nil
}
