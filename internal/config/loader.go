// Package config provides configuration management for stratum-installer.
//
// This file contains config loading functionality including:
// - Per-user config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// AppName is the directory name used under the user config directory.
const AppName = "stratum-installer"

// EnvAuthToken overrides [auth].token.
const EnvAuthToken = "STRATUM_AUTH_TOKEN"

// DefaultConfigPath returns where the config file lives for the current user:
// %AppData% on Windows, ~/Library/Application Support on macOS and
// $XDG_CONFIG_HOME (or ~/.config) elsewhere.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// DetectConfigPath returns the config file path if one exists.
//
// Search order:
// 1. $STRATUM_CONFIG
// 2. <user config dir>/stratum-installer/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	if p := os.Getenv("STRATUM_CONFIG"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		return ""
	}

	configPath, err := DefaultConfigPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &sierrors.ConfigError{Path: path, Err: fmt.Errorf("config file not found")}
	}

	// Read file contents
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &sierrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse TOML
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &sierrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand tilde in paths
	expandPaths(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, &sierrors.ConfigError{Path: path, Err: fmt.Errorf("%w: %w", sierrors.ErrInvalid, err)}
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from the standard location.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		return LoadDefaults()
	}

	return Load(configPath)
}

// LoadDefaults returns the default config with environment overrides
// applied, without reading any file.
func LoadDefaults() (*Config, error) {
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &sierrors.ConfigError{Err: fmt.Errorf("%w: %w", sierrors.ErrInvalid, err)}
	}
	return cfg, nil
}

// SavePath returns where a new config file is written: $STRATUM_CONFIG when
// set, else the default path. It returns "" when neither can be determined.
func SavePath() string {
	if p := os.Getenv("STRATUM_CONFIG"); p != "" {
		return p
	}
	p, err := DefaultConfigPath()
	if err != nil {
		return ""
	}
	return p
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: STRATUM_<SECTION>_<FIELD>
//
// Examples:
// - STRATUM_AUTH_TOKEN overrides [auth].token
// - STRATUM_TARGET_GAME_DIR overrides [target].game_dir
// - STRATUM_HOST_BASE_URL overrides [host].base_url
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	// Helper to lookup and apply string override
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	// Helper to lookup and apply bool override
	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// Host section
	applyString("STRATUM_HOST_BASE_URL", &c.Host.BaseURL)
	applyString("STRATUM_HOST_USER_AGENT", &c.Host.UserAgent)

	// Bundle section
	applyString("STRATUM_BUNDLE_NAME", &c.Bundle.Name)
	applyString("STRATUM_BUNDLE_CHANNEL", &c.Bundle.Channel)

	// Auth section
	applyString(EnvAuthToken, &c.Auth.Token)
	applyBool("STRATUM_AUTH_SAVE_TOKEN", &c.Auth.SaveToken)

	// Target section
	applyString("STRATUM_TARGET_GAME_DIR", &c.Target.GameDir)
	applyString("STRATUM_TARGET_PACKS_DIR", &c.Target.PacksDir)

	// TUI section
	applyBool("STRATUM_TUI_ENABLED", &c.TUI.Enabled)
}

// expandPaths expands ~ to the home directory in the target paths.
func expandPaths(c *Config) {
	c.Target.GameDir = expandHome(c.Target.GameDir)
	c.Target.PacksDir = expandHome(c.Target.PacksDir)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") && p != "~" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(homeDir, strings.TrimPrefix(p, "~"))
}
