// Package config provides configuration management for stratum-installer.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Config is the top-level configuration struct for stratum-installer.
// It contains all configuration sections as embedded structs.
type Config struct {
	Host   HostConfig   `toml:"host"`
	Bundle BundleConfig `toml:"bundle"`
	Auth   AuthConfig   `toml:"auth"`
	Target TargetConfig `toml:"target"`
	TUI    TUIConfig    `toml:"tui"`
}

// HostConfig contains settings for the project host serving the bundle.
type HostConfig struct {
	// BaseURL is the GitLab instance root (default: "https://dl.continuum.graphics").
	BaseURL string `toml:"base_url"`

	// UserAgent is sent with every request. Empty means "stratum-installer/<version>".
	UserAgent string `toml:"user_agent"`
}

// BundleConfig identifies the resource pack projects.
type BundleConfig struct {
	// Name is the project name prefix, e.g. "Stratum" for "Stratum-256x".
	Name string `toml:"name"`

	// Channel is the build-channel suffix of installed folders (default: "master").
	Channel string `toml:"channel"`
}

// AuthConfig contains access token settings.
type AuthConfig struct {
	// Token is the personal access token with the "api" scope.
	// Empty means anonymous access, which only lists the free tier.
	Token string `toml:"token"`

	// SaveToken controls whether a token entered at the prompt is written back here.
	SaveToken bool `toml:"save_token"`
}

// TargetConfig locates the directory the bundle is installed into.
type TargetConfig struct {
	// GameDir is the game data directory. Empty means the platform default.
	GameDir string `toml:"game_dir"`

	// PacksDir is the resource pack directory, relative to GameDir unless absolute.
	PacksDir string `toml:"packs_dir"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// Enabled controls whether to use huh prompts and the progress bar
	// (when false, falls back to plain line prompts and output).
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Host: HostConfig{
			BaseURL:   "https://dl.continuum.graphics",
			UserAgent: "",
		},
		Bundle: BundleConfig{
			Name:    "Stratum",
			Channel: "master",
		},
		Auth: AuthConfig{
			Token:     "",
			SaveToken: true,
		},
		Target: TargetConfig{
			GameDir:  "",
			PacksDir: "resourcepacks",
		},
		TUI: TUIConfig{
			Enabled: true,
		},
	}
}

var (
	// bundleNameRegex keeps the bundle name safe to embed in name patterns and paths.
	bundleNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	// channelRegex matches the \w class used by installed folder suffixes.
	channelRegex = regexp.MustCompile(`^\w+$`)
)

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	// Validate Host section
	if c.Host.BaseURL == "" {
		return fmt.Errorf("host.base_url cannot be empty")
	}
	u, err := url.Parse(c.Host.BaseURL)
	if err != nil {
		return fmt.Errorf("host.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("host.base_url must use http or https; got %q", c.Host.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("host.base_url must include a host; got %q", c.Host.BaseURL)
	}

	// Validate Bundle section
	if c.Bundle.Name == "" {
		return fmt.Errorf("bundle.name cannot be empty")
	}
	if !bundleNameRegex.MatchString(c.Bundle.Name) {
		return fmt.Errorf("bundle.name may only contain letters, digits, '_' and '.'; got %q", c.Bundle.Name)
	}
	if c.Bundle.Channel == "" {
		return fmt.Errorf("bundle.channel cannot be empty")
	}
	if !channelRegex.MatchString(c.Bundle.Channel) {
		return fmt.Errorf("bundle.channel may only contain letters, digits and '_'; got %q", c.Bundle.Channel)
	}

	// Validate Auth section
	if strings.ContainsAny(c.Auth.Token, " \t\r\n") {
		return fmt.Errorf("auth.token cannot contain whitespace")
	}

	// Validate Target section
	if c.Target.PacksDir == "" {
		return fmt.Errorf("target.packs_dir cannot be empty")
	}

	return nil
}
