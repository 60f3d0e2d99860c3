package config

import (
	"strings"
	"testing"
)

// TestDefaultConfig verifies that default values are correctly set.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"host.base_url", cfg.Host.BaseURL, "https://dl.continuum.graphics"},
		{"host.user_agent", cfg.Host.UserAgent, ""},
		{"bundle.name", cfg.Bundle.Name, "Stratum"},
		{"bundle.channel", cfg.Bundle.Channel, "master"},
		{"auth.token", cfg.Auth.Token, ""},
		{"auth.save_token", cfg.Auth.SaveToken, true},
		{"target.game_dir", cfg.Target.GameDir, ""},
		{"target.packs_dir", cfg.Target.PacksDir, "resourcepacks"},
		{"tui.enabled", cfg.TUI.Enabled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

// TestValidate_ValidConfig tests that the defaults pass validation.
func TestValidate_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}
}

// TestValidate_InvalidFields tests that bad values fail validation.
func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty host.base_url",
			mutate:  func(c *Config) { c.Host.BaseURL = "" },
			wantErr: "host.base_url cannot be empty",
		},
		{
			name:    "ftp scheme",
			mutate:  func(c *Config) { c.Host.BaseURL = "ftp://dl.continuum.graphics" },
			wantErr: "must use http or https",
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Host.BaseURL = "https://" },
			wantErr: "must include a host",
		},
		{
			name:    "empty bundle.name",
			mutate:  func(c *Config) { c.Bundle.Name = "" },
			wantErr: "bundle.name cannot be empty",
		},
		{
			name:    "bundle.name with regex metacharacters",
			mutate:  func(c *Config) { c.Bundle.Name = "Strat(um)" },
			wantErr: "bundle.name may only contain",
		},
		{
			name:    "empty bundle.channel",
			mutate:  func(c *Config) { c.Bundle.Channel = "" },
			wantErr: "bundle.channel cannot be empty",
		},
		{
			name:    "bundle.channel with dash",
			mutate:  func(c *Config) { c.Bundle.Channel = "main-2" },
			wantErr: "bundle.channel may only contain",
		},
		{
			name:    "token with whitespace",
			mutate:  func(c *Config) { c.Auth.Token = "abc def" },
			wantErr: "auth.token cannot contain whitespace",
		},
		{
			name:    "empty target.packs_dir",
			mutate:  func(c *Config) { c.Target.PacksDir = "" },
			wantErr: "target.packs_dir cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
