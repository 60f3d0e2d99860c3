package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// clearEnv blanks every override so a developer's environment can't leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STRATUM_CONFIG",
		"STRATUM_HOST_BASE_URL",
		"STRATUM_HOST_USER_AGENT",
		"STRATUM_BUNDLE_NAME",
		"STRATUM_BUNDLE_CHANNEL",
		"STRATUM_AUTH_TOKEN",
		"STRATUM_AUTH_SAVE_TOKEN",
		"STRATUM_TARGET_GAME_DIR",
		"STRATUM_TARGET_PACKS_DIR",
		"STRATUM_TUI_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

// TestDetectConfigPath_EnvOverride tests that $STRATUM_CONFIG wins when it exists.
func TestDetectConfigPath_EnvOverride(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	if err := os.WriteFile(configPath, []byte(""), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("STRATUM_CONFIG", configPath)
	if got := DetectConfigPath(); got != configPath {
		t.Errorf("DetectConfigPath() = %q, want %q", got, configPath)
	}

	t.Setenv("STRATUM_CONFIG", filepath.Join(tmpDir, "missing.toml"))
	if got := DetectConfigPath(); got != "" {
		t.Errorf("DetectConfigPath() = %q, want empty for missing file", got)
	}
}

// TestDefaultConfigPath tests that the default path ends in the app directory.
func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath()
	if err != nil {
		t.Skipf("no user config dir on this machine: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(AppName, "config.toml")) {
		t.Errorf("DefaultConfigPath() = %q, want suffix %q", path, filepath.Join(AppName, "config.toml"))
	}
}

// TestLoad_ValidConfig tests loading a valid config file.
func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[host]
base_url = "https://gitlab.example.com"

[bundle]
name = "Stratum"
channel = "main"

[auth]
token = "glpat-abc"

[target]
game_dir = "/games/minecraft"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Host.BaseURL != "https://gitlab.example.com" {
		t.Errorf("expected host.base_url override, got %q", cfg.Host.BaseURL)
	}
	if cfg.Bundle.Channel != "main" {
		t.Errorf("expected bundle.channel to be 'main', got %q", cfg.Bundle.Channel)
	}
	if cfg.Auth.Token != "glpat-abc" {
		t.Errorf("expected auth.token to be 'glpat-abc', got %q", cfg.Auth.Token)
	}
	if cfg.Target.GameDir != "/games/minecraft" {
		t.Errorf("expected target.game_dir to be '/games/minecraft', got %q", cfg.Target.GameDir)
	}
	// Unset values keep their defaults
	if cfg.Target.PacksDir != "resourcepacks" {
		t.Errorf("expected default target.packs_dir, got %q", cfg.Target.PacksDir)
	}
	if !cfg.Auth.SaveToken {
		t.Error("expected default auth.save_token = true")
	}
}

// TestLoad_InvalidTOML tests that invalid TOML returns error.
func TestLoad_InvalidTOML(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[bundle
name = "Stratum"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid TOML config, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("error should mention parsing failure, got: %v", err)
	}
	if _, ok := sierrors.AsConfigError(err); !ok {
		t.Errorf("expected a ConfigError, got %T", err)
	}
}

// TestLoad_ValidationFailed tests that validation failures are returned.
func TestLoad_ValidationFailed(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[bundle]
channel = "not-valid"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid config, got nil")
	}
	if !sierrors.IsInvalid(err) {
		t.Errorf("expected ErrInvalid in chain, got: %v", err)
	}
	if !strings.Contains(err.Error(), "bundle.channel") {
		t.Errorf("error should name the bad field, got: %v", err)
	}
}

// TestLoad_FileNotExist tests that Load returns error for non-existent file.
func TestLoad_FileNotExist(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should mention file not found, got: %v", err)
	}
}

// TestLoadWithDefaults_NoFile tests that defaults plus env overrides are returned.
func TestLoadWithDefaults_NoFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRATUM_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("STRATUM_AUTH_TOKEN", "from-env")

	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults() returned error: %v", err)
	}
	if cfg.Auth.Token != "from-env" {
		t.Errorf("expected auth.token from env, got %q", cfg.Auth.Token)
	}
	if cfg.Bundle.Name != "Stratum" {
		t.Errorf("expected default bundle.name, got %q", cfg.Bundle.Name)
	}
}

// TestLoadDefaults_Invalid tests that a bad override fails validation.
func TestLoadDefaults_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRATUM_HOST_BASE_URL", "ftp://dl.example.com")

	_, err := LoadDefaults()
	if err == nil {
		t.Fatal("LoadDefaults() expected error for ftp base URL, got nil")
	}
	if !sierrors.IsInvalid(err) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

// TestSavePath tests that $STRATUM_CONFIG is used even when the file does not exist yet.
func TestSavePath(t *testing.T) {
	clearEnv(t)
	want := filepath.Join(t.TempDir(), "new.toml")
	t.Setenv("STRATUM_CONFIG", want)

	if got := SavePath(); got != want {
		t.Errorf("SavePath() = %q, want %q", got, want)
	}
}

// TestEnvOverrides_String tests string environment variable overrides.
func TestEnvOverrides_String(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRATUM_HOST_BASE_URL", "https://env.example.com")
	t.Setenv("STRATUM_BUNDLE_NAME", "Other")
	t.Setenv("STRATUM_BUNDLE_CHANNEL", "dev")
	t.Setenv("STRATUM_AUTH_TOKEN", "env-token")
	t.Setenv("STRATUM_TARGET_GAME_DIR", "/env/game")
	t.Setenv("STRATUM_TARGET_PACKS_DIR", "packs")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Host.BaseURL != "https://env.example.com" {
		t.Errorf("expected host.base_url from env, got %q", cfg.Host.BaseURL)
	}
	if cfg.Bundle.Name != "Other" {
		t.Errorf("expected bundle.name from env, got %q", cfg.Bundle.Name)
	}
	if cfg.Bundle.Channel != "dev" {
		t.Errorf("expected bundle.channel from env, got %q", cfg.Bundle.Channel)
	}
	if cfg.Auth.Token != "env-token" {
		t.Errorf("expected auth.token from env, got %q", cfg.Auth.Token)
	}
	if cfg.Target.GameDir != "/env/game" {
		t.Errorf("expected target.game_dir from env, got %q", cfg.Target.GameDir)
	}
	if cfg.Target.PacksDir != "packs" {
		t.Errorf("expected target.packs_dir from env, got %q", cfg.Target.PacksDir)
	}
}

// TestEnvOverrides_Bool tests boolean environment variable overrides.
func TestEnvOverrides_Bool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{"true", "true", true},
		{"TRUE", "TRUE", true},
		{"1", "1", true},
		{"yes", "yes", true},
		{"on", "on", true},
		{"false", "false", false},
		{"FALSE", "FALSE", false},
		{"0", "0", false},
		{"no", "no", false},
		{"off", "off", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STRATUM_AUTH_SAVE_TOKEN", tt.envValue)
			t.Setenv("STRATUM_TUI_ENABLED", tt.envValue)

			cfg := DefaultConfig()
			// Flip defaults to test override
			cfg.Auth.SaveToken = !tt.expected
			cfg.TUI.Enabled = !tt.expected

			applyEnvOverrides(cfg)

			if cfg.Auth.SaveToken != tt.expected {
				t.Errorf("expected auth.save_token=%v, got %v", tt.expected, cfg.Auth.SaveToken)
			}
			if cfg.TUI.Enabled != tt.expected {
				t.Errorf("expected tui.enabled=%v, got %v", tt.expected, cfg.TUI.Enabled)
			}
		})
	}
}

// TestExpandPaths tests that a leading ~ is expanded.
func TestExpandPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Target.GameDir = "~/.minecraft"
	expandPaths(cfg)

	if want := filepath.Join(home, ".minecraft"); cfg.Target.GameDir != want {
		t.Errorf("expected %q, got %q", want, cfg.Target.GameDir)
	}
	if cfg.Target.PacksDir != "resourcepacks" {
		t.Errorf("relative packs_dir should be untouched, got %q", cfg.Target.PacksDir)
	}
}

// TestWriteAndSaveToken tests the write/load round trip used by login and logout.
func TestWriteAndSaveToken(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	// SaveToken creates the file from defaults when missing
	if err := SaveToken(configPath, "glpat-123"); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 && os.PathSeparator == '/' {
		t.Errorf("config file should be owner-only, got %v", perm)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Auth.Token != "glpat-123" {
		t.Errorf("expected saved token, got %q", cfg.Auth.Token)
	}

	// Other settings survive a token change
	cfg.Bundle.Channel = "main"
	if err := Write(configPath, cfg); err != nil {
		t.Fatalf("Write() returned error: %v", err)
	}
	if err := SaveToken(configPath, ""); err != nil {
		t.Fatalf("SaveToken() clear returned error: %v", err)
	}

	cfg, err = Load(configPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Auth.Token != "" {
		t.Errorf("expected cleared token, got %q", cfg.Auth.Token)
	}
	if cfg.Bundle.Channel != "main" {
		t.Errorf("expected bundle.channel to survive, got %q", cfg.Bundle.Channel)
	}
}
