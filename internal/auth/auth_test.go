package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/stratum-installer/internal/config"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

func answer(token string, err error) (PromptFunc, *int) {
	calls := 0
	return func(context.Context) (string, error) {
		calls++
		return token, err
	}, &calls
}

func newTestProvider(t *testing.T, cfgToken string) (*Provider, string) {
	t.Helper()
	t.Setenv(config.EnvAuthToken, "")

	cfg := config.DefaultConfig()
	cfg.Auth.Token = cfgToken
	path := filepath.Join(t.TempDir(), "config.toml")
	return NewProvider(cfg, path), path
}

func TestCredential_Order(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		p, _ := newTestProvider(t, "from-config")
		p.SetFlagToken(" from-flag ")
		prompt, calls := answer("from-prompt", nil)
		p.SetPrompt(prompt)

		cred, err := p.Credential(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Credential{Token: "from-flag", Source: SourceFlag}, cred)
		assert.Zero(t, *calls)
	})

	t.Run("config before prompt", func(t *testing.T) {
		p, _ := newTestProvider(t, "from-config")
		prompt, calls := answer("from-prompt", nil)
		p.SetPrompt(prompt)

		cred, err := p.Credential(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Credential{Token: "from-config", Source: SourceConfig}, cred)
		assert.Zero(t, *calls)
	})

	t.Run("environment", func(t *testing.T) {
		p, _ := newTestProvider(t, "from-env")
		t.Setenv(config.EnvAuthToken, "from-env")

		cred, err := p.Credential(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceEnv, cred.Source)
	})

	t.Run("no prompt means anonymous", func(t *testing.T) {
		p, _ := newTestProvider(t, "")

		cred, err := p.Credential(context.Background())
		require.NoError(t, err)
		assert.True(t, cred.Anonymous())
		assert.Equal(t, SourceNone, cred.Source)
	})
}

func TestCredential_PromptSavesToken(t *testing.T) {
	p, path := newTestProvider(t, "")
	prompt, calls := answer("  glpat-new \n", nil)
	p.SetPrompt(prompt)

	cred, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Credential{Token: "glpat-new", Source: SourcePrompt}, cred)
	assert.Equal(t, 1, *calls)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "glpat-new", cfg.Auth.Token)
}

func TestCredential_PromptNoSave(t *testing.T) {
	p, path := newTestProvider(t, "")
	p.cfg.Auth.SaveToken = false
	prompt, _ := answer("glpat-new", nil)
	p.SetPrompt(prompt)

	_, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestCredential_BlankPromptIsAnonymous(t *testing.T) {
	p, path := newTestProvider(t, "")
	prompt, _ := answer("   ", nil)
	p.SetPrompt(prompt)

	cred, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.True(t, cred.Anonymous())
	assert.NoFileExists(t, path)
}

func TestCredential_PromptFailure(t *testing.T) {
	p, _ := newTestProvider(t, "")
	prompt, _ := answer("", errors.New("stdin closed"))
	p.SetPrompt(prompt)

	cred, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.True(t, cred.Anonymous())
}

func TestCredential_PromptCanceled(t *testing.T) {
	p, _ := newTestProvider(t, "")
	prompt, _ := answer("", sierrors.ErrCanceled)
	p.SetPrompt(prompt)

	_, err := p.Credential(context.Background())
	require.Error(t, err)
	assert.True(t, sierrors.IsCanceled(err))
}

func TestCredential_SaveFailureIsNotFatal(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	t.Setenv(config.EnvAuthToken, "")
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	p := NewProvider(config.DefaultConfig(), filepath.Join(dir, "sub", "config.toml"))
	prompt, _ := answer("glpat-new", nil)
	p.SetPrompt(prompt)

	cred, err := p.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "glpat-new", cred.Token)
}

func TestStoreAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stratum", "config.toml")

	require.NoError(t, Clear(path))
	assert.NoFileExists(t, path)

	require.NoError(t, Store(path, " glpat-abc "))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "glpat-abc", cfg.Auth.Token)

	require.NoError(t, Clear(path))
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Auth.Token)

	err = Store(path, "")
	assert.True(t, sierrors.IsInvalid(err))
	err = Store(path, "two words")
	assert.True(t, sierrors.IsInvalid(err))
}
