// Package auth decides which access token an install uses.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chazuruo/stratum-installer/internal/config"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// Source records where a credential came from.
type Source string

const (
	SourceNone   Source = "anonymous"
	SourceFlag   Source = "flag"
	SourceEnv    Source = "environment"
	SourceConfig Source = "config"
	SourcePrompt Source = "prompt"
)

// Credential is the token sent to the host. An empty Token means anonymous
// access, which only lists the free tier.
type Credential struct {
	Token  string
	Source Source
}

// Anonymous reports whether no token is set.
func (c Credential) Anonymous() bool { return c.Token == "" }

// PromptFunc asks the user for a token. An empty answer means anonymous.
type PromptFunc func(ctx context.Context) (string, error)

// Provider resolves the credential for a run.
//
// Resolution order: the --token flag, then STRATUM_AUTH_TOKEN or the config
// file, then the prompt. A prompted token is saved to the config file when
// [auth].save_token is set.
type Provider struct {
	cfg        *config.Config
	configPath string
	flagToken  string
	prompt     PromptFunc
	logger     *log.Logger
}

// NewProvider creates a Provider reading cfg, which was loaded from
// configPath ("" when no file is used).
func NewProvider(cfg *config.Config, configPath string) *Provider {
	return &Provider{
		cfg:        cfg,
		configPath: configPath,
		logger:     log.New(io.Discard),
	}
}

// SetFlagToken sets the token given on the command line.
func (p *Provider) SetFlagToken(token string) {
	p.flagToken = strings.TrimSpace(token)
}

// SetPrompt sets the interactive fallback. Without one, a missing token
// means anonymous access.
func (p *Provider) SetPrompt(fn PromptFunc) {
	p.prompt = fn
}

// SetLogger sets the diagnostic logger.
func (p *Provider) SetLogger(logger *log.Logger) {
	p.logger = logger
}

// Credential returns the credential to use. Failures to prompt or to save
// are logged as warnings and never stop the install; only a user abort is
// returned, as errors.ErrCanceled.
func (p *Provider) Credential(ctx context.Context) (Credential, error) {
	if p.flagToken != "" {
		return Credential{Token: p.flagToken, Source: SourceFlag}, nil
	}

	if token := strings.TrimSpace(p.cfg.Auth.Token); token != "" {
		src := SourceConfig
		if os.Getenv(config.EnvAuthToken) != "" {
			src = SourceEnv
		}
		return Credential{Token: token, Source: src}, nil
	}

	if p.prompt == nil {
		return Credential{Source: SourceNone}, nil
	}

	answer, err := p.prompt(ctx)
	if err != nil {
		if sierrors.IsCanceled(err) || errors.Is(err, context.Canceled) {
			return Credential{}, fmt.Errorf("%w: %w", sierrors.ErrCanceled, err)
		}
		p.logger.Warn("could not read access token, continuing without one",
			"error", fmt.Errorf("%w: %w", sierrors.ErrCredentialUnavailable, err))
		return Credential{Source: SourceNone}, nil
	}

	token := strings.TrimSpace(answer)
	if token == "" {
		return Credential{Source: SourceNone}, nil
	}

	if p.cfg.Auth.SaveToken {
		if err := p.save(token); err != nil {
			p.logger.Warn("access token will not be saved", "error", err)
		}
	}

	return Credential{Token: token, Source: SourcePrompt}, nil
}

func (p *Provider) save(token string) error {
	path := p.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return fmt.Errorf("%w: %w", sierrors.ErrCredentialUnavailable, err)
		}
	}

	if err := config.SaveToken(path, token); err != nil {
		return fmt.Errorf("%w: %w", sierrors.ErrCredentialUnavailable, err)
	}
	p.configPath = path
	p.logger.Debug("saved access token", "path", path)
	return nil
}

// Store writes token to the config file at path, creating it when needed.
func Store(path, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty access token", sierrors.ErrInvalid)
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("%w: access token contains whitespace", sierrors.ErrInvalid)
	}
	if err := config.SaveToken(path, token); err != nil {
		return fmt.Errorf("%w: %w", sierrors.ErrCredentialUnavailable, err)
	}
	return nil
}

// Clear removes the stored token from the config file at path. A missing
// file is not an error.
func Clear(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := config.SaveToken(path, ""); err != nil {
		return fmt.Errorf("%w: %w", sierrors.ErrCredentialUnavailable, err)
	}
	return nil
}
