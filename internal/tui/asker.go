// Package tui holds the installer's interactive prompts and message styles.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/chazuruo/stratum-installer/internal/catalog"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
	"github.com/chazuruo/stratum-installer/internal/tier"
)

const (
	donateURL = "https://continuum.graphics/stratum-rp"
	tokensURL = "https://dl.continuum.graphics/profile/personal_access_tokens"
)

// TokenHelp explains where an access token comes from.
func TokenHelp() string {
	return "Higher resolutions (256x and up) require a donation at " + LinkStyle.Render(donateURL) +
		". Then create a personal access token with the 'api' scope under " +
		LinkStyle.Render(tokensURL) + ".\nLeave it blank to use the free tier."
}

const tierHelp = "Select a version to download. If left blank, the highest resolution is installed."

// Asker collects the answers an install needs from the user.
type Asker interface {
	// AskToken returns the access token, "" for anonymous access.
	AskToken(ctx context.Context) (string, error)
	// AskTier returns the raw tier answer for tier.Resolve.
	AskTier(ctx context.Context, entries []catalog.Entry) (string, error)
}

// Form asks with huh forms.
type Form struct{}

// AskToken implements Asker.
func (Form) AskToken(ctx context.Context) (string, error) {
	var token string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Personal access token").
				Description(TokenHelp()).
				EchoMode(huh.EchoModePassword).
				Value(&token),
		),
	).RunWithContext(ctx)
	return token, formError(err)
}

// AskTier implements Asker.
func (Form) AskTier(ctx context.Context, entries []catalog.Entry) (string, error) {
	var answer string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Version").
				Description(tierHelp+"\n"+strings.TrimRight(tier.Menu(entries), "\n")).
				Placeholder(fmt.Sprint(len(entries)-1)).
				Value(&answer),
		),
	).RunWithContext(ctx)
	return answer, formError(err)
}

func formError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", sierrors.ErrCanceled, err)
	default:
		return fmt.Errorf("form error: %w", err)
	}
}

// Plain asks with line prompts on a reader, for --no-tui and piped input.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain creates a Plain asker reading answers from in and writing
// prompts to out.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

// AskToken implements Asker.
func (p *Plain) AskToken(ctx context.Context) (string, error) {
	_, _ = fmt.Fprintln(p.out, TokenHelp())
	return p.readLine(ctx, "Personal Access Token: ")
}

// AskTier implements Asker.
func (p *Plain) AskTier(ctx context.Context, entries []catalog.Entry) (string, error) {
	_, _ = fmt.Fprintln(p.out, tierHelp)
	return p.readLine(ctx, tier.Menu(entries)+"Type the corresponding number: ")
}

// readLine prints prompt and returns the next line. End of input counts as
// a blank answer. Cancellation returns at once; the pending read is left to
// finish on its own.
func (p *Plain) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", sierrors.ErrCanceled, err)
	}
	_, _ = fmt.Fprint(p.out, prompt)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", fmt.Errorf("%w: %w", sierrors.ErrCanceled, ctx.Err())
	case r := <-done:
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}
