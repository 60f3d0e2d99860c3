package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazuruo/stratum-installer/internal/auth"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
	"github.com/chazuruo/stratum-installer/internal/tui"
)

// LoginOptions contains the options for the login command.
type LoginOptions struct {
	Token string
}

// NewLoginCommand creates the login command, which stores an access token.
func NewLoginCommand() *cobra.Command {
	opts := &LoginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a personal access token",
		Long: `Store a personal access token in the config file.

The token needs the 'api' scope and is created under User Settings > Access
Tokens on the download server. Without --token it is read from a prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "personal access token to store")

	return cmd
}

func runLogin(ctx context.Context, opts *LoginOptions, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}
	if configPath == "" {
		return fmt.Errorf("%w: no config file location", sierrors.ErrCredentialUnavailable)
	}

	token := strings.TrimSpace(opts.Token)
	if token == "" {
		var asker tui.Asker = tui.NewPlain(in, out)
		if useTUI(cfg) {
			asker = tui.Form{}
		}
		if token, err = asker.AskToken(ctx); err != nil {
			return err
		}
	}

	if err := auth.Store(configPath, token); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%s %s\n", tui.SuccessStyle.Render("Saved access token to"), tui.PathStyle.Render(configPath))
	return nil
}

// NewLogoutCommand creates the logout command, which removes the stored token.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored personal access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.OutOrStdout())
		},
	}
}

func runLogout(out io.Writer) error {
	_, configPath, err := loadConfig()
	if err != nil {
		return err
	}
	if configPath == "" {
		return nil
	}

	if err := auth.Clear(configPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, tui.SuccessStyle.Render("Removed stored access token"))
	return nil
}
