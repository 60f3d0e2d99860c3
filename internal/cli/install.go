package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazuruo/stratum-installer/internal/auth"
	"github.com/chazuruo/stratum-installer/internal/catalog"
	"github.com/chazuruo/stratum-installer/internal/config"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
	"github.com/chazuruo/stratum-installer/internal/install"
	"github.com/chazuruo/stratum-installer/internal/progress"
	"github.com/chazuruo/stratum-installer/internal/target"
	"github.com/chazuruo/stratum-installer/internal/tier"
	"github.com/chazuruo/stratum-installer/internal/tui"
)

// InstallOptions contains the options for the install command.
type InstallOptions struct {
	Token     string
	Tier      string
	Yes       bool
	GameDir   string
	TargetDir string
}

// NewInstallCommand creates the install command.
func NewInstallCommand() *cobra.Command {
	opts := &InstallOptions{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and install a Stratum tier",
		Long: `Download a Stratum resolution tier and install it into the resource pack folder.

The install:
1. Checks the Minecraft and resource pack folders exist and are writable
2. Reads your access token (--token, STRATUM_AUTH_TOKEN, config, or a prompt)
3. Lists the tiers your token can access and asks which one to install
4. Removes every previous Stratum install from the resource pack folder
5. Downloads, extracts and renames the new tier

Without a token only the free tier is listed.

Exit codes:
  0   - Success
  1   - Generic error
  2   - Minecraft or resource pack folder unavailable
  3   - Download server unreachable or sent a bad response
  4   - No tier available
  5   - Installation failed
  130 - Canceled

Examples:
  stratum-installer                        # Interactive install
  stratum-installer install --tier 1       # Install the second tier listed
  stratum-installer install --yes          # Install the highest tier without asking
  stratum-installer install --target-dir ~/packs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "personal access token (overrides config)")
	cmd.Flags().StringVar(&opts.Tier, "tier", "", "tier index to install without asking (blank or invalid = highest)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not prompt; use the stored token and the highest tier")
	cmd.Flags().StringVar(&opts.GameDir, "game-dir", "", "Minecraft folder (default: platform location)")
	cmd.Flags().StringVar(&opts.TargetDir, "target-dir", "", "resource pack folder to install into (overrides --game-dir)")

	return cmd
}

func runInstall(ctx context.Context, opts *InstallOptions, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(errOut)
	interactive := useTUI(cfg)

	dirs, err := checkDirectories(cfg, opts, out)
	if err != nil {
		return err
	}

	var asker tui.Asker = tui.NewPlain(in, out)
	if interactive {
		asker = tui.Form{}
	}

	provider := auth.NewProvider(cfg, configPath)
	provider.SetFlagToken(opts.Token)
	provider.SetLogger(logger)
	if !opts.Yes {
		provider.SetPrompt(func(ctx context.Context) (string, error) {
			_, _ = fmt.Fprintln(out, tui.WarningStyle.Render("No personal access token found"))
			return asker.AskToken(ctx)
		})
	}

	cred, err := provider.Credential(ctx)
	if err != nil {
		return err
	}
	logger.Debug("using credential", "source", cred.Source)

	entries, err := newCatalogClient(cfg, logger).ListTiers(ctx, cred.Token)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w for %s", sierrors.ErrNoTiersAvailable, cfg.Bundle.Name)
	}

	raw := opts.Tier
	if raw == "" && !opts.Yes {
		if raw, err = asker.AskTier(ctx, entries); err != nil {
			return sierrors.Wrap(err, "choose tier")
		}
	}
	entry, err := tier.Resolve(entries, raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) != "" && tier.IsDefault(entries, raw) {
		_, _ = fmt.Fprintln(out, tui.WarningStyle.Render(fmt.Sprintf("%q is not a listed version, using the highest", raw)))
	}
	logger.Debug("selected tier", "entry", entry)
	_, _ = fmt.Fprintln(out, tui.SuccessStyle.Render("Installing "+entry.Name))

	res, err := installEntry(ctx, cfg, cred, entry, dirs.Packs, interactive, out, logger)
	if err != nil {
		return err
	}

	for _, name := range res.Removed {
		logger.Debug("removed", "name", name)
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", tui.SuccessStyle.Render("Installed "+entry.Name+" to"), tui.PathStyle.Render(res.Dir))
	_, _ = fmt.Fprintln(out, "Enable it in Minecraft under Options > Resource Packs.")
	return nil
}

// checkDirectories resolves the install directories and reports each check
// the way the game folder is searched.
func checkDirectories(cfg *config.Config, opts *InstallOptions, out io.Writer) (target.Dirs, error) {
	gameDir := cfg.Target.GameDir
	if opts.GameDir != "" {
		gameDir = opts.GameDir
	}

	dirs, err := target.Resolve(target.Options{
		GameDir:   gameDir,
		PacksDir:  cfg.Target.PacksDir,
		TargetDir: opts.TargetDir,
	})
	if err != nil {
		return target.Dirs{}, err
	}

	if dirs.Game != "" {
		_, _ = fmt.Fprintln(out, "Checking if Minecraft is installed")
		if err := target.CheckWritable(dirs.Game); err != nil {
			return target.Dirs{}, err
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", tui.SuccessStyle.Render("Found Minecraft folder at"), tui.PathStyle.Render(dirs.Game))
	}

	_, _ = fmt.Fprintln(out, "Checking the resource pack folder")
	if err := target.CheckWritable(dirs.Packs); err != nil {
		return target.Dirs{}, err
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", tui.SuccessStyle.Render("Found resource pack folder at"), tui.PathStyle.Render(dirs.Packs))

	return dirs, nil
}

// installEntry runs the installation pipeline, drawing download progress
// and a line per phase.
func installEntry(ctx context.Context, cfg *config.Config, cred auth.Credential, entry catalog.Entry,
	dir string, interactive bool, out io.Writer, logger *log.Logger) (*install.Result, error) {
	downloader := install.NewDownloader()
	downloader.SetHTTPClient(httpClient)
	downloader.SetToken(cred.Token)
	downloader.SetUserAgent(userAgent(cfg))
	downloader.SetLogger(logger)

	var (
		reporter progress.Reporter
		hook     install.ProgressHook
	)
	finish := func() {
		if reporter != nil {
			reporter.Finish()
			reporter = nil
		}
	}
	downloader.SetProgressHook(func(p install.Progress) {
		if hook != nil {
			hook(p)
		}
	})

	pipeline := install.NewPipeline(catalog.NewBundle(cfg.Bundle.Name, cfg.Bundle.Channel), downloader)
	pipeline.SetLogger(logger)
	pipeline.OnPhase(func(p install.Phase) {
		if p != install.PhaseDownload {
			finish()
		}
		if p == install.PhaseDone {
			return
		}
		_, _ = fmt.Fprintln(out, tui.MutedStyle.Render(p.Title()+"..."))
		if p == install.PhaseDownload {
			reporter = newReporter(interactive, out)
			hook = progress.Hook(reporter)
		}
	})

	res, err := pipeline.Install(ctx, install.Request{Entry: entry, TargetDir: dir})
	finish()
	return res, err
}

func newReporter(interactive bool, out io.Writer) progress.Reporter {
	if interactive {
		return progress.NewBar(out)
	}
	return progress.NewLine(out)
}
