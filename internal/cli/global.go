// Package cli provides Cobra command definitions for stratum-installer.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chazuruo/stratum-installer/internal/catalog"
	"github.com/chazuruo/stratum-installer/internal/config"
	"github.com/chazuruo/stratum-installer/internal/tui"
)

// Build information, set at build time using ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// ConfigPath is the config file given with --config.
	ConfigPath string

	// Verbose enables debug logging.
	Verbose bool

	// globalMutex protects the global flags for concurrent access.
	globalMutex sync.RWMutex

	// httpClient is used for every request to the host.
	httpClient = http.DefaultClient
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; use plain prompts and output")
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"config file path (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&Verbose, "verbose", false,
		"log diagnostic details to stderr")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return NoTUI
}

// NewRootCommand creates the stratum-installer command tree. Without a
// subcommand it installs.
func NewRootCommand() *cobra.Command {
	install := NewInstallCommand()

	rootCmd := &cobra.Command{
		Use:   "stratum-installer",
		Short: "Install the Stratum resource pack",
		Long: `stratum-installer downloads a Stratum resolution tier from the Continuum
download server and installs it into your Minecraft resource pack folder,
replacing any previous Stratum install.

Running it without a subcommand is the same as "stratum-installer install".`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          install.RunE,
	}

	AddGlobalFlags(rootCmd)
	rootCmd.Flags().AddFlagSet(install.Flags())

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(install)
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// newLogger creates the diagnostic logger, at debug level with --verbose.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "stratum-installer"})
	if Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the config named by --config, or else the config from the
// standard location with defaults. It also returns the path a token is saved to.
func loadConfig() (*config.Config, string, error) {
	globalMutex.RLock()
	path := ConfigPath
	globalMutex.RUnlock()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			cfg, err := config.Load(path)
			return cfg, path, err
		}
		cfg, err := config.LoadDefaults()
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return nil, "", err
	}
	if path = config.DetectConfigPath(); path == "" {
		path = config.SavePath()
	}
	return cfg, path, nil
}

// userAgent returns the configured User-Agent or the build default.
func userAgent(cfg *config.Config) string {
	if cfg.Host.UserAgent != "" {
		return cfg.Host.UserAgent
	}
	return "stratum-installer/" + Version
}

// newCatalogClient creates a catalog client for the configured host.
func newCatalogClient(cfg *config.Config, logger *log.Logger) *catalog.Client {
	client := catalog.NewClient(cfg.Host.BaseURL, userAgent(cfg),
		catalog.NewBundle(cfg.Bundle.Name, cfg.Bundle.Channel))
	client.SetHTTPClient(httpClient)
	client.SetLogger(logger)
	return client
}

// useTUI reports whether huh prompts and the progress bar should be used.
func useTUI(cfg *config.Config) bool {
	return cfg.TUI.Enabled && !IsNoTUI() && tui.IsTerminal(os.Stdin) && tui.IsTerminal(os.Stdout)
}
