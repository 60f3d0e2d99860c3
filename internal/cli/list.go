package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/stratum-installer/internal/auth"
	"github.com/chazuruo/stratum-installer/internal/catalog"
	"github.com/chazuruo/stratum-installer/internal/tui"
)

// OutputFormat defines the output format for the list command.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatPlain OutputFormat = "plain"
)

// ListOptions contains the options for the list command.
type ListOptions struct {
	Token  string
	Format string
}

// tierRow is one listed tier.
type tierRow struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Tier  int    `json:"tier" yaml:"tier"`
	ID    int64  `json:"id" yaml:"id"`
	URL   string `json:"download_url" yaml:"download_url"`
}

// NewListCommand creates the list command for listing available tiers.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tiers your token can install",
		Long: `List the Stratum tiers available from the download server.

The stored token (or --token) is used; without one only the free tier is
listed. The index column is the value accepted by "install --tier".

Examples:
  stratum-installer list                  # List tiers in table format
  stratum-installer list --format json    # List tiers in JSON format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "personal access token (overrides config)")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, yaml, plain)")

	return cmd
}

func runList(ctx context.Context, opts *ListOptions, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format := OutputFormat(opts.Format)
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatPlain:
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, yaml, or plain)", opts.Format)
	}

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(errOut)

	provider := auth.NewProvider(cfg, configPath)
	provider.SetFlagToken(opts.Token)
	provider.SetLogger(logger)
	cred, err := provider.Credential(ctx)
	if err != nil {
		return err
	}

	entries, err := newCatalogClient(cfg, logger).ListTiers(ctx, cred.Token)
	if err != nil {
		return err
	}

	rows := tierRows(entries)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	case FormatPlain:
		for _, r := range rows {
			_, _ = fmt.Fprintln(out, r.Name)
		}
	default:
		printTable(out, rows, cred.Anonymous())
	}

	return nil
}

func tierRows(entries []catalog.Entry) []tierRow {
	rows := make([]tierRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, tierRow{Index: i, Name: e.Name, Tier: e.Tier(), ID: e.ID, URL: e.URL})
	}
	return rows
}

func printTable(out io.Writer, rows []tierRow, anonymous bool) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(out, "No tiers available.")
		return
	}

	tbl := table.New("INDEX", "NAME", "RESOLUTION").
		WithWriter(out).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return tui.MutedStyle.Render(fmt.Sprintf(format, vals...))
		})
	for _, r := range rows {
		tbl.AddRow(r.Index, r.Name, fmt.Sprintf("%dx", r.Tier))
	}
	tbl.Print()

	if anonymous {
		_, _ = fmt.Fprintln(out, "\nNo access token set; run `stratum-installer login` to list donor tiers.")
	}
}
