package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// VersionInfo contains version information for the binary.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go_version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// VersionOptions contains the options for the version command.
type VersionOptions struct {
	Short bool
	JSON  bool
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long: `Display the stratum-installer version information.

Shows version, commit hash, build date, Go version and platform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Short, "short", false, "print only the version number")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output in JSON format")

	return cmd
}

func runVersion(opts *VersionOptions, out io.Writer) error {
	info := VersionInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if opts.JSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(info); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	if opts.Short {
		_, _ = fmt.Fprintln(out, info.Version)
		return nil
	}

	_, _ = fmt.Fprintf(out, "stratum-installer version %s\n", info.Version)
	_, _ = fmt.Fprintf(out, "commit: %s\n", info.Commit)
	_, _ = fmt.Fprintf(out, "built at: %s\n", info.Date)
	_, _ = fmt.Fprintf(out, "go version: %s %s/%s\n", info.Go, info.OS, info.Arch)

	return nil
}
