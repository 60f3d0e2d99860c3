package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chazuruo/stratum-installer/internal/cli"
	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

func main() {
	cli.Version, cli.Commit, cli.Date = Version, Commit, Date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		stop()
		os.Exit(sierrors.ExitCode(err))
	}
}
