// Package main is the entry point for the mdconv CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/yaklabco/mdconv/internal/cli"
	"github.com/yaklabco/mdconv/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	logger := logging.Default()
	logger.Error("command failed", logging.FieldError, err)
	if errors.Is(err, cli.ErrUsage) {
		logger.Info("run 'mdconv --help' for usage")
	}
	return cli.ExitCode(err)
}
