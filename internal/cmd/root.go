// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dotandev/xbfee/internal/config"
	"github.com/dotandev/xbfee/internal/db"
	"github.com/dotandev/xbfee/internal/logger"
	"github.com/dotandev/xbfee/internal/simulator"
	"github.com/dotandev/xbfee/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	policyFlag  string
	dbPathFlag  string
	recordFlag  bool
	logJSONFlag bool
	verboseFlag bool

	shutdownTelemetry telemetry.ShutdownFunc
)

var rootCmd = &cobra.Command{
	Use:   "xbfee",
	Short: "Compute cross-border payment fees",
	Long: `xbfee computes the fee charged for a cross-border payment from the
transaction count and the amount in stroops.

The canonical policy charges a base fee of 5 stroops plus 0.1% of the amount,
discounted 10% above 10 transactions and 20% above 100 transactions. Superseded
count-only policies remain selectable by name or version constraint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("policy") {
			loaded.Policy = policyFlag
		}
		if flags.Changed("db") {
			loaded.DBPath = dbPathFlag
		}
		if flags.Changed("record") {
			loaded.Record = recordFlag
		}
		if flags.Changed("log-json") {
			loaded.LogJSON = logJSONFlag
		}
		applyServeFlags(cmd, &loaded)

		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logger.SetOutput(cmd.ErrOrStderr(), cfg.LogJSON)
		if verboseFlag {
			logger.SetLevel(slog.LevelDebug)
		}

		shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{Endpoint: cfg.OTLPEndpoint})
		if err != nil {
			return err
		}
		shutdownTelemetry = shutdown
		return nil
	},
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx)
}

// execute runs the command tree and flushes traces whether or not the
// command failed. Cobra skips post-run hooks after a RunE error.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if shutdownTelemetry != nil {
		shutdownErr := shutdownTelemetry(context.Background())
		shutdownTelemetry = nil
		if err == nil && shutdownErr != nil {
			err = fmt.Errorf("failed to flush traces: %w", shutdownErr)
		}
	}
	return err
}

// newRunner builds a host runner, attaching the quote log when recording.
func newRunner() (*simulator.HostRunner, func(), error) {
	if !cfg.Record {
		return simulator.NewRunner(nil, nil), func() {}, nil
	}

	store, err := db.InitDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Logger.Debug("Recording quotes", "db", cfg.DBPath)
	return simulator.NewRunner(nil, store), func() { _ = store.Close() }, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&policyFlag, "policy", "p", "", "Fee policy name or version constraint (default: canonical tiered policy)")
	pf.StringVar(&dbPathFlag, "db", "", "Path of the quote log database")
	pf.BoolVar(&recordFlag, "record", false, "Record every quote in the quote log")
	pf.BoolVar(&logJSONFlag, "log-json", false, "Emit logs as JSON")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}
