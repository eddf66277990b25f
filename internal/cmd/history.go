// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/xbfee/internal/db"
	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/spf13/cobra"
)

var (
	historyTierFlag   string
	historyFailedFlag bool
	historyLimitFlag  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Search recorded quotes",
	Long: `Search the quote log written by --record. Filters combine: --policy limits
to the strategy it resolves to (a name or version constraint), --tier to one
volume tier, --failed to quotes that overflowed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var policy string
		if cfg.Policy != "" {
			entry, err := feepolicy.DefaultRegistry().Resolve(cfg.Policy)
			if err != nil {
				return err
			}
			policy = entry.Strategy.Name()
		}

		store, err := db.InitDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()

		params := db.SearchParams{
			Policy:     policy,
			Tier:       historyTierFlag,
			FailedOnly: historyFailedFlag,
			Limit:      historyLimitFlag,
		}

		records, err := store.SearchQuotes(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No matching quotes found.")
			return nil
		}

		fmt.Fprintf(out, "Found %d matching quotes:\n", len(records))
		for _, r := range records {
			fmt.Fprintln(out, "--------------------------------------------------")
			fmt.Fprintf(out, "ID: %d\n", r.ID)
			fmt.Fprintf(out, "Time: %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Policy: %s %s\n", r.Policy, r.Version)
			fmt.Fprintf(out, "Tx Count: %d\n", r.TxCount)
			fmt.Fprintf(out, "Amount: %d\n", r.Amount)
			if r.Error != "" {
				fmt.Fprintf(out, "Error: %s\n", r.Error)
				continue
			}
			fmt.Fprintf(out, "Tier: %s\n", r.Tier)
			fmt.Fprintf(out, "Fee: %d (%s)\n", r.Fee, decoder.XLM(r.Fee))
		}
		fmt.Fprintln(out, "--------------------------------------------------")

		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyTierFlag, "tier", "", "Only quotes in this tier (low, medium, high)")
	historyCmd.Flags().BoolVar(&historyFailedFlag, "failed", false, "Only quotes that failed")
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 10, "Maximum number of results to return")

	rootCmd.AddCommand(historyCmd)
}
