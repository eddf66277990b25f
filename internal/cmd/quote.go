// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/spf13/cobra"
)

var (
	txCountFlag uint32
	amountFlag  uint32
	formatFlag  string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute the fee for a transaction count and amount",
	Example: `  # Canonical policy, 101 transactions moving 5000 stroops
  xbfee quote --tx-count 101 --amount 5000

  # Superseded threshold policy, JSON output
  xbfee quote --policy threshold --tx-count 2000 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := decoder.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		q, err := runner.Quote(cmd.Context(), cfg.Policy, txCountFlag, amountFlag)
		if err != nil {
			return fmt.Errorf("quote failed: %w", err)
		}

		out, err := decoder.NewQuoteFormatter(format).Format(q)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	quoteCmd.Flags().Uint32VarP(&txCountFlag, "tx-count", "n", 0, "Number of transactions")
	quoteCmd.Flags().Uint32VarP(&amountFlag, "amount", "a", 0, "Amount in stroops")
	quoteCmd.Flags().StringVarP(&formatFlag, "format", "f", string(decoder.FormatTable), "Output format (table, json)")

	rootCmd.AddCommand(quoteCmd)
}
