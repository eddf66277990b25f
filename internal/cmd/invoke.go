// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/simulator"
	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <tx-count-xdr> [amount-xdr]",
	Short: "Invoke the fee entry point with XDR-encoded arguments",
	Long: `Invoke the fee entry point the way the contract host does: each argument is
a base64 ScVal of type SCV_U32, and the result is printed the same way.
A missing amount is treated as zero.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		resp, err := runner.Run(cmd.Context(), &simulator.InvocationRequest{Policy: cfg.Policy, Args: args})
		if err != nil {
			return fmt.Errorf("invocation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Result XDR: %s\n", resp.ResultXdr)
		fmt.Fprintf(out, "Fee: %d (%s)\n", resp.Quote.Fee, decoder.XLM(resp.Quote.Fee))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}
