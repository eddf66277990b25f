// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/spf13/cobra"
)

var policiesFormatFlag string

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the selectable fee policies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := decoder.ParseFormat(policiesFormatFlag)
		if err != nil {
			return err
		}

		out, err := decoder.NewQuoteFormatter(format).Format(feepolicy.DefaultRegistry().List())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	policiesCmd.Flags().StringVarP(&policiesFormatFlag, "format", "f", string(decoder.FormatTable), "Output format (table, json)")

	rootCmd.AddCommand(policiesCmd)
}
