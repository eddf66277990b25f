// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dotandev/xbfee/internal/analytics"
	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	batchQuietFlag   bool
	batchDetailsFlag bool
)

type batchRow struct {
	Line    int
	TxCount uint32
	Amount  uint32
}

// parseBatch reads tx_count,amount rows. A non-numeric first row is taken as
// a header; lines starting with # are skipped; a missing amount is zero.
func parseBatch(r io.Reader) ([]batchRow, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []batchRow
	for i := 0; ; i++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read batch: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(rec) == 0 || len(rec) > 2 {
			return nil, fmt.Errorf("line %d: expected tx_count[,amount], got %d fields", line, len(rec))
		}

		tx, err := parseUint32(rec[0])
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("line %d: tx_count: %w", line, err)
		}

		row := batchRow{Line: line, TxCount: tx}
		if len(rec) == 2 {
			if row.Amount, err = parseUint32(rec[1]); err != nil {
				return nil, fmt.Errorf("line %d: amount: %w", line, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

var batchCmd = &cobra.Command{
	Use:   "batch <file.csv>",
	Short: "Quote every row of a CSV file",
	Long: `Quote every tx_count,amount row of a CSV file and print a summary.

Rows that overflow are counted as failed and reported; the batch continues.`,
	Example: `  xbfee batch payments.csv --details
  xbfee batch payments.csv --policy threshold --record`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open batch file: %w", err)
		}
		defer f.Close()

		rows, err := parseBatch(f)
		if err != nil {
			return err
		}

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		var barOut io.Writer = cmd.ErrOrStderr()
		if batchQuietFlag {
			barOut = io.Discard
		}
		bar := progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(barOut),
			progressbar.OptionSetDescription("quoting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		out := cmd.OutOrStdout()
		summary := analytics.NewSummary()
		quotes := make([]feepolicy.Quote, 0, len(rows))
		var failures []string

		for _, row := range rows {
			q, qerr := runner.Quote(cmd.Context(), cfg.Policy, row.TxCount, row.Amount)
			if err := summary.Add(q, qerr); err != nil {
				return fmt.Errorf("line %d: %w", row.Line, err)
			}
			if qerr != nil {
				failures = append(failures, fmt.Sprintf("line %d: %v", row.Line, qerr))
			} else {
				quotes = append(quotes, q)
			}
			_ = bar.Add(1)
		}
		_ = bar.Finish()

		if batchDetailsFlag && len(quotes) > 0 {
			table, err := decoder.NewQuoteFormatter(decoder.FormatTable).Format(quotes)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
		}

		for _, line := range summary.Lines() {
			fmt.Fprintln(out, line)
		}
		for _, failure := range failures {
			fmt.Fprintf(out, "Failed %s\n", failure)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().BoolVarP(&batchQuietFlag, "quiet", "q", false, "Hide the progress bar")
	batchCmd.Flags().BoolVar(&batchDetailsFlag, "details", false, "Print every quote")

	rootCmd.AddCommand(batchCmd)
}
