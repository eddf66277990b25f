// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/stellar/go/amount"
)

type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatTable FormatType = "table"
)

func ParseFormat(s string) (FormatType, error) {
	switch FormatType(s) {
	case FormatJSON, FormatTable:
		return FormatType(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// QuoteFormatter renders quotes and policy listings for humans or scripts.
type QuoteFormatter struct {
	format FormatType
}

func NewQuoteFormatter(format FormatType) *QuoteFormatter {
	return &QuoteFormatter{format: format}
}

func (f *QuoteFormatter) Format(data interface{}) (string, error) {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(data)
	case FormatTable:
		return f.formatTable(data)
	default:
		return "", fmt.Errorf("unsupported format: %s", f.format)
	}
}

func (f *QuoteFormatter) formatJSON(data interface{}) (string, error) {
	if entries, ok := data.([]feepolicy.Entry); ok {
		data = entryViews(entries)
	}
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(output), nil
}

func (f *QuoteFormatter) formatTable(data interface{}) (string, error) {
	switch v := data.(type) {
	case feepolicy.Quote:
		return formatQuoteTable(v), nil
	case *feepolicy.Quote:
		if v == nil {
			return "", nil
		}
		return formatQuoteTable(*v), nil
	case []feepolicy.Quote:
		return formatQuoteListTable(v), nil
	case []feepolicy.Entry:
		return formatEntryTable(v), nil
	default:
		var buf bytes.Buffer
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "Type:\t%T\n", v)
		_, _ = fmt.Fprintf(w, "Value:\t%v\n", v)
		_ = w.Flush()
		return buf.String(), nil
	}
}

// XLM renders a stroop count in lumens for display.
func XLM(stroops uint32) string {
	return amount.StringFromInt64(int64(stroops)) + " XLM"
}

func formatQuoteTable(q feepolicy.Quote) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if q.Version != "" {
		_, _ = fmt.Fprintf(w, "Policy:\t%s (v%s)\n", q.Policy, q.Version)
	} else {
		_, _ = fmt.Fprintf(w, "Policy:\t%s\n", q.Policy)
	}
	_, _ = fmt.Fprintf(w, "Tx Count:\t%d\n", q.TxCount)
	_, _ = fmt.Fprintf(w, "Amount:\t%d (%s)\n", q.Amount, XLM(q.Amount))

	if q.Tier != feepolicy.TierNone {
		_, _ = fmt.Fprintf(w, "Tier:\t%s\n", q.Tier)
		_, _ = fmt.Fprintf(w, "Base Fee:\t%d\n", q.BaseFee)
		_, _ = fmt.Fprintf(w, "Variable Fee:\t%d\n", q.VariableFee)
		_, _ = fmt.Fprintf(w, "Multiplier:\t%d%%\n", q.Multiplier)
		_, _ = fmt.Fprintf(w, "Discounted:\t%d\n", q.Discounted)
	}
	_, _ = fmt.Fprintf(w, "Fee:\t%d (%s)\n", q.Fee, XLM(q.Fee))

	_ = w.Flush()
	return buf.String()
}

func formatQuoteListTable(quotes []feepolicy.Quote) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "POLICY\tTX COUNT\tAMOUNT\tTIER\tFEE")
	for _, q := range quotes {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\n", q.Policy, q.TxCount, q.Amount, q.Tier, q.Fee)
	}

	_ = w.Flush()
	return buf.String()
}

type entryView struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Superseded bool   `json:"superseded"`
}

func entryViews(entries []feepolicy.Entry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryView{
			Name:       e.Strategy.Name(),
			Version:    e.Version.String(),
			Superseded: e.Superseded,
		})
	}
	return out
}

func formatEntryTable(entries []feepolicy.Entry) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "NAME\tVERSION\tSTATUS")
	for _, v := range entryViews(entries) {
		status := "canonical"
		if v.Superseded {
			status = "superseded"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, v.Version, status)
	}

	_ = w.Flush()
	return buf.String()
}
