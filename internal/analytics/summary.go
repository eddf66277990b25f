// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package analytics

import (
	"fmt"
	"sort"

	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/dotandev/xbfee/internal/safemath"
)

// Summary accumulates fees over a batch of quotes. TotalFee is checked
// against 64-bit overflow.
type Summary struct {
	Count    int
	Failed   int
	TotalFee uint64
	MinFee   uint32
	MaxFee   uint32
	ByTier   map[feepolicy.Tier]int
}

func NewSummary() *Summary {
	return &Summary{ByTier: make(map[feepolicy.Tier]int)}
}

// Add folds one quote outcome into the summary.
// An error from the running total leaves the summary unchanged.
func (s *Summary) Add(q feepolicy.Quote, quoteErr error) error {
	if quoteErr != nil {
		s.Count++
		s.Failed++
		return nil
	}

	total, err := safemath.Add(s.TotalFee, uint64(q.Fee))
	if err != nil {
		return err
	}
	s.TotalFee = total
	s.Count++

	ok := s.Count - s.Failed
	if ok == 1 || q.Fee < s.MinFee {
		s.MinFee = q.Fee
	}
	if q.Fee > s.MaxFee {
		s.MaxFee = q.Fee
	}
	s.ByTier[q.Tier]++
	return nil
}

// AverageFee is the floor of the mean over successful quotes.
func (s *Summary) AverageFee() uint64 {
	ok := s.Count - s.Failed
	if ok == 0 {
		return 0
	}
	return s.TotalFee / uint64(ok)
}

// Lines renders the summary for terminal output.
func (s *Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Quotes: %d (%d failed)", s.Count, s.Failed),
		fmt.Sprintf("Total fee: %d", s.TotalFee),
		fmt.Sprintf("Fee range: %d..%d (avg %d)", s.MinFee, s.MaxFee, s.AverageFee()),
	}

	tiers := make([]feepolicy.Tier, 0, len(s.ByTier))
	for t := range s.ByTier {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	for _, t := range tiers {
		lines = append(lines, fmt.Sprintf("  %s: %d", t, s.ByTier[t]))
	}
	return lines
}
