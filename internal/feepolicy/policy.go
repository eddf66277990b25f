// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package feepolicy maps a transaction count and amount to a fee.
//
// All amounts are in stroops. Every computation is integer-only and checked:
// a result that does not fit in 32 bits is reported as errors.ErrOverflow,
// never wrapped.
package feepolicy

import (
	"github.com/dotandev/xbfee/internal/errors"
	"github.com/dotandev/xbfee/internal/safemath"
)

// BaseFee is the fixed charge levied on every transaction.
const BaseFee uint32 = 5

// Parameters of the canonical tiered schedule.
const (
	VariableFeeDivisor uint32 = 1000 // 0.1% of amount
	PercentScale       uint32 = 100

	MediumTierAbove uint32 = 10
	HighTierAbove   uint32 = 100

	LowMultiplier    uint32 = 100
	MediumMultiplier uint32 = 90
	HighMultiplier   uint32 = 80
)

// TieredName is the registry name of the tiered strategy.
const TieredName = "tiered"

// TieredPolicy charges a base fee plus a proportional fee on the amount,
// discounted by volume tier. Tier thresholds are exclusive lower bounds.
type TieredPolicy struct {
	BaseFee uint32
	Divisor uint32
	Scale   uint32

	MediumAbove uint32
	HighAbove   uint32

	LowMultiplier    uint32
	MediumMultiplier uint32
	HighMultiplier   uint32
}

var _ Strategy = TieredPolicy{}

// Canonical returns the schedule every executor must agree on.
func Canonical() TieredPolicy {
	return TieredPolicy{
		BaseFee:          BaseFee,
		Divisor:          VariableFeeDivisor,
		Scale:            PercentScale,
		MediumAbove:      MediumTierAbove,
		HighAbove:        HighTierAbove,
		LowMultiplier:    LowMultiplier,
		MediumMultiplier: MediumMultiplier,
		HighMultiplier:   HighMultiplier,
	}
}

// Calculate returns the canonical fee for txCount and amount.
func Calculate(txCount, amount uint32) (uint32, error) {
	q, err := Canonical().Quote(txCount, amount)
	if err != nil {
		return 0, err
	}
	return q.Fee, nil
}

// Validate checks that the schedule can be evaluated.
func (p TieredPolicy) Validate() error {
	if p.Divisor == 0 {
		return errors.WrapInvalidPolicy("divisor must be positive")
	}
	if p.Scale == 0 {
		return errors.WrapInvalidPolicy("percent scale must be positive")
	}
	if p.MediumAbove >= p.HighAbove {
		return errors.WrapInvalidPolicy("medium tier threshold must be below high tier threshold")
	}
	return nil
}

func (p TieredPolicy) Name() string { return TieredName }

// Tier selects the volume tier for txCount.
func (p TieredPolicy) Tier(txCount uint32) Tier {
	switch {
	case txCount > p.HighAbove:
		return TierHigh
	case txCount > p.MediumAbove:
		return TierMedium
	default:
		return TierLow
	}
}

// Multiplier returns the percent applied to the variable fee in tier t.
func (p TieredPolicy) Multiplier(t Tier) uint32 {
	switch t {
	case TierHigh:
		return p.HighMultiplier
	case TierMedium:
		return p.MediumMultiplier
	default:
		return p.LowMultiplier
	}
}

// Quote computes BaseFee + floor(floor(amount/Divisor) * multiplier / Scale).
func (p TieredPolicy) Quote(txCount, amount uint32) (Quote, error) {
	if err := p.Validate(); err != nil {
		return Quote{}, err
	}

	tier := p.Tier(txCount)
	multiplier := p.Multiplier(tier)
	variable := amount / p.Divisor

	scaled, err := safemath.Mul(variable, multiplier)
	if err != nil {
		return Quote{}, err
	}
	discounted := scaled / p.Scale

	fee, err := safemath.Add(p.BaseFee, discounted)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Policy:      TieredName,
		TxCount:     txCount,
		Amount:      amount,
		Tier:        tier,
		BaseFee:     p.BaseFee,
		VariableFee: variable,
		Multiplier:  multiplier,
		Discounted:  discounted,
		Fee:         fee,
	}, nil
}
