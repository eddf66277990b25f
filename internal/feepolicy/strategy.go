// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package feepolicy

import "github.com/dotandev/xbfee/internal/safemath"

// Strategy is one named fee rule.
type Strategy interface {
	Name() string
	Quote(txCount, amount uint32) (Quote, error)
}

// Quote is the itemised result of a fee computation. Fields that a strategy
// does not use are left at zero.
type Quote struct {
	Policy      string `json:"policy"`
	Version     string `json:"version,omitempty"`
	TxCount     uint32 `json:"tx_count"`
	Amount      uint32 `json:"amount"`
	Tier        Tier   `json:"tier"`
	BaseFee     uint32 `json:"base_fee"`
	VariableFee uint32 `json:"variable_fee"`
	Multiplier  uint32 `json:"multiplier"`
	Discounted  uint32 `json:"discounted_fee"`
	Fee         uint32 `json:"fee"`
}

const (
	ThresholdName      = "threshold"
	PerTransactionName = "per-transaction"

	// LegacyFlatFee was the flat charge of the count-only schedules.
	LegacyFlatFee uint32 = 100
)

// ThresholdPolicy charges a flat fee, multiplied by Factor once txCount
// exceeds Above. The amount is ignored.
type ThresholdPolicy struct {
	Fee    uint32
	Above  uint32
	Factor uint32
}

var _ Strategy = ThresholdPolicy{}

// LegacyThreshold doubles the flat fee above 1000 transactions.
func LegacyThreshold() ThresholdPolicy {
	return ThresholdPolicy{Fee: LegacyFlatFee, Above: 1000, Factor: 2}
}

func (p ThresholdPolicy) Name() string { return ThresholdName }

func (p ThresholdPolicy) Quote(txCount, amount uint32) (Quote, error) {
	q := Quote{
		Policy:     ThresholdName,
		TxCount:    txCount,
		Amount:     amount,
		BaseFee:    p.Fee,
		Multiplier: PercentScale,
		Fee:        p.Fee,
	}
	if txCount <= p.Above {
		return q, nil
	}

	fee, err := safemath.Mul(p.Fee, p.Factor)
	if err != nil {
		return Quote{}, err
	}
	pct, err := safemath.Mul(p.Factor, PercentScale)
	if err != nil {
		return Quote{}, err
	}
	q.Multiplier = pct
	q.Fee = fee
	return q, nil
}

// PerTransactionPolicy charges Rate for every transaction counted.
// The amount is ignored.
type PerTransactionPolicy struct {
	Rate uint32
}

var _ Strategy = PerTransactionPolicy{}

func LegacyPerTransaction() PerTransactionPolicy {
	return PerTransactionPolicy{Rate: LegacyFlatFee}
}

func (p PerTransactionPolicy) Name() string { return PerTransactionName }

func (p PerTransactionPolicy) Quote(txCount, amount uint32) (Quote, error) {
	fee, err := safemath.Mul(p.Rate, txCount)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Policy:      PerTransactionName,
		TxCount:     txCount,
		Amount:      amount,
		VariableFee: fee,
		Fee:         fee,
	}, nil
}
