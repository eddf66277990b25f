// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package feepolicy

import (
	"strings"

	"github.com/dotandev/xbfee/internal/errors"
)

// Tier is the volume bucket a transaction count falls into.
type Tier uint8

const (
	// TierNone is reported by strategies that do not bucket by volume.
	TierNone Tier = iota
	TierLow
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "LOW"
	case TierMedium:
		return "MEDIUM"
	case TierHigh:
		return "HIGH"
	default:
		return "NONE"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier accepts a tier name in any case.
func ParseTier(s string) (Tier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return TierNone, nil
	case "LOW":
		return TierLow, nil
	case "MEDIUM":
		return TierMedium, nil
	case "HIGH":
		return TierHigh, nil
	default:
		return TierNone, errors.WrapInvalidArgument("unknown tier " + s)
	}
}
