// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

// Package safemath provides overflow-checked unsigned arithmetic.
package safemath

import "github.com/dotandev/xbfee/internal/errors"

// Unsigned permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MaxUint returns the largest value representable by T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns a + b, or an error wrapping errors.ErrOverflow.
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, errors.WrapOverflow("add", uint64(a), uint64(b))
	}
	return a + b, nil
}

// Mul returns a * b, or an error wrapping errors.ErrOverflow.
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, errors.WrapOverflow("mul", uint64(a), uint64(b))
	}
	return a * b, nil
}
