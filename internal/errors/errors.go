// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrOverflow        = errors.New("arithmetic overflow")
	ErrUnknownPolicy   = errors.New("unknown fee policy")
	ErrInvalidPolicy   = errors.New("invalid fee policy")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrStoreFailed     = errors.New("quote store operation failed")
	ErrMarshalFailed   = errors.New("failed to marshal value")
	ErrUnmarshalFailed = errors.New("failed to unmarshal value")
)

// Wrap functions for consistent error wrapping
func WrapOverflow(op string, a, b uint64) error {
	return fmt.Errorf("%w: %s(%d, %d)", ErrOverflow, op, a, b)
}

func WrapUnknownPolicy(ref string) error {
	return fmt.Errorf("%w: %q", ErrUnknownPolicy, ref)
}

func WrapInvalidPolicy(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPolicy, msg)
}

func WrapInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

func WrapInvalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

func WrapStoreFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreFailed, err)
}

func WrapMarshalFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrMarshalFailed, err)
}

func WrapUnmarshalFailed(err error, input string) error {
	return fmt.Errorf("%w: %v, input: %s", ErrUnmarshalFailed, err, input)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
