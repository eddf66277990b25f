// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package decoder

import (
	"fmt"

	"github.com/dotandev/xbfee/internal/errors"
	"github.com/stellar/go/xdr"
)

// EncodeU32 renders v as a base64 SCV_U32 value.
func EncodeU32(v uint32) (string, error) {
	u := xdr.Uint32(v)
	out, err := xdr.MarshalBase64(xdr.ScVal{Type: xdr.ScValTypeScvU32, U32: &u})
	if err != nil {
		return "", errors.WrapMarshalFailed(err)
	}
	return out, nil
}

// DecodeU32 parses a base64 ScVal that must hold an SCV_U32. Every failure
// is an invalid argument; undecodable input also matches ErrUnmarshalFailed.
func DecodeU32(arg string) (uint32, error) {
	var val xdr.ScVal
	if err := xdr.SafeUnmarshalBase64(arg, &val); err != nil {
		return 0, fmt.Errorf("%w: %w", errors.ErrInvalidArgument, errors.WrapUnmarshalFailed(err, arg))
	}
	if val.Type != xdr.ScValTypeScvU32 || val.U32 == nil {
		return 0, errors.WrapInvalidArgument(fmt.Sprintf("expected %s, got %s", xdr.ScValTypeScvU32, val.Type))
	}
	return uint32(*val.U32), nil
}

// EncodeFeeArgs builds the two-argument call shape.
func EncodeFeeArgs(txCount, amount uint32) ([]string, error) {
	tx, err := EncodeU32(txCount)
	if err != nil {
		return nil, err
	}
	amt, err := EncodeU32(amount)
	if err != nil {
		return nil, err
	}
	return []string{tx, amt}, nil
}

// DecodeFeeArgs accepts (tx_count) or (tx_count, amount). A missing amount
// is zero.
func DecodeFeeArgs(args []string) (txCount, amount uint32, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, errors.WrapInvalidArgument(fmt.Sprintf("expected 1 or 2 arguments, got %d", len(args)))
	}

	if txCount, err = DecodeU32(args[0]); err != nil {
		return 0, 0, fmt.Errorf("tx_count: %w", err)
	}
	if len(args) == 2 {
		if amount, err = DecodeU32(args[1]); err != nil {
			return 0, 0, fmt.Errorf("amount: %w", err)
		}
	}
	return txCount, amount, nil
}
