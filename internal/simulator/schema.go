// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package simulator

import "github.com/dotandev/xbfee/internal/feepolicy"

// InvocationRequest mirrors a host call: arguments are base64 SCV_U32
// values, (tx_count) or (tx_count, amount).
type InvocationRequest struct {
	Policy string   `json:"policy,omitempty"`
	Args   []string `json:"args"`
}

type InvocationResponse struct {
	Status    string          `json:"status"`
	ResultXdr string          `json:"result_xdr"`
	Quote     feepolicy.Quote `json:"quote"`
}
