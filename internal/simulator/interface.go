// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package simulator

import (
	"context"

	"github.com/dotandev/xbfee/internal/db"
)

type Runner interface {
	Run(ctx context.Context, req *InvocationRequest) (*InvocationResponse, error)
}

// Recorder persists invocation outcomes. *db.Store satisfies it.
type Recorder interface {
	RecordQuote(ctx context.Context, rec db.QuoteRecord) (int64, error)
}
