// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package simulator

import (
	"context"

	"github.com/dotandev/xbfee/internal/db"
	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/dotandev/xbfee/internal/logger"
	"github.com/dotandev/xbfee/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Runner = (*HostRunner)(nil)

// HostRunner invokes fee strategies in-process the way the contract host
// would. Recorder is optional.
type HostRunner struct {
	Registry *feepolicy.Registry
	Recorder Recorder
}

// NewRunner creates a runner over reg, falling back to the default registry.
func NewRunner(reg *feepolicy.Registry, rec Recorder) *HostRunner {
	if reg == nil {
		reg = feepolicy.DefaultRegistry()
	}
	return &HostRunner{Registry: reg, Recorder: rec}
}

// Run decodes the XDR arguments, computes the fee and encodes the result.
func (r *HostRunner) Run(ctx context.Context, req *InvocationRequest) (*InvocationResponse, error) {
	logger.Logger.Debug("Starting invocation", "policy", req.Policy, "args", len(req.Args))

	txCount, amount, err := decoder.DecodeFeeArgs(req.Args)
	if err != nil {
		logger.Logger.Error("Failed to decode invocation arguments", "error", err)
		return nil, err
	}

	q, err := r.Quote(ctx, req.Policy, txCount, amount)
	if err != nil {
		return nil, err
	}

	result, err := decoder.EncodeU32(q.Fee)
	if err != nil {
		logger.Logger.Error("Failed to encode invocation result", "error", err)
		return nil, err
	}

	return &InvocationResponse{Status: "success", ResultXdr: result, Quote: q}, nil
}

// Quote resolves policy and computes the fee for txCount and amount.
func (r *HostRunner) Quote(ctx context.Context, policy string, txCount, amount uint32) (feepolicy.Quote, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "fee.quote", trace.WithAttributes(
		attribute.String("fee.policy_ref", policy),
		attribute.Int64("fee.tx_count", int64(txCount)),
		attribute.Int64("fee.amount", int64(amount)),
	))
	defer span.End()

	entry, err := r.Registry.Resolve(policy)
	if err != nil {
		logger.Logger.Error("Failed to resolve fee policy", "policy", policy, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return feepolicy.Quote{}, err
	}

	name := entry.Strategy.Name()
	if entry.Superseded {
		logger.Logger.Warn("Superseded fee policy selected", "policy", name, "version", entry.Version.String())
	}

	q, err := entry.Quote(txCount, amount)
	r.record(ctx, name, txCount, amount, q, err)
	if err != nil {
		logger.Logger.Error("Fee computation failed", "policy", name, "tx_count", txCount, "amount", amount, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return feepolicy.Quote{}, err
	}

	span.SetAttributes(
		attribute.String("fee.policy", name),
		attribute.String("fee.tier", q.Tier.String()),
		attribute.Int64("fee.value", int64(q.Fee)),
	)
	logger.Logger.Debug("Fee computed", "policy", name, "tier", q.Tier, "fee", q.Fee)

	return q, nil
}

// record never fails the invocation; a lost audit row is logged.
func (r *HostRunner) record(ctx context.Context, policy string, txCount, amount uint32, q feepolicy.Quote, quoteErr error) {
	if r.Recorder == nil {
		return
	}
	rec := db.NewQuoteRecord(policy, txCount, amount, q, quoteErr)
	if _, err := r.Recorder.RecordQuote(ctx, rec); err != nil {
		logger.Logger.Warn("Failed to record quote", "policy", policy, "error", err)
	}
}
