// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package simulator

import (
	"context"
	"sync"
	"testing"

	"github.com/dotandev/xbfee/internal/db"
	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/errors"
	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type memRecorder struct {
	mu   sync.Mutex
	recs []db.QuoteRecord
	err  error
}

func (m *memRecorder) RecordQuote(_ context.Context, rec db.QuoteRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.recs = append(m.recs, rec)
	return int64(len(m.recs)), nil
}

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestRunTwoArguments(t *testing.T) {
	rec := &memRecorder{}
	runner := NewRunner(nil, rec)

	args, err := decoder.EncodeFeeArgs(10, 5000)
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), &InvocationRequest{Args: args})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, uint32(10), resp.Quote.Fee)

	fee, err := decoder.DecodeU32(resp.ResultXdr)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), fee)

	require.Len(t, rec.recs, 1)
	assert.Equal(t, feepolicy.TieredName, rec.recs[0].Policy)
	assert.Equal(t, uint32(10), rec.recs[0].Fee)
}

func TestRunSingleArgumentLegacyPolicy(t *testing.T) {
	runner := NewRunner(nil, nil)

	tx, err := decoder.EncodeU32(1001)
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), &InvocationRequest{Policy: "threshold", Args: []string{tx}})
	require.NoError(t, err)
	assert.Equal(t, uint32(200), resp.Quote.Fee)
	assert.Equal(t, "0.1.0", resp.Quote.Version)
}

func TestRunOverflowSurfacesError(t *testing.T) {
	rec := &memRecorder{}
	runner := NewRunner(nil, rec)

	args, err := decoder.EncodeFeeArgs(4294967295, 0)
	require.NoError(t, err)

	resp, err := runner.Run(context.Background(), &InvocationRequest{Policy: "per-transaction", Args: args})
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, errors.ErrOverflow))

	require.Len(t, rec.recs, 1)
	assert.NotEmpty(t, rec.recs[0].Error)
	assert.Zero(t, rec.recs[0].Fee)
}

func TestRunBadArguments(t *testing.T) {
	runner := NewRunner(nil, nil)

	_, err := runner.Run(context.Background(), &InvocationRequest{})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestQuoteUnknownPolicy(t *testing.T) {
	runner := NewRunner(nil, nil)

	_, err := runner.Quote(context.Background(), "flat", 1, 1)
	assert.True(t, errors.Is(err, errors.ErrUnknownPolicy))
}

func TestQuoteRecorderFailureIsNotFatal(t *testing.T) {
	runner := NewRunner(nil, &memRecorder{err: errors.ErrStoreFailed})

	q, err := runner.Quote(context.Background(), "", 101, 5000)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), q.Fee)
}

func TestQuoteSpans(t *testing.T) {
	sr := installRecorder(t)
	runner := NewRunner(nil, nil)

	_, err := runner.Quote(context.Background(), "tiered", 101, 5000)
	require.NoError(t, err)
	_, err = runner.Quote(context.Background(), "per-transaction", 4294967295, 0)
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "fee.quote", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	var sawTier bool
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == "fee.tier" {
			sawTier = true
			assert.Equal(t, "HIGH", kv.Value.AsString())
		}
	}
	assert.True(t, sawTier)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestRunConcurrentInvocations(t *testing.T) {
	runner := NewRunner(nil, &memRecorder{})
	args, err := decoder.EncodeFeeArgs(50, 123456)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := runner.Run(context.Background(), &InvocationRequest{Args: args})
			if assert.NoError(t, err) {
				assert.Equal(t, uint32(5+110), resp.Quote.Fee)
			}
		}()
	}
	wg.Wait()
}
