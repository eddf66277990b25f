// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dotandev/xbfee/internal/decoder"
	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/dotandev/xbfee/internal/simulator"
	rpcjson "github.com/gorilla/rpc/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler, err := NewHandler(simulator.NewRunner(nil, nil))
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method string, args, reply interface{}) error {
	t.Helper()
	body, err := rpcjson.EncodeClientRequest(ServiceName+"."+method, args)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return rpcjson.DecodeClientResponse(resp.Body, reply)
}

func TestQuoteMethod(t *testing.T) {
	srv := newTestServer(t)

	var q feepolicy.Quote
	require.NoError(t, call(t, srv, "Quote", &QuoteArgs{TxCount: 11, Amount: 5000}, &q))
	assert.Equal(t, uint32(9), q.Fee)
	assert.Equal(t, feepolicy.TierMedium, q.Tier)
	assert.Equal(t, "1.0.0", q.Version)
}

func TestQuoteMethodOverflow(t *testing.T) {
	srv := newTestServer(t)

	var q feepolicy.Quote
	err := call(t, srv, "Quote", &QuoteArgs{Policy: "per-transaction", TxCount: 4294967295}, &q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arithmetic overflow")
}

func TestInvokeMethod(t *testing.T) {
	srv := newTestServer(t)

	args, err := decoder.EncodeFeeArgs(101, 5000)
	require.NoError(t, err)

	var resp simulator.InvocationResponse
	require.NoError(t, call(t, srv, "Invoke", &simulator.InvocationRequest{Args: args}, &resp))
	assert.Equal(t, "success", resp.Status)

	fee, err := decoder.DecodeU32(resp.ResultXdr)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), fee)
}

func TestPoliciesMethod(t *testing.T) {
	srv := newTestServer(t)

	var reply PoliciesReply
	require.NoError(t, call(t, srv, "Policies", &PoliciesArgs{}, &reply))
	assert.Equal(t, feepolicy.TieredName, reply.Default)
	require.Len(t, reply.Policies, 3)
	assert.Equal(t, PolicyInfo{Name: "tiered", Version: "1.0.0"}, reply.Policies[2])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ServerConfig{ListenAddr: addr}, simulator.NewRunner(nil, nil))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeRejectsBadConfig(t *testing.T) {
	err := Serve(context.Background(), ServerConfig{}, simulator.NewRunner(nil, nil))
	assert.Error(t, err)
}
