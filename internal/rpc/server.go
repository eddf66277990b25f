// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dotandev/xbfee/internal/feepolicy"
	"github.com/dotandev/xbfee/internal/logger"
	"github.com/dotandev/xbfee/internal/simulator"
	gorillarpc "github.com/gorilla/rpc"
	rpcjson "github.com/gorilla/rpc/json"
)

// ServiceName prefixes every JSON-RPC method, e.g. "Fee.Quote".
const ServiceName = "Fee"

type QuoteArgs struct {
	Policy  string `json:"policy,omitempty"`
	TxCount uint32 `json:"tx_count"`
	Amount  uint32 `json:"amount"`
}

type PoliciesArgs struct{}

type PolicyInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Superseded bool   `json:"superseded"`
}

type PoliciesReply struct {
	Default  string       `json:"default"`
	Policies []PolicyInfo `json:"policies"`
}

// FeeService exposes the host runner over JSON-RPC.
type FeeService struct {
	runner *simulator.HostRunner
}

func (s *FeeService) Quote(r *http.Request, args *QuoteArgs, reply *feepolicy.Quote) error {
	q, err := s.runner.Quote(r.Context(), args.Policy, args.TxCount, args.Amount)
	if err != nil {
		return err
	}
	*reply = q
	return nil
}

func (s *FeeService) Invoke(r *http.Request, args *simulator.InvocationRequest, reply *simulator.InvocationResponse) error {
	resp, err := s.runner.Run(r.Context(), args)
	if err != nil {
		return err
	}
	*reply = *resp
	return nil
}

func (s *FeeService) Policies(r *http.Request, _ *PoliciesArgs, reply *PoliciesReply) error {
	def, err := s.runner.Registry.Default()
	if err != nil {
		return err
	}
	reply.Default = def.Strategy.Name()
	for _, e := range s.runner.Registry.List() {
		reply.Policies = append(reply.Policies, PolicyInfo{
			Name:       e.Strategy.Name(),
			Version:    e.Version.String(),
			Superseded: e.Superseded,
		})
	}
	return nil
}

// NewHandler serves JSON-RPC on /rpc and a liveness probe on /healthz.
func NewHandler(runner *simulator.HostRunner) (http.Handler, error) {
	s := gorillarpc.NewServer()
	s.RegisterCodec(rpcjson.NewCodec(), "application/json")
	if err := s.RegisterService(&FeeService{runner: runner}, ServiceName); err != nil {
		return nil, fmt.Errorf("failed to register fee service: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", s)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux, nil
}

// Serve runs the endpoint until ctx is cancelled.
func Serve(ctx context.Context, config ServerConfig, runner *simulator.HostRunner) error {
	if err := ValidateServerConfig(config); err != nil {
		return err
	}

	handler, err := NewHandler(runner)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info("JSON-RPC endpoint listening", "addr", config.ListenAddr, "public_url", config.PublicURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Logger.Info("Shutting down JSON-RPC endpoint")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
