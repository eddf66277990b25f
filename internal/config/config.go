// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/dotandev/xbfee/internal/errors"
	"github.com/dotandev/xbfee/internal/rpc"
)

// Environment variables read by Load.
const (
	EnvPolicy       = "XBFEE_POLICY"
	EnvDBPath       = "XBFEE_DB_PATH"
	EnvListenAddr   = "XBFEE_LISTEN_ADDR"
	EnvPublicURL    = "XBFEE_PUBLIC_URL"
	EnvOTLPEndpoint = "XBFEE_OTLP_ENDPOINT"
	EnvLogJSON      = "XBFEE_LOG_JSON"
	EnvRecord       = "XBFEE_RECORD"
)

const DefaultListenAddr = "127.0.0.1:8000"

// Config is the runtime configuration shared by every command.
type Config struct {
	// Policy is a strategy name or version constraint; empty selects the
	// canonical schedule.
	Policy       string
	DBPath       string
	ListenAddr   string
	PublicURL    string
	OTLPEndpoint string
	LogJSON      bool
	Record       bool
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DBPath:     defaultDBPath(),
		ListenAddr: DefaultListenAddr,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".xbfee", "quotes.db")
}

// Load overlays XBFEE_* environment variables on Default.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvPolicy); v != "" {
		cfg.Policy = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvPublicURL); v != "" {
		cfg.PublicURL = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		cfg.OTLPEndpoint = v
	}

	var err error
	if cfg.LogJSON, err = boolEnv(EnvLogJSON); err != nil {
		return Config{}, err
	}
	if cfg.Record, err = boolEnv(EnvRecord); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func boolEnv(name string) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.WrapInvalidConfig(name + " must be a boolean, got " + strconv.Quote(v))
	}
	return b, nil
}

// Server returns the JSON-RPC endpoint settings.
func (c Config) Server() rpc.ServerConfig {
	return rpc.ServerConfig{ListenAddr: c.ListenAddr, PublicURL: c.PublicURL}
}

// Validate checks the settings every command depends on.
func (c Config) Validate() error {
	if c.Record && c.DBPath == "" {
		return errors.WrapInvalidConfig("a database path is required when recording quotes")
	}
	return nil
}

// ValidateServer checks the JSON-RPC endpoint settings. Only serve reads them.
func (c Config) ValidateServer() error {
	if err := rpc.ValidateServerConfig(c.Server()); err != nil {
		return errors.WrapInvalidConfig(err.Error())
	}
	return nil
}
