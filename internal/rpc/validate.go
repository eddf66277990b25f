// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// ServerConfig describes where the JSON-RPC endpoint listens and, optionally,
// the URL clients reach it through.
type ServerConfig struct {
	ListenAddr string
	PublicURL  string
}

func isValidURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme == "" {
		return fmt.Errorf("URL must include scheme (http:// or https://)")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must include a host")
	}

	return nil
}

func isValidListenAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("listen address must be host:port: %w", err)
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("listen port must be a number between 0 and 65535, got %q", port)
	}

	return nil
}

func ValidateServerConfig(config ServerConfig) error {
	if err := isValidListenAddr(config.ListenAddr); err != nil {
		return fmt.Errorf("invalid ListenAddr: %w", err)
	}

	if config.PublicURL != "" {
		if err := isValidURL(config.PublicURL); err != nil {
			return fmt.Errorf("invalid PublicURL: %w", err)
		}
	}

	return nil
}
