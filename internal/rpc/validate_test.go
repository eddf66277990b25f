// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"testing"
)

func TestIsValidURL_ValidURLs(t *testing.T) {
	validURLs := []string{
		"https://fees.example.com",
		"https://fees.example.com/rpc",
		"http://localhost:8000",
		"http://192.168.1.1:8080",
	}

	for _, urlStr := range validURLs {
		t.Run(urlStr, func(t *testing.T) {
			if err := isValidURL(urlStr); err != nil {
				t.Errorf("expected no error for valid URL %q, got %v", urlStr, err)
			}
		})
	}
}

func TestIsValidURL_InvalidURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty URL", ""},
		{"no scheme", "fees.example.com"},
		{"invalid scheme", "ftp://example.com"},
		{"no host", "https://"},
		{"malformed", "ht!ps://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := isValidURL(tt.url); err == nil {
				t.Errorf("expected error for %q", tt.url)
			}
		})
	}
}

func TestValidateServerConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr bool
	}{
		{"loopback", ServerConfig{ListenAddr: "127.0.0.1:8000"}, false},
		{"all interfaces", ServerConfig{ListenAddr: ":9090"}, false},
		{"with public url", ServerConfig{ListenAddr: ":9090", PublicURL: "https://fees.example.com"}, false},
		{"empty", ServerConfig{}, true},
		{"missing port", ServerConfig{ListenAddr: "localhost"}, true},
		{"port out of range", ServerConfig{ListenAddr: "localhost:70000"}, true},
		{"named port", ServerConfig{ListenAddr: "localhost:http"}, true},
		{"bad public url", ServerConfig{ListenAddr: ":9090", PublicURL: "fees.example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServerConfig(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func BenchmarkValidateServerConfig(b *testing.B) {
	config := ServerConfig{ListenAddr: "127.0.0.1:8000", PublicURL: "https://fees.example.com"}
	for i := 0; i < b.N; i++ {
		_ = ValidateServerConfig(config)
	}
}
