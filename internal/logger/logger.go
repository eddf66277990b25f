// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable holding the initial log level.
const LevelEnv = "XBFEE_LOG_LEVEL"

var (
	// Logger is the process-wide structured logger.
	Logger *slog.Logger
	level  = new(slog.LevelVar)
)

func init() {
	level.Set(parseLevelFromEnv())
	SetOutput(os.Stderr, false)
}

func parseLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnv)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetOutput redirects the logger, as JSON lines when json is true.
func SetOutput(w io.Writer, json bool) {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	Logger = slog.New(h)
}

func SetLevel(l slog.Level) {
	level.Set(l)
}
