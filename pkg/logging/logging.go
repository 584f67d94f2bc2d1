// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel names the environment variable consulted when no level is passed.
	EnvLogLevel = "LOG_LEVEL"

	attrModule  = "module"
	attrVersion = "version"
)

// ParseLevel converts a level name into a slog.Level.
// Unknown or empty names map to slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// levelFromEnv returns the level named by LOG_LEVEL.
func levelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

func newHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: lvl <= slog.LevelDebug,
		Level:     lvl,
	})
}

func newLogger(w io.Writer, module, version string, lvl slog.Level) *slog.Logger {
	return slog.New(newHandler(w, lvl)).With(
		slog.String(attrModule, module),
		slog.String(attrVersion, version),
	)
}

// NewStructuredLogger returns a JSON logger writing to stderr.
// An empty level falls back to LOG_LEVEL.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	lvl := levelFromEnv()
	if level != "" {
		lvl = ParseLevel(level)
	}
	return newLogger(os.Stderr, module, version, lvl)
}

// SetDefaultStructuredLogger installs a JSON logger as the slog default,
// using LOG_LEVEL for verbosity.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, "")
}

// SetDefaultStructuredLoggerWithLevel installs a JSON logger as the slog default
// with an explicit level. An empty level falls back to LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger returns a standard library logger backed by a JSON slog handler.
// When addSource is true the caller location is recorded.
func NewLogLogger(lvl slog.Level, addSource bool) *log.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: addSource,
		Level:     lvl,
	})
	return slog.NewLogLogger(h, lvl)
}
