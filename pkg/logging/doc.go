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

// Package logging provides structured logging utilities built on log/slog.
//
// Every binary in this module logs JSON to stderr with the module name and
// version attached to each record. Debug records also carry the source
// location, which is the quickest way to find which probe in a fallback
// chain was taken.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: skipped lines, skipped devices and fallback hops
//   - INFO: snapshot start and completion (default)
//   - WARN/WARNING: recoverable acquisition problems
//   - ERROR: collector failures
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("hostmetrics", version, "debug")
//	slog.Debug("skipping virtual interface", "iface", "docker0")
//
// Creating a dedicated logger:
//
//	logger := logging.NewStructuredLogger("exporter", version, "info")
//	logger.Info("textfile written", "path", path)
//
// Bridging code that expects a *log.Logger:
//
//	std := logging.NewLogLogger(slog.LevelWarn, false)
//	std.Println("legacy message")
//
// # Environment Configuration
//
// When no explicit level is given the LOG_LEVEL environment variable is used:
//
//	LOG_LEVEL=debug hostmetrics get disk-io
//
// If LOG_LEVEL is not set, defaults to INFO level.
package logging
