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

package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/serializer"
)

// Flags shared by several commands. Each command gets its own instance so
// that parsed state does not leak between commands.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func physicalOnlyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "physical-only",
		Usage: "limit disks and network interfaces to physical devices",
	}
}

func secondsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "seconds",
		Usage: "report cpu-times in seconds instead of clock ticks",
	}
}

// parseOutputFormat returns the --format flag, falling back to fallback
// when the flag is not set.
func parseOutputFormat(cmd *cli.Command, fallback string) (serializer.Format, error) {
	value := fallback
	if cmd.IsSet("format") {
		value = cmd.String("format")
	}
	f := serializer.Format(value)
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", value)
	}
	return f, nil
}

// parseTypes converts --type values into measurement types.
func parseTypes(values []string) ([]measurement.Type, error) {
	types := make([]measurement.Type, 0, len(values))
	for _, v := range values {
		t, ok := measurement.ParseType(v)
		if !ok {
			return nil, fmt.Errorf("unknown measurement type: %q", v)
		}
		types = append(types, t)
	}
	return types, nil
}

// writer opens the output destination. An empty path writes to the app's
// output stream.
func (a *app) writer(format serializer.Format, path string) *serializer.Writer {
	if strings.TrimSpace(path) == "" {
		return serializer.NewWriter(format, a.out)
	}
	return serializer.NewFileWriterOrStdout(format, path)
}

func closeWriter(w *serializer.Writer) {
	if err := w.Close(); err != nil {
		slog.Warn("failed to close serializer", "error", err)
	}
}
