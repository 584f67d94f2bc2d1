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
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/exporter"
	"github.com/NVIDIA/hostmetrics/pkg/snapshotter"
)

func (a *app) snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a snapshot of all host metrics",
		Description: `Capture CPU, memory, disk, network and host identity measurements in one
document. Collectors run in parallel and the snapshot fails if any of them fails.

The snapshot can be output in JSON, YAML, or table format. With --textfile it is
written in the Prometheus text format for the node_exporter textfile collector
instead; pass --output as well to get both.

# Examples

  hostmetrics snapshot --format table
  hostmetrics snapshot --type cpu --type memory --subtype 'cpu*' -o snap.json
  hostmetrics snapshot --physical-only --textfile /var/lib/node_exporter/hostmetrics.prom`,
		Flags: []cli.Flag{
			physicalOnlyFlag(),
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "measurement types to collect (cpu, memory, disk, network, host; default: all)",
			},
			&cli.StringSliceFlag{
				Name:  "subtype",
				Usage: "keep only subtypes matching these patterns (* wildcards allowed)",
			},
			&cli.StringFlag{
				Name:  "textfile",
				Usage: "write Prometheus text format to this file",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "timeout for the whole snapshot",
				Value: defaults.CLISnapshotTimeout,
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, a.cfg.Format)
			if err != nil {
				return err
			}

			types, err := parseTypes(cmd.StringSlice("type"))
			if err != nil {
				return err
			}

			timeout := cmd.Duration("timeout")
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			hs := &snapshotter.HostSnapshotter{
				Version:  version,
				Factory:  a.factory(cmd),
				Types:    types,
				Subtypes: cmd.StringSlice("subtype"),
			}

			if textfile := cmd.String("textfile"); textfile != "" {
				if err := exporter.NewCollector(hs, exporter.WithTimeout(timeout)).WriteTextfile(ctx, textfile); err != nil {
					return err
				}
				slog.Info("textfile written", "path", textfile)
				if !cmd.IsSet("output") {
					return nil
				}
			}

			w := a.writer(outFormat, cmd.String("output"))
			defer closeWriter(w)
			hs.Serializer = w

			if err := hs.Measure(ctx); err != nil {
				return fmt.Errorf("snapshot failed: %w", err)
			}
			return nil
		},
	}
}
