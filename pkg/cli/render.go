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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/serializer"
	"github.com/NVIDIA/hostmetrics/pkg/snapshotter"
)

func (a *app) renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Re-render a saved snapshot",
		ArgsUsage:             "<snapshot.yaml|snapshot.json>",
		Description: `Read a snapshot written by the snapshot command and print it again,
optionally in another format or limited to some subtypes and reading keys.

# Examples

  hostmetrics render --format table snapshot.yaml
  hostmetrics render --subtype 'cpu*' -o cpu.json snapshot.yaml
  hostmetrics render --key '*_bytes' --exclude-key 'rx_*' snapshot.yaml`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "subtype",
				Usage: "keep only subtypes matching these patterns (* wildcards allowed)",
			},
			&cli.StringSliceFlag{
				Name:  "key",
				Usage: "keep only readings whose key matches these patterns",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-key",
				Usage: "drop readings whose key matches these patterns",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one snapshot file")
			}
			path := cmd.Args().First()

			outFormat, err := parseOutputFormat(cmd, a.cfg.Format)
			if err != nil {
				return err
			}

			snap, err := serializer.FromFile[snapshotter.Snapshot](path)
			if err != nil {
				return fmt.Errorf("failed to load snapshot from %q: %w", path, err)
			}

			subtypes := cmd.StringSlice("subtype")
			include, exclude := cmd.StringSlice("key"), cmd.StringSlice("exclude-key")
			kept := make([]*measurement.Measurement, 0, len(snap.Measurements))
			for _, m := range snap.Measurements {
				if m == nil {
					continue
				}
				if err := m.Validate(); err != nil {
					return errors.Wrap(errors.ErrCodeMalformed,
						fmt.Sprintf("invalid %s measurement in %q", m.Type, path), err)
				}
				m = measurement.FilterKeys(measurement.FilterSubtypes(m, subtypes), include, exclude)
				if len(m.Subtypes) > 0 {
					kept = append(kept, m)
				}
			}
			snap.Measurements = kept

			w := a.writer(outFormat, cmd.String("output"))
			defer closeWriter(w)
			return w.Serialize(ctx, snap)
		},
	}
}
