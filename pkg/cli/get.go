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
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostmetrics/pkg/collector/cpu"
	"github.com/NVIDIA/hostmetrics/pkg/collector/disk"
	"github.com/NVIDIA/hostmetrics/pkg/collector/host"
	"github.com/NVIDIA/hostmetrics/pkg/collector/memory"
	"github.com/NVIDIA/hostmetrics/pkg/collector/network"
	"github.com/NVIDIA/hostmetrics/pkg/collector/virt"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

// source carries what a metric reader needs from the command line.
type source struct {
	fs           hostfs.FS
	physicalOnly bool
	seconds      bool
}

// reader acquires one metric.
type reader func(ctx context.Context, s source) (any, error)

// Virtualization is the output of the virt metric.
type Virtualization struct {
	System    virt.System `json:"system" yaml:"system"`
	Container bool        `json:"container" yaml:"container"`
}

var readers = map[string]reader{
	"cpu": func(ctx context.Context, s source) (any, error) {
		return cpu.NewCollector(cpu.WithFS(s.fs)).Collect(ctx)
	},
	"cpu-times": func(_ context.Context, s source) (any, error) {
		c := cpu.NewCollector(cpu.WithFS(s.fs))
		if s.seconds {
			return c.TimesSeconds()
		}
		return c.Times()
	},
	"cpu-stats": func(_ context.Context, s source) (any, error) {
		return cpu.NewCollector(cpu.WithFS(s.fs)).Stats()
	},
	"load": func(_ context.Context, s source) (any, error) {
		return cpu.NewCollector(cpu.WithFS(s.fs)).LoadAvg()
	},
	"memory": func(_ context.Context, s source) (any, error) {
		return memory.NewCollector(memory.WithFS(s.fs)).Memory()
	},
	"swap": func(_ context.Context, s source) (any, error) {
		return memory.NewCollector(memory.WithFS(s.fs)).Swap()
	},
	"partitions": func(_ context.Context, s source) (any, error) {
		return disk.NewCollector(disk.WithFS(s.fs)).Partitions(s.physicalOnly)
	},
	"disk-io": func(_ context.Context, s source) (any, error) {
		return disk.NewCollector(disk.WithFS(s.fs)).IOCounters(s.physicalOnly)
	},
	"net-io": func(_ context.Context, s source) (any, error) {
		return network.NewCollector(network.WithFS(s.fs)).IOCounters(s.physicalOnly)
	},
	"host": func(_ context.Context, s source) (any, error) {
		return host.NewCollector(host.WithFS(s.fs)).Info()
	},
	"users": func(_ context.Context, s source) (any, error) {
		return host.NewCollector(host.WithFS(s.fs)).LoggedUsers()
	},
	"virt": func(_ context.Context, s source) (any, error) {
		sys := host.NewCollector(host.WithFS(s.fs)).Virtualization()
		return Virtualization{System: sys, Container: sys.IsContainer()}, nil
	},
}

// metricNames returns the names accepted by get and watch, sorted.
func metricNames() []string {
	names := make([]string, 0, len(readers))
	for n := range readers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupReader(cmd *cli.Command) (string, reader, error) {
	if cmd.NArg() != 1 {
		return "", nil, fmt.Errorf("expected exactly one metric (one of: %s)", strings.Join(metricNames(), ", "))
	}
	metric := cmd.Args().First()
	r, ok := readers[metric]
	if !ok {
		return "", nil, fmt.Errorf("unknown metric %q (one of: %s)", metric, strings.Join(metricNames(), ", "))
	}
	return metric, r, nil
}

func (a *app) source(cmd *cli.Command) source {
	return source{
		fs:           a.cfg.FS(),
		physicalOnly: a.physicalOnly(cmd),
		seconds:      cmd.Bool("seconds"),
	}
}

func (a *app) getCmd() *cli.Command {
	return &cli.Command{
		Name:                  "get",
		EnableShellCompletion: true,
		Usage:                 "Read a single host metric",
		ArgsUsage:             "<" + strings.Join(metricNames(), "|") + ">",
		Description: `Read one metric and print its typed record.

# Examples

  hostmetrics get memory
  hostmetrics get --seconds --format json cpu-times
  hostmetrics get --physical-only disk-io`,
		Flags: []cli.Flag{
			physicalOnlyFlag(),
			secondsFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			metric, read, err := lookupReader(cmd)
			if err != nil {
				return err
			}

			outFormat, err := parseOutputFormat(cmd, a.cfg.Format)
			if err != nil {
				return err
			}

			value, err := read(ctx, a.source(cmd))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", metric, err)
			}

			w := a.writer(outFormat, cmd.String("output"))
			defer closeWriter(w)
			return w.Serialize(ctx, value)
		},
	}
}
