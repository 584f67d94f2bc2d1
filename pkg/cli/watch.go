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
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/snapshotter"
)

func (a *app) watchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "watch",
		EnableShellCompletion: true,
		Usage:                 "Read a host metric repeatedly",
		ArgsUsage:             "<" + strings.Join(metricNames(), "|") + ">",
		Description: `Read one metric every --interval and print each reading as a Sample
document. Runs until interrupted or until --count samples were taken.

Readings are printed as taken; no deltas or rates are computed.

# Examples

  hostmetrics watch --interval 1s --count 10 load
  hostmetrics watch --format json net-io`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "interval",
				Usage: fmt.Sprintf("time between samples (minimum %s)", defaults.WatchMinInterval),
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "stop after this many samples (0 runs until interrupted)",
			},
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

			interval := a.cfg.Interval
			if cmd.IsSet("interval") {
				interval = cmd.Duration("interval")
			}
			if interval < defaults.WatchMinInterval {
				return fmt.Errorf("interval %s is below the minimum of %s", interval, defaults.WatchMinInterval)
			}

			count := int(cmd.Int("count"))
			if count < 0 {
				return fmt.Errorf("count must not be negative: %d", count)
			}

			w := a.writer(outFormat, cmd.String("output"))
			defer closeWriter(w)

			return watch(ctx, watchConfig{
				metric:   metric,
				read:     read,
				source:   a.source(cmd),
				interval: interval,
				count:    count,
				emit: func(ctx context.Context, s *snapshotter.Sample) error {
					return w.Serialize(ctx, s)
				},
			})
		},
	}
}

type watchConfig struct {
	metric   string
	read     reader
	source   source
	interval time.Duration
	count    int
	emit     func(context.Context, *snapshotter.Sample) error
}

// watch samples until count is reached or ctx is canceled. Cancellation is
// a clean stop.
func watch(ctx context.Context, wc watchConfig) error {
	limiter := rate.NewLimiter(rate.Every(wc.interval), defaults.WatchBurst)

	slog.Debug("watch started", "metric", wc.metric, "interval", wc.interval, "count", wc.count)
	for n := 0; wc.count == 0 || n < wc.count; n++ {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				slog.Debug("watch stopped", "metric", wc.metric, "samples", n)
				return nil
			}
			return err
		}

		value, err := wc.read(ctx, wc.source)
		if err != nil {
			if stderrors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to read %s: %w", wc.metric, err)
		}

		if err := wc.emit(ctx, snapshotter.NewSample(wc.metric, version, value, time.Now())); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}
	}
	return nil
}
