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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hostmetrics/pkg/collector"
	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/header"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/serializer"
)

// HostSnapshotter collects measurements of the local host. Collectors run in
// parallel; if any of them fails the whole snapshot fails.
type HostSnapshotter struct {
	// Version is written into the snapshot metadata.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer

	// Types limits the snapshot to these measurement types. Empty means all.
	Types []measurement.Type

	// Subtypes keeps only subtypes matching one of these patterns
	// (see measurement.FilterSubtypes). Empty keeps everything.
	Subtypes []string

	// CollectorTimeout bounds each collector. Zero means defaults.CollectorTimeout.
	CollectorTimeout time.Duration
}

// Measure takes a snapshot and serializes it.
func (h *HostSnapshotter) Measure(ctx context.Context) error {
	snap, err := h.Snapshot(ctx)
	if err != nil {
		return err
	}

	if h.Serializer == nil {
		h.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := h.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

// Snapshot runs the collectors and returns their measurements.
func (h *HostSnapshotter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if h.Factory == nil {
		h.Factory = collector.NewDefaultFactory(collector.WithVersion(h.Version))
	}

	types := h.Types
	if len(types) == 0 {
		types = measurement.Types
	}

	timeout := h.CollectorTimeout
	if timeout <= 0 {
		timeout = defaults.CollectorTimeout
	}

	slog.Info("starting host snapshot", slog.Int("types", len(types)))

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	// Each goroutine writes only its own slot.
	results := make([]*measurement.Measurement, len(types))
	g, gctx := errgroup.WithContext(ctx)

	for i, t := range types {
		c, ok := collector.For(h.Factory, t)
		if !ok {
			snapshotCollectionTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("unknown measurement type %q", t)
		}

		g.Go(func() error {
			name := strings.ToLower(t.String())
			collectorStart := time.Now()
			defer func() {
				snapshotCollectorDuration.WithLabelValues(name).Observe(time.Since(collectorStart).Seconds())
			}()

			cctx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()

			m, err := c.Collect(cctx)
			if err != nil {
				slog.Error("collector failed", slog.String("collector", name), slog.String("error", err.Error()))
				return fmt.Errorf("failed to collect %s metrics: %w", name, err)
			}
			if len(h.Subtypes) > 0 {
				m = measurement.FilterSubtypes(m, h.Subtypes)
			}
			slog.Debug("collector done",
				slog.String("collector", name),
				slog.Any("subtypes", m.SubtypeNames()))
			results[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	snap := NewSnapshot()
	snap.Init(header.KindSnapshot, FullAPIVersion, h.Version, time.Now())
	for _, m := range results {
		if m == nil || len(m.Subtypes) == 0 {
			continue
		}
		snap.Measurements = append(snap.Measurements, m)
	}
	if hn := hostname(snap); hn != "" {
		snap.Metadata[header.MetadataHostname] = hn
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotMeasurementCount.Set(float64(len(snap.Measurements)))

	slog.Info("host snapshot complete",
		slog.Int("measurements", len(snap.Measurements)),
		slog.Duration("duration", time.Since(start)))

	return snap, nil
}

func hostname(snap *Snapshot) string {
	m := snap.Get(measurement.TypeHost)
	if m == nil {
		return ""
	}
	id := m.GetSubtype("identity")
	if id == nil {
		return ""
	}
	hn, err := id.GetString(measurement.KeyHostname)
	if err != nil {
		return ""
	}
	return hn
}
