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

package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/snapshotter"
)

const (
	namespace    = "hostmetrics"
	subtypeLabel = "subtype"
)

// Source produces the snapshot exported on each scrape.
type Source interface {
	Snapshot(ctx context.Context) (*snapshotter.Snapshot, error)
}

// counterKeys are readings that only grow between reboots.
var counterKeys = map[string]bool{
	measurement.KeyUser:            true,
	measurement.KeyNice:            true,
	measurement.KeySystem:          true,
	measurement.KeyIdle:            true,
	measurement.KeyIOWait:          true,
	measurement.KeyIRQ:             true,
	measurement.KeySoftIRQ:         true,
	measurement.KeySteal:           true,
	measurement.KeyGuest:           true,
	measurement.KeyGuestNice:       true,
	measurement.KeyBusy:            true,
	measurement.KeyInterrupts:      true,
	measurement.KeyContextSwitches: true,
	measurement.KeySoftInterrupts:  true,
	measurement.KeyReadCount:       true,
	measurement.KeyReadBytes:       true,
	measurement.KeyWriteCount:      true,
	measurement.KeyWriteBytes:      true,
	measurement.KeyBusyTimeMS:      true,
	measurement.KeyRxBytes:         true,
	measurement.KeyRxPackets:       true,
	measurement.KeyRxErrs:          true,
	measurement.KeyRxDrop:          true,
	measurement.KeyTxBytes:         true,
	measurement.KeyTxPackets:       true,
	measurement.KeyTxErrs:          true,
	measurement.KeyTxDrop:          true,
}

var (
	upDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "up"),
		"Whether the last host snapshot succeeded",
		nil, nil,
	)
	durationDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "scrape_duration_seconds"),
		"Time taken to take the host snapshot",
		nil, nil,
	)
)

// Collector is a prometheus.Collector that takes a snapshot per scrape.
//
// It is unchecked: metric names depend on the readings of the host, so
// Describe sends nothing.
type Collector struct {
	source  Source
	timeout time.Duration
}

// Option configures a Collector.
type Option func(*Collector)

// WithTimeout bounds each snapshot. The default is defaults.SnapshotTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCollector returns a Collector over source.
func NewCollector(source Source, opts ...Option) *Collector {
	c := &Collector{
		source:  source,
		timeout: defaults.SnapshotTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	snap, err := c.source.Snapshot(ctx)
	if err != nil {
		slog.Error("snapshot for export failed", slog.String("error", err.Error()))
	}
	emit(ch, snap, err, time.Since(start))
}

// taken exports a snapshot that was already taken.
type taken struct {
	snap    *snapshotter.Snapshot
	elapsed time.Duration
}

func (taken) Describe(chan<- *prometheus.Desc) {}

func (t taken) Collect(ch chan<- prometheus.Metric) {
	emit(ch, t.snap, nil, t.elapsed)
}

func emit(ch chan<- prometheus.Metric, snap *snapshotter.Snapshot, err error, elapsed time.Duration) {
	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue, elapsed.Seconds())
	if err != nil {
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 1)

	for _, m := range snap.Measurements {
		if m == nil {
			continue
		}
		// Duplicate subtypes would make the registry reject the whole gather.
		if err := m.Validate(); err != nil {
			slog.Warn("skipping invalid measurement",
				slog.String("type", m.Type.String()),
				slog.String("error", err.Error()))
			continue
		}
		collectMeasurement(ch, m)
	}
}

func collectMeasurement(ch chan<- prometheus.Metric, m *measurement.Measurement) {
	typ := strings.ToLower(m.Type.String())
	descs := make(map[string]*prometheus.Desc)
	infoKeys := stringKeys(m)

	var infoDesc *prometheus.Desc
	if len(infoKeys) > 0 {
		infoDesc = prometheus.NewDesc(
			prometheus.BuildFQName(namespace, typ, "info"),
			fmt.Sprintf("Text attributes of %s measurements", typ),
			append([]string{subtypeLabel}, infoKeys...), nil,
		)
	}

	for i := range m.Subtypes {
		st := &m.Subtypes[i]
		hasText := false

		for _, key := range st.Keys() {
			r := st.Get(key)
			if v, ok := measurement.Numeric(r); ok {
				desc, found := descs[key]
				if !found {
					desc = prometheus.NewDesc(
						prometheus.BuildFQName(namespace, typ, sanitize(key)),
						fmt.Sprintf("%s reading %s", typ, key),
						[]string{subtypeLabel}, nil,
					)
					descs[key] = desc
				}
				ch <- prometheus.MustNewConstMetric(desc, valueType(m.Type, key), v, st.Name)
			} else if r != nil {
				hasText = true
			}
		}

		if !hasText || infoDesc == nil {
			continue
		}
		labels := []string{st.Name}
		for _, key := range infoKeys {
			value := ""
			if r := st.Get(key); r != nil {
				if _, numeric := measurement.Numeric(r); !numeric {
					value = r.String()
				}
			}
			labels = append(labels, value)
		}
		ch <- prometheus.MustNewConstMetric(infoDesc, prometheus.GaugeValue, 1, labels...)
	}
}

// stringKeys returns the sorted union of non-numeric reading keys across
// the subtypes of m, so every info sample of a family has the same labels.
func stringKeys(m *measurement.Measurement) []string {
	seen := make(map[string]bool)
	for i := range m.Subtypes {
		st := &m.Subtypes[i]
		for key, r := range st.Data {
			if r == nil {
				continue
			}
			if _, ok := measurement.Numeric(r); !ok {
				seen[sanitize(key)] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		if k == subtypeLabel {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func valueType(t measurement.Type, key string) prometheus.ValueType {
	// CPU totals are tick sums; elsewhere total is a capacity.
	if counterKeys[key] || (t == measurement.TypeCPU && key == measurement.KeyTotal) {
		return prometheus.CounterValue
	}
	return prometheus.GaugeValue
}

// sanitize maps a reading key onto the Prometheus name alphabet.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}

// WriteTextfile takes one snapshot under ctx and writes it to path in the
// Prometheus text format. The file is replaced atomically. A failed snapshot
// is returned and path is left as it was.
func (c *Collector) WriteTextfile(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	snap, err := c.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot for textfile failed: %w", err)
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(taken{snap: snap, elapsed: time.Since(start)}); err != nil {
		return fmt.Errorf("failed to register exporter: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write textfile %s: %w", path, err)
	}
	return nil
}
