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

package network

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// Collector acquires network interface counters.
type Collector struct {
	fs           hostfs.FS
	physicalOnly bool
	platform     platform
}

// Option configures a Collector.
type Option func(*Collector)

// WithFS sets the host filesystem roots used on Linux.
func WithFS(fs hostfs.FS) Option {
	return func(c *Collector) {
		c.fs = fs
	}
}

// WithPhysicalOnly restricts Collect to physical interfaces.
func WithPhysicalOnly(physicalOnly bool) Option {
	return func(c *Collector) {
		c.physicalOnly = physicalOnly
	}
}

// NewCollector returns a network collector for the running platform.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{fs: hostfs.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.fs = c.fs.WithDefaults()
	c.platform = newPlatform(c.fs)
	return c
}

// IOCounters returns the counters of every interface, in kernel order.
func (c *Collector) IOCounters(physicalOnly bool) ([]IOCounters, error) {
	return c.platform.ioCounters(physicalOnly)
}

// Collect returns one subtype per interface.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Debug("collecting network metrics", "physical_only", c.physicalOnly)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counters, err := c.IOCounters(c.physicalOnly)
	if err != nil {
		return nil, err
	}

	m := measurement.NewMeasurement(measurement.TypeNetwork)
	for _, n := range counters {
		m.WithSubtypeBuilder(measurement.NewSubtypeBuilder(n.Interface).
			SetUint64(measurement.KeyRxBytes, n.RxBytes).
			SetUint64(measurement.KeyRxPackets, n.RxPackets).
			SetUint64(measurement.KeyRxErrs, n.RxErrs).
			SetUint64(measurement.KeyRxDrop, n.RxDrop).
			SetUint64(measurement.KeyTxBytes, n.TxBytes).
			SetUint64(measurement.KeyTxPackets, n.TxPackets).
			SetUint64(measurement.KeyTxErrs, n.TxErrs).
			SetUint64(measurement.KeyTxDrop, n.TxDrop).
			Label(measurement.ContextInterface, n.Interface))
	}

	return m.Build(), nil
}
