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

package memory

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// Collector acquires memory and swap usage.
type Collector struct {
	fs       hostfs.FS
	platform platform
}

// Option configures a Collector.
type Option func(*Collector)

// WithFS relocates the kernel sources read by the collector.
func WithFS(fs hostfs.FS) Option {
	return func(c *Collector) {
		c.fs = fs
	}
}

// NewCollector creates a Collector for the running platform.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{fs: hostfs.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.fs = c.fs.WithDefaults()
	c.platform = newPlatform(c.fs)
	return c
}

// Memory returns physical memory usage.
func (c *Collector) Memory() (Memory, error) {
	return c.platform.memory()
}

// Swap returns swap usage.
func (c *Collector) Swap() (Swap, error) {
	return c.platform.swap()
}

// HasSwap reports whether any swap space is configured.
func (c *Collector) HasSwap() (bool, error) {
	return c.platform.hasSwap()
}

// Collect gathers memory and swap into subtypes "memory" and "swap".
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Debug("collecting memory metrics")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mem, err := c.Memory()
	if err != nil {
		return nil, err
	}

	swap, err := c.Swap()
	if err != nil {
		return nil, err
	}

	enabled, err := c.HasSwap()
	if err != nil {
		return nil, err
	}

	return measurement.NewMeasurement(measurement.TypeMemory).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder("memory").
			SetUint64(measurement.KeyTotal, mem.Total).
			SetUint64(measurement.KeyFree, mem.Free).
			SetUint64(measurement.KeyUsed, mem.Used).
			SetUint64(measurement.KeyShared, mem.Shared).
			SetUint64(measurement.KeyBuffers, mem.Buffers).
			SetUint64(measurement.KeyCached, mem.Cached)).
		WithSubtypeBuilder(measurement.NewSubtypeBuilder("swap").
			SetUint64(measurement.KeyTotal, swap.Total).
			SetUint64(measurement.KeyFree, swap.Free).
			SetUint64(measurement.KeyUsed, swap.Used).
			SetBool(measurement.KeyEnabled, enabled)).
		Build(), nil
}
