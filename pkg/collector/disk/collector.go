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

package disk

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// Collector acquires partition usage and block device I/O counters.
type Collector struct {
	fs           hostfs.FS
	physicalOnly bool
	platform     platform
}

// Option configures a Collector.
type Option func(*Collector)

// WithFS relocates the kernel sources read by the collector.
func WithFS(fs hostfs.FS) Option {
	return func(c *Collector) {
		c.fs = fs
	}
}

// WithPhysicalOnly restricts Collect to physical filesystems and devices.
func WithPhysicalOnly(physicalOnly bool) Option {
	return func(c *Collector) {
		c.physicalOnly = physicalOnly
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

// Partitions returns the mounted filesystems and their capacity.
func (c *Collector) Partitions(physicalOnly bool) ([]Partition, error) {
	return c.platform.partitions(physicalOnly)
}

// IOCounters returns the I/O counters of every block device.
func (c *Collector) IOCounters(physicalOnly bool) ([]IOCounters, error) {
	return c.platform.ioCounters(physicalOnly)
}

// Collect gathers one subtype per partition, named by mount point, and one
// per block device, named by device.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Debug("collecting disk metrics", "physical_only", c.physicalOnly)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts, err := c.Partitions(c.physicalOnly)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counters, err := c.IOCounters(c.physicalOnly)
	if err != nil {
		return nil, err
	}

	m := measurement.NewMeasurement(measurement.TypeDisk)
	for _, p := range parts {
		m.WithSubtypeBuilder(measurement.NewSubtypeBuilder(p.MountPoint).
			SetString(measurement.KeyMountPoint, p.MountPoint).
			SetString(measurement.KeyFSType, p.FSType).
			SetUint64(measurement.KeyTotal, p.TotalSpace).
			SetUint64(measurement.KeyAvail, p.AvailSpace).
			Label(measurement.ContextDevice, p.Name))
	}
	for _, io := range counters {
		m.WithSubtypeBuilder(measurement.NewSubtypeBuilder(io.DeviceName).
			SetUint64(measurement.KeyReadCount, io.ReadCount).
			SetUint64(measurement.KeyReadBytes, io.ReadBytes).
			SetUint64(measurement.KeyWriteCount, io.WriteCount).
			SetUint64(measurement.KeyWriteBytes, io.WriteBytes).
			SetUint64(measurement.KeyBusyTimeMS, io.BusyTime).
			Label(measurement.ContextDevice, io.DeviceName))
	}

	return m.Build(), nil
}
