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

package cpu

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/units"
)

// Collector acquires CPU metrics from the running host.
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

// Times returns the aggregate CPU times in ticks.
func (c *Collector) Times() (Times, error) {
	return c.platform.times()
}

// PerCoreTimes returns the CPU times of every core in ticks.
func (c *Collector) PerCoreTimes() ([]Times, error) {
	return c.platform.perCoreTimes()
}

// TimesSeconds returns the aggregate CPU times in whole seconds.
func (c *Collector) TimesSeconds() (Times, error) {
	t, err := c.platform.times()
	if err != nil {
		return Times{}, err
	}
	hz, err := units.ClockTicks()
	if err != nil {
		return Times{}, err
	}
	return t.Seconds(hz), nil
}

// Stats returns interrupt and context switch counters.
func (c *Collector) Stats() (Stats, error) {
	return c.platform.stats()
}

// FrequencyMHz returns the current frequency of the first CPU in MHz.
func (c *Collector) FrequencyMHz() (float64, error) {
	return c.platform.frequencyMHz()
}

// LogicalCount returns the number of online logical CPUs.
func (c *Collector) LogicalCount() (int, error) {
	return c.platform.logicalCount()
}

// PhysicalCount returns the number of physical cores.
func (c *Collector) PhysicalCount() (int, error) {
	return c.platform.physicalCount()
}

// LoadAvg returns the system load averages.
func (c *Collector) LoadAvg() (LoadAvg, error) {
	return c.platform.loadAvg()
}

// optional reports whether err only means the metric is unavailable here.
func optional(err error) bool {
	return errors.IsCode(err, errors.ErrCodeNotImplemented) || errors.IsCode(err, errors.ErrCodeNotFound)
}

// Collect gathers every CPU metric into one measurement with the subtypes
// aggregate, cpuN, stats, info and load. Metrics the platform does not
// provide are left out; any other failure fails the whole collection.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	slog.Debug("collecting cpu metrics")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total, err := c.Times()
	if err != nil {
		return nil, err
	}
	m := measurement.NewMeasurement(measurement.TypeCPU).
		WithSubtypeBuilder(timesSubtype(total))

	cores, err := c.PerCoreTimes()
	switch {
	case err == nil:
		for _, t := range cores {
			m.WithSubtypeBuilder(timesSubtype(t))
		}
	case optional(err):
		slog.Debug("per-core cpu times unavailable", "error", err)
	default:
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats, err := c.Stats()
	switch {
	case err == nil:
		m.WithSubtypeBuilder(measurement.NewSubtypeBuilder("stats").
			SetUint64(measurement.KeyInterrupts, stats.Interrupts).
			SetUint64(measurement.KeyContextSwitches, stats.ContextSwitches).
			SetUint64(measurement.KeySoftInterrupts, stats.SoftInterrupts))
	case optional(err):
		slog.Debug("cpu stats unavailable", "error", err)
	default:
		return nil, err
	}

	info, err := c.infoSubtype()
	if err != nil {
		return nil, err
	}
	m.WithSubtypeBuilder(info)

	load, err := c.LoadAvg()
	if err != nil {
		return nil, err
	}
	m.WithSubtypeBuilder(measurement.NewSubtypeBuilder("load").
		SetFloat64(measurement.KeyLoad1, load.One).
		SetFloat64(measurement.KeyLoad5, load.Five).
		SetFloat64(measurement.KeyLoad15, load.Fifteen))

	return m.Build(), nil
}

func (c *Collector) infoSubtype() (*measurement.SubtypeBuilder, error) {
	logical, err := c.LogicalCount()
	if err != nil {
		return nil, err
	}
	b := measurement.NewSubtypeBuilder("info").SetInt(measurement.KeyLogicalCount, logical)

	physical, err := c.PhysicalCount()
	switch {
	case err == nil:
		b.SetInt(measurement.KeyPhysicalCount, physical)
	case optional(err):
		slog.Debug("physical core count unavailable", "error", err)
	default:
		return nil, err
	}

	mhz, err := c.FrequencyMHz()
	switch {
	case err == nil:
		b.SetFloat64(measurement.KeyFrequencyMHz, mhz)
	case optional(err) || errors.IsCode(err, errors.ErrCodeOSCall):
		slog.Debug("cpu frequency unavailable", "error", err)
	default:
		return nil, err
	}

	return b, nil
}

func timesSubtype(t Times) *measurement.SubtypeBuilder {
	b := measurement.NewSubtypeBuilder(t.Name()).
		SetUint64(measurement.KeyUser, t.User).
		SetUint64(measurement.KeyNice, t.Nice).
		SetUint64(measurement.KeySystem, t.System).
		SetUint64(measurement.KeyIdle, t.Idle).
		SetUint64(measurement.KeyIOWait, t.IOWait).
		SetUint64(measurement.KeyIRQ, t.IRQ).
		SetUint64(measurement.KeySoftIRQ, t.SoftIRQ).
		SetUint64(measurement.KeySteal, t.Steal).
		SetUint64(measurement.KeyGuest, t.Guest).
		SetUint64(measurement.KeyGuestNice, t.GuestNice).
		SetUint64(measurement.KeyBusy, t.Busy()).
		SetUint64(measurement.KeyTotal, t.Total())
	if t.Core != Aggregate {
		b.Label(measurement.ContextCore, t.Name()[3:])
	}
	return b
}
