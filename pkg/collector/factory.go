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

package collector

import (
	"context"

	"github.com/NVIDIA/hostmetrics/pkg/collector/cpu"
	"github.com/NVIDIA/hostmetrics/pkg/collector/disk"
	"github.com/NVIDIA/hostmetrics/pkg/collector/host"
	"github.com/NVIDIA/hostmetrics/pkg/collector/memory"
	"github.com/NVIDIA/hostmetrics/pkg/collector/network"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// Collector gathers one measurement.
type Collector interface {
	Collect(ctx context.Context) (*measurement.Measurement, error)
}

// Factory creates collectors.
type Factory interface {
	CreateCPUCollector() Collector
	CreateMemoryCollector() Collector
	CreateDiskCollector() Collector
	CreateNetworkCollector() Collector
	CreateHostCollector() Collector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithPhysicalOnly restricts disk and network collectors to physical
// devices.
func WithPhysicalOnly(physicalOnly bool) Option {
	return func(f *DefaultFactory) {
		f.PhysicalOnly = physicalOnly
	}
}

// WithFS sets the host filesystem roots handed to every collector.
func WithFS(fs hostfs.FS) Option {
	return func(f *DefaultFactory) {
		f.FS = fs
	}
}

// WithVersion records the build version of the caller.
func WithVersion(version string) Option {
	return func(f *DefaultFactory) {
		f.Version = version
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	PhysicalOnly bool
	FS           hostfs.FS
	Version      string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{FS: hostfs.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCPUCollector creates a CPU collector.
func (f *DefaultFactory) CreateCPUCollector() Collector {
	return cpu.NewCollector(cpu.WithFS(f.FS))
}

// CreateMemoryCollector creates a memory collector.
func (f *DefaultFactory) CreateMemoryCollector() Collector {
	return memory.NewCollector(memory.WithFS(f.FS))
}

// CreateDiskCollector creates a disk collector.
func (f *DefaultFactory) CreateDiskCollector() Collector {
	return disk.NewCollector(disk.WithFS(f.FS), disk.WithPhysicalOnly(f.PhysicalOnly))
}

// CreateNetworkCollector creates a network collector.
func (f *DefaultFactory) CreateNetworkCollector() Collector {
	return network.NewCollector(network.WithFS(f.FS), network.WithPhysicalOnly(f.PhysicalOnly))
}

// CreateHostCollector creates a host collector.
func (f *DefaultFactory) CreateHostCollector() Collector {
	return host.NewCollector(host.WithFS(f.FS))
}

// For returns the collector of measurement type t, or false for an unknown
// type.
func For(f Factory, t measurement.Type) (Collector, bool) {
	switch t {
	case measurement.TypeCPU:
		return f.CreateCPUCollector(), true
	case measurement.TypeMemory:
		return f.CreateMemoryCollector(), true
	case measurement.TypeDisk:
		return f.CreateDiskCollector(), true
	case measurement.TypeNetwork:
		return f.CreateNetworkCollector(), true
	case measurement.TypeHost:
		return f.CreateHostCollector(), true
	default:
		return nil, false
	}
}
