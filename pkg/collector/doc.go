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

// Package collector provides the collectors that turn host counters into
// measurements.
//
// # Core Interface
//
// Every collector implements:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*measurement.Measurement, error)
//	}
//
// Collect checks the context between acquisitions. The acquisitions
// themselves are single synchronous reads of kernel state and are not
// interrupted.
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation so that the snapshotter
// can be tested with fakes:
//
//	type Factory interface {
//	    CreateCPUCollector() Collector
//	    CreateMemoryCollector() Collector
//	    CreateDiskCollector() Collector
//	    CreateNetworkCollector() Collector
//	    CreateHostCollector() Collector
//	}
//
// The DefaultFactory builds the platform collectors:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithPhysicalOnly(true),
//	    collector.WithFS(hostfs.Under("/host")),
//	    collector.WithVersion("v1.0.0"),
//	)
//
// # Available Collectors
//
// CPU (cpu): aggregate and per-core times, interrupt and context switch
// counters, frequency, logical and physical counts, load average.
//
// Memory (memory): physical memory and swap.
//
// Disk (disk): mounted partitions with capacity, per-device I/O counters.
//
// Network (network): per-interface traffic counters.
//
// Host (host): identity, uptime, accounts, logged-in users and
// virtualization (virt).
//
// Each package selects its platform backend at build time: Linux reads
// /proc and /sys below relocatable roots (see hostfs), macOS uses sysctl,
// Mach and IOKit, and other platforms report NOT_IMPLEMENTED.
package collector
