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

// Package exporter exposes host snapshots as Prometheus metrics.
//
// Every numeric reading becomes one sample named
// hostmetrics_<type>_<key> with a "subtype" label. Monotonic kernel
// counters (CPU ticks, interrupts, disk and network I/O) are counters, all
// other readings are gauges. String readings of a type are folded into a
// hostmetrics_<type>_info gauge with value 1.
//
// The collector takes a fresh snapshot on every scrape:
//
//	c := exporter.NewCollector(&snapshotter.HostSnapshotter{Version: v})
//	if err := c.WriteTextfile("/var/lib/node_exporter/hostmetrics.prom"); err != nil {
//		return err
//	}
//
// WriteTextfile produces a file for the node_exporter textfile collector.
// This package does not serve metrics over the network.
package exporter
