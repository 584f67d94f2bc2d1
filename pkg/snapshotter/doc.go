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

// Package snapshotter collects every host measurement into one Snapshot.
//
// HostSnapshotter fans the collectors out with an errgroup, bounds each with
// a timeout, and serializes the result. If any collector fails the snapshot
// fails; a partial snapshot is never written.
//
//	s := &snapshotter.HostSnapshotter{
//	    Version:    version,
//	    Factory:    collector.NewDefaultFactory(collector.WithPhysicalOnly(true)),
//	    Serializer: serializer.NewStdoutWriter(serializer.FormatYAML),
//	}
//	if err := s.Measure(ctx); err != nil {
//	    return err
//	}
//
// Snapshot returns the measurements without serializing them; the exporter
// uses it.
//
// # Metrics
//
// Collection is observed on the default Prometheus registry:
//
//	hostmetrics_snapshot_collection_duration_seconds  histogram
//	hostmetrics_snapshot_collection_total{status}     counter
//	hostmetrics_snapshot_collector_duration_seconds{collector}  histogram
//	hostmetrics_snapshot_measurements                 gauge
package snapshotter
