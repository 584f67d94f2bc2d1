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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostmetrics_snapshot_collection_duration_seconds",
			Help:    "Time taken to collect a complete host snapshot",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	snapshotCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostmetrics_snapshot_collection_total",
			Help: "Total number of snapshot collection attempts",
		},
		[]string{"status"}, // success or error
	)

	snapshotCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostmetrics_snapshot_collector_duration_seconds",
			Help:    "Time taken by individual collectors",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"collector"}, // cpu, memory, disk, network, host
	)

	snapshotMeasurementCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostmetrics_snapshot_measurements",
			Help: "Number of measurements in the last collected snapshot",
		},
	)
)
