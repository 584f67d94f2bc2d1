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
	"context"
	"time"

	"github.com/NVIDIA/hostmetrics/pkg/header"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// FullAPIVersion is the apiVersion written into snapshot headers.
const FullAPIVersion = "hostmetrics.nvidia.com/v1alpha1"

// Snapshotter collects and serializes host snapshots.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// NewSnapshot creates a new Snapshot instance with an initialized Measurements slice.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Measurements: make([]*measurement.Measurement, 0),
	}
}

// Snapshot is one point-in-time set of host measurements.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// Measurements holds one measurement per collected type, in the order of
	// measurement.Types.
	Measurements []*measurement.Measurement `json:"measurements" yaml:"measurements"`
}

// Get returns the measurement of type t, or nil.
func (s *Snapshot) Get(t measurement.Type) *measurement.Measurement {
	for _, m := range s.Measurements {
		if m != nil && m.Type == t {
			return m
		}
	}
	return nil
}

// MeasurementList returns the snapshot measurements for table rendering.
func (s *Snapshot) MeasurementList() []*measurement.Measurement {
	return s.Measurements
}

// Sample is one reading of a single metric, as emitted by the watch loop.
type Sample struct {
	header.Header `json:",inline" yaml:",inline"`

	// Metric names the reading, for example "cpu-times".
	Metric string `json:"metric" yaml:"metric"`

	// Value is the typed record returned by the acquisition function.
	Value any `json:"value" yaml:"value"`
}

// NewSample wraps value in a Sample header stamped with now.
func NewSample(metric, version string, value any, now time.Time) *Sample {
	s := &Sample{
		Metric: metric,
		Value:  value,
	}
	s.Init(header.KindSample, FullAPIVersion, version, now)
	return s
}
