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

package serializer

import (
	"context"

	"github.com/NVIDIA/hostmetrics/pkg/measurement"
)

// Serializer writes a snapshot or sample in some output format.
//
// The context parameter is part of the interface for implementations that
// perform slow I/O; file and stdout writers do not block on it.
type Serializer interface {
	Serialize(ctx context.Context, snapshot any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// MeasurementLister is implemented by documents that carry measurements.
// The table format renders them as one row per reading.
type MeasurementLister interface {
	MeasurementList() []*measurement.Measurement
}
