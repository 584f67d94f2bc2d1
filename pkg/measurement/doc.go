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

// Package measurement defines the neutral record model that every collector
// emits: a Measurement of a given Type holding named Subtypes of scalar
// readings.
//
// # Core Types
//
//   - Type: the metric family (CPU, Memory, Disk, Network, Host)
//   - Measurement: a Type and its Subtypes
//   - Subtype: a named set of readings, e.g. "aggregate", "cpu0", "sda", "eth0"
//   - Reading: a type-safe scalar (int, int64, uint64, float64, bool, string)
//
// Subtypes may carry string Context labels (device, interface, core) that
// exporters turn into metric labels.
//
// # Building
//
//	m := NewMeasurement(TypeDisk).
//	    WithSubtypeBuilder(
//	        NewSubtypeBuilder("sda").
//	            SetUint64(KeyReadBytes, 4096).
//	            Label(ContextDevice, "sda"),
//	    ).
//	    Build()
//
// # Accessing Data
//
//	st := m.GetSubtype("sda")
//	reads, err := st.GetUint64(KeyReadBytes)
//	v, ok := Numeric(st.Get(KeyBusyTimeMS))
//
// # Filtering
//
// Keys and subtypes can be filtered with wildcard patterns:
//
//	kept := FilterIn(st.Data, []string{"*_bytes"})
//	counters := FilterKeys(m, []string{"*_bytes"}, []string{"rx_*"})
//	physical := FilterSubtypes(m, []string{"sd*", "nvme*"})
//
// Readings marshal as plain JSON and YAML values so a serialized snapshot
// reads naturally.
package measurement
