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

// Package serializer writes snapshots as JSON, YAML or a table, and reads
// JSON and YAML snapshots back.
//
// The package supports three output formats:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable document format
//   - Table: one row per reading, with locale-grouped numbers
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, snap); err != nil {
//		return err
//	}
//
// Reading a saved snapshot:
//
//	snap, err := serializer.FromFile[snapshotter.Snapshot]("snapshot.yaml")
//
// Documents that implement MeasurementLister are tabulated by measurement
// type, subtype and key. Anything else is flattened into dotted field paths.
package serializer
