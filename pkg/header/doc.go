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

// Package header provides the Kind, APIVersion and Metadata block written at
// the top of every serialized snapshot and watch sample.
//
//	snap.Init(header.KindSnapshot, snapshotter.FullAPIVersion, "v1.0.0", time.Now())
//
// produces
//
//	kind: Snapshot
//	apiVersion: hostmetrics.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v1.0.0
package header
