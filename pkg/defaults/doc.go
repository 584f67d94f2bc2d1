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

// Package defaults provides centralized configuration constants for hostmetrics.
//
// # Categories
//
//   - Collector timeouts: bound a collector inside a snapshot
//   - Watch pacing: default and minimum sampling interval of the CLI watch loop
//   - Read sizes: line buffer sizing for kernel pseudo-files
//   - Account ranges: regular login UID range fallback
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
// The acquisition functions never apply these values themselves. They are
// synchronous reads, and bounding their latency is up to the caller.
package defaults
