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

package defaults

// Read sizes for kernel pseudo-files.
const (
	// LineBufferSize is the initial capacity of the reused line buffer.
	// /proc/stat intr lines grow past this on large hosts and the buffer grows with them.
	LineBufferSize = 4096

	// MaxLineSize caps a single pseudo-file line.
	MaxLineSize = 1 << 20

	// MountsReadAttempts is how often /proc/mounts is re-read until two reads agree.
	MountsReadAttempts = 3
)

// Account ranges used when /etc/login.defs does not say otherwise.
const (
	// UIDMin is the lowest UID of a regular login account.
	UIDMin = 1000

	// UIDMax is the highest UID of a regular login account.
	UIDMax = 60000
)

// CPU count sanity bound.
const (
	// MaxLogicalCPUs is the upper bound accepted from any logical CPU count source.
	MaxLogicalCPUs = 1024
)
