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

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout bounds a single collector inside a snapshot.
	// Acquisition calls do not time out on their own, so a stalled statfs on a
	// network mount is cut off here.
	CollectorTimeout = 10 * time.Second

	// SnapshotTimeout bounds a complete snapshot including serialization.
	SnapshotTimeout = 30 * time.Second
)

// Watch loop pacing for the CLI.
const (
	// WatchInterval is the default sampling interval for the watch command.
	WatchInterval = 5 * time.Second

	// WatchMinInterval is the fastest sampling interval the watch command accepts.
	WatchMinInterval = 250 * time.Millisecond

	// WatchBurst is the number of samples the watch limiter lets through back to back.
	WatchBurst = 1
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 1 * time.Minute
)
