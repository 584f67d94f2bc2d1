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

// Package disk acquires mounted partition usage and per-device I/O counters.
//
// On Linux, partitions come from /proc/mounts and statfs(2), and I/O
// counters from /proc/diskstats. On macOS, partitions come from getfsstat(2)
// and I/O counters from a walk of the IOKit registry (see walkIOCounters).
//
// The physical-only view drops pseudo and network filesystems from the
// partition list, and virtual or removable devices from the I/O counters. On
// Linux a device counts as physical when /sys/block/<dev>/device exists, with
// '/' in device names spelled as '!'.
package disk
