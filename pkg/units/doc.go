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

// Package units converts raw kernel counters into the units records are
// reported in.
//
// Sources rarely report bytes or seconds directly. /proc/diskstats counts
// 512-byte sectors, /proc/meminfo prints kilobytes, Mach VM statistics count
// pages, and /proc/stat counts clock ticks. The conversions here are pure
// integer functions that truncate, so a fractional tick or page never shows up
// as a rounding artifact in a test.
//
// Two conversions need a constant only the kernel knows: ticks per second and
// the page size. Both are discovered on first use through sysconf(3) and cached
// for the rest of the process:
//
//	hz, err := units.ClockTicks()
//	if err != nil {
//	    return err
//	}
//	secs := units.TicksToSeconds(times.User, hz)
//
// Concurrent first calls are safe.
package units
