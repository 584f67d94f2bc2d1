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

// Package cpu acquires processor time counters, kernel activity counters,
// frequency, core counts and load averages.
//
// On Linux the counters come from /proc/stat and /proc/cpuinfo, topology from
// /sys/devices/system/cpu, and load average from sysinfo(2). On macOS they
// come from sysctl and the Mach host interface (see package mach).
//
// Times are raw clock ticks. Use Times.Seconds or Collector.TimesSeconds for
// seconds. Nothing is cached between calls and no deltas are computed; two
// samples are diffed by the caller.
//
// # Usage
//
//	c := cpu.NewCollector()
//	t, err := c.Times()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t.Busy(), t.IdleTotal(), t.Total())
package cpu
