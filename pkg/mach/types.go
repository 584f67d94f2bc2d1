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

package mach

import "fmt"

// Indexes into the per-processor tick array (CPU_STATE_*).
const (
	cpuStateUser   = 0
	cpuStateSystem = 1
	cpuStateIdle   = 2
	cpuStateNice   = 3
	cpuStateMax    = 4
)

// CPULoad holds tick counters for one processor or for the whole host.
type CPULoad struct {
	User   uint64
	System uint64
	Idle   uint64
	Nice   uint64
}

// VMStats is the subset of vm_statistics64 used for memory accounting.
// Counts are in pages; see units.PageSize.
type VMStats struct {
	Free        uint64
	Active      uint64
	Inactive    uint64
	Wired       uint64
	Speculative uint64
	Compressed  uint64
	Purgeable   uint64
	External    uint64
}

// KernReturn is a failing kern_return_t.
type KernReturn int32

func (k KernReturn) Error() string {
	return fmt.Sprintf("kern_return_t %d", int32(k))
}

// loadsFromTicks splits a flat CPU_STATE_MAX-strided tick array into one
// CPULoad per processor.
func loadsFromTicks(ticks []int32, ncpu int) []CPULoad {
	if ncpu*cpuStateMax > len(ticks) {
		ncpu = len(ticks) / cpuStateMax
	}
	loads := make([]CPULoad, ncpu)
	for i := range loads {
		base := i * cpuStateMax
		loads[i] = CPULoad{
			User:   uint64(uint32(ticks[base+cpuStateUser])),
			System: uint64(uint32(ticks[base+cpuStateSystem])),
			Idle:   uint64(uint32(ticks[base+cpuStateIdle])),
			Nice:   uint64(uint32(ticks[base+cpuStateNice])),
		}
	}
	return loads
}
