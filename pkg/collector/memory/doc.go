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

// Package memory acquires physical memory and swap usage.
//
// All values are bytes. On Linux, memory comes from /proc/meminfo (reported
// in KiB and scaled here), swap from sysinfo(2) and the swap-enabled check
// from /proc/swaps. On macOS, memory comes from hw.memsize and the Mach VM
// statistics, swap from vm.swapusage.
package memory
