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

// Package hostfs locates and streams the kernel pseudo-files that Linux
// collectors read.
//
// # Roots
//
// FS holds the proc, sys, etc, run and var roots. Collectors never hard-code
// "/proc"; they ask their FS for a path:
//
//	fs := hostfs.Default()
//	path := fs.ProcPath("stat")
//
// A containerized agent relocates the roots to where the host filesystems are
// mounted, and tests build a fixture tree with hostfs.Under(t.TempDir()).
//
// # Streaming
//
// ScanLines reads a file through one reused buffer and hands each line to a
// callback, which can stop the scan early once it has what it needs:
//
//	err := hostfs.ScanLines(fs.ProcPath("stat"), func(line []byte) (bool, error) {
//	    if hostfs.HasPrefix(line, "cpu ") {
//	        // parse and stop
//	        return false, nil
//	    }
//	    return true, nil
//	})
//
// # Companion descriptors
//
// Some sysfs paths carry meaning by existing. BlockDevicePath and
// VirtualNetPath name the descriptors the physical-only filters probe.
package hostfs
