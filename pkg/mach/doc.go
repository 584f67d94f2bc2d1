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

// Package mach reads host statistics from the Mach kernel interface on macOS:
// aggregate and per-processor CPU tick counters and 64-bit virtual memory
// statistics.
//
// Every call takes a send right to the host port and deallocates it before
// returning. The processor info array returned by the kernel is released with
// vm_deallocate on every path once it has been copied out.
//
// On other platforms, and on darwin builds without cgo, every function
// returns an errors.ErrCodeNotImplemented error.
package mach
