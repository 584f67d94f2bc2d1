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


//go:build !darwin || !cgo

package mach

import (
	"runtime"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

// HostCPULoad is not available without the Mach interface.
func HostCPULoad() (CPULoad, error) {
	return CPULoad{}, errors.NotImplemented("host cpu load", runtime.GOOS)
}

// ProcessorLoads is not available without the Mach interface.
func ProcessorLoads() ([]CPULoad, error) {
	return nil, errors.NotImplemented("processor loads", runtime.GOOS)
}

// HostVMStats is not available without the Mach interface.
func HostVMStats() (VMStats, error) {
	return VMStats{}, errors.NotImplemented("vm statistics", runtime.GOOS)
}
