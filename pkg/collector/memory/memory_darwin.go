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


//go:build darwin

package memory

import (
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/mach"
	"github.com/NVIDIA/hostmetrics/pkg/units"
)

type darwinPlatform struct{}

func newPlatform(hostfs.FS) platform {
	return darwinPlatform{}
}

func (darwinPlatform) memory() (Memory, error) {
	total, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return Memory{}, errors.OSCall("sysctl hw.memsize", err)
	}

	vm, err := mach.HostVMStats()
	if err != nil {
		return Memory{}, err
	}

	page, err := units.PageSize()
	if err != nil {
		return Memory{}, err
	}
	return memoryFromVM(total, vm, page), nil
}

func (darwinPlatform) swap() (Swap, error) {
	b, err := unix.SysctlRaw("vm.swapusage")
	if err != nil {
		return Swap{}, errors.OSCall("sysctl vm.swapusage", err)
	}
	return parseSwapUsage(b)
}

func (p darwinPlatform) hasSwap() (bool, error) {
	s, err := p.swap()
	if err != nil {
		return false, err
	}
	return s.Total > 0, nil
}
