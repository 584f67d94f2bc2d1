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


//go:build linux

package memory

import (
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

type linuxPlatform struct {
	fs hostfs.FS
}

func newPlatform(fs hostfs.FS) platform {
	return &linuxPlatform{fs: fs}
}

func (p *linuxPlatform) memory() (Memory, error) {
	m, err := readMeminfo(p.fs.ProcPath("meminfo"))
	if err != nil {
		return Memory{}, err
	}
	return m.toBytes(), nil
}

func (p *linuxPlatform) swap() (Swap, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return Swap{}, errors.OSCall("sysinfo", err)
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return newSwap(uint64(info.Totalswap)*unit, uint64(info.Freeswap)*unit), nil
}

func (p *linuxPlatform) hasSwap() (bool, error) {
	return readHasSwap(p.fs.ProcPath("swaps"))
}
