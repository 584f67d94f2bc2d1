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

package cpu

import (
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/mach"
)

type darwinPlatform struct{}

func newPlatform(hostfs.FS) platform {
	return darwinPlatform{}
}

func fromMach(core int, l mach.CPULoad) Times {
	return Times{
		Core:   core,
		User:   l.User,
		Nice:   l.Nice,
		System: l.System,
		Idle:   l.Idle,
	}
}

func (darwinPlatform) times() (Times, error) {
	l, err := mach.HostCPULoad()
	if err != nil {
		return Times{}, err
	}
	return fromMach(Aggregate, l), nil
}

func (darwinPlatform) perCoreTimes() ([]Times, error) {
	loads, err := mach.ProcessorLoads()
	if err != nil {
		return nil, err
	}
	out := make([]Times, len(loads))
	for i, l := range loads {
		out[i] = fromMach(i, l)
	}
	return out, nil
}

func (darwinPlatform) stats() (Stats, error) {
	return Stats{}, errors.NotImplemented("cpu stats", "darwin")
}

func (darwinPlatform) frequencyMHz() (float64, error) {
	hz, err := unix.SysctlUint64("hw.cpufrequency")
	if err != nil {
		return 0, errors.OSCall("sysctl hw.cpufrequency", err)
	}
	return float64(hz) / 1e6, nil
}

func (darwinPlatform) logicalCount() (int, error) {
	n, err := unix.SysctlUint32("hw.logicalcpu")
	if err != nil || n == 0 {
		slog.Debug("hw.logicalcpu unavailable, using hw.ncpu", "error", err)
		if n, err = unix.SysctlUint32("hw.ncpu"); err != nil {
			return 0, errors.OSCall("sysctl hw.ncpu", err)
		}
	}
	if v, ok := validLogicalCount(int64(n), "sysctl"); ok {
		return v, nil
	}
	return 0, errors.New(errors.ErrCodeInternal, "sysctl reported no logical cpus")
}

func (darwinPlatform) physicalCount() (int, error) {
	n, err := unix.SysctlUint32("hw.physicalcpu")
	if err != nil {
		return 0, errors.OSCall("sysctl hw.physicalcpu", err)
	}
	return int(n), nil
}

func (darwinPlatform) loadAvg() (LoadAvg, error) {
	b, err := unix.SysctlRaw("vm.loadavg")
	if err != nil {
		return LoadAvg{}, errors.OSCall("sysctl vm.loadavg", err)
	}
	return parseLoadavg(b)
}
