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

package cpu

import (
	"log/slog"

	"github.com/tklauser/go-sysconf"
	"github.com/tklauser/numcpus"
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

func (p *linuxPlatform) times() (Times, error) {
	return readTimes(p.fs.ProcPath("stat"))
}

func (p *linuxPlatform) perCoreTimes() ([]Times, error) {
	return readPerCoreTimes(p.fs.ProcPath("stat"))
}

func (p *linuxPlatform) stats() (Stats, error) {
	return readStats(p.fs.ProcPath("stat"))
}

func (p *linuxPlatform) frequencyMHz() (float64, error) {
	return readFrequency(p.fs.ProcPath("cpuinfo"))
}

// logicalCount tries sysconf, then the sysfs online mask, then the affinity
// mask of the calling thread.
func (p *linuxPlatform) logicalCount() (int, error) {
	if n, err := sysconf.Sysconf(sysconf.SC_NPROCESSORS_ONLN); err == nil {
		if v, ok := validLogicalCount(n, "sysconf"); ok {
			return v, nil
		}
	} else {
		slog.Debug("sysconf online cpus failed", "error", err)
	}

	if n, err := numcpus.GetOnline(); err == nil {
		if v, ok := validLogicalCount(int64(n), "numcpus"); ok {
			return v, nil
		}
	} else {
		slog.Debug("online cpu mask unavailable", "error", err)
	}

	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 0, errors.OSCall("sched_getaffinity", err)
	}
	if v, ok := validLogicalCount(int64(set.Count()), "sched_getaffinity"); ok {
		return v, nil
	}
	return 0, errors.New(errors.ErrCodeInternal, "no logical cpu count source succeeded")
}

// physicalCount prefers sysfs topology and falls back to the "cpu cores"
// entry of /proc/cpuinfo.
func (p *linuxPlatform) physicalCount() (int, error) {
	n, err := countTopologyCores(p.fs.SysPath("devices", "system", "cpu"))
	if err == nil {
		return n, nil
	}
	slog.Debug("cpu topology unavailable, using cpuinfo", "error", err)
	return readCoresPerPackage(p.fs.ProcPath("cpuinfo"))
}

func (p *linuxPlatform) loadAvg() (LoadAvg, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return LoadAvg{}, errors.OSCall("sysinfo", err)
	}
	return fromSysinfoLoads(uint64(info.Loads[0]), uint64(info.Loads[1]), uint64(info.Loads[2])), nil
}
