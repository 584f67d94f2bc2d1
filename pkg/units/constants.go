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

//go:build linux || darwin

package units

import (
	"sync"

	"github.com/tklauser/go-sysconf"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

var (
	clockTicks = sync.OnceValues(func() (uint64, error) {
		return sysconfPositive("sysconf(_SC_CLK_TCK)", sysconf.SC_CLK_TCK)
	})

	pageSize = sync.OnceValues(func() (uint64, error) {
		return sysconfPositive("sysconf(_SC_PAGESIZE)", sysconf.SC_PAGESIZE)
	})
)

func sysconfPositive(call string, name int) (uint64, error) {
	v, err := sysconf.Sysconf(name)
	if err != nil {
		return 0, errors.OSCall(call, err)
	}
	if v <= 0 {
		return 0, errors.NewWithContext(errors.ErrCodeOSCall, call+" returned a non-positive value",
			map[string]any{"call": call, "value": v})
	}
	return uint64(v), nil
}

// ClockTicks returns the kernel's clock ticks per second. The value is
// discovered on first use and cached for the life of the process. A failure on
// first use is returned to every caller, since no tick-based metric can be
// computed without it.
func ClockTicks() (uint64, error) {
	return clockTicks()
}

// PageSize returns the memory page size in bytes, cached like ClockTicks.
func PageSize() (uint64, error) {
	return pageSize()
}
