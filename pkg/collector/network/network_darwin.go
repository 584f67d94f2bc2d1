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

package network

import (
	"log/slog"
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

// NET_RT_IFLIST2 from <sys/socket.h>.
const netRtIfList2 = 6

type darwinPlatform struct{}

func newPlatform(hostfs.FS) platform {
	return darwinPlatform{}
}

func (darwinPlatform) ioCounters(physicalOnly bool) ([]IOCounters, error) {
	buf, err := unix.SysctlRaw("net.route", 0, 0, netRtIfList2, 0)
	if err != nil {
		return nil, errors.OSCall("sysctl net.route iflist2", err)
	}

	infos, err := parseIfList2(buf)
	if err != nil {
		return nil, err
	}

	out := make([]IOCounters, 0, len(infos))
	for _, info := range infos {
		if physicalOnly && info.Loopback {
			continue
		}
		c := info.Counters
		iface, err := net.InterfaceByIndex(int(info.Index))
		if err != nil {
			slog.Debug("interface name lookup failed", "index", info.Index, "error", err)
			c.Interface = "if" + strconv.Itoa(int(info.Index))
		} else {
			c.Interface = iface.Name
		}
		out = append(out, c)
	}
	return out, nil
}
