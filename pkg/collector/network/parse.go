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

package network

import (
	"bytes"
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

const (
	netDevHeaderLines = 2
	// rx bytes, packets, errs, drop, then four unused receive columns, then
	// tx bytes, packets, errs, drop.
	minNetDevColumns = 12
)

// parseNetDevLine parses one interface line of /proc/net/dev.
func parseNetDevLine(source string, line []byte) (IOCounters, error) {
	name, rest, ok := bytes.Cut(line, []byte{':'})
	if !ok {
		return IOCounters{}, errors.Malformed(source, "interface line without ':' separator: %q", line)
	}
	iface := string(bytes.TrimSpace(name))

	fields := bytes.Fields(rest)
	if len(fields) < minNetDevColumns {
		return IOCounters{}, errors.Malformed(source, "interface %s has %d counters, want at least %d",
			iface, len(fields), minNetDevColumns)
	}

	var vals [minNetDevColumns]uint64
	for i := range vals {
		if i >= 4 && i < 8 {
			continue
		}
		v, ok := hostfs.ParseUint(fields[i])
		if !ok {
			return IOCounters{}, errors.Malformed(source, "interface %s counter %d is not a number: %q",
				iface, i+1, fields[i])
		}
		vals[i] = v
	}

	return IOCounters{
		Interface: iface,
		RxBytes:   vals[0],
		RxPackets: vals[1],
		RxErrs:    vals[2],
		RxDrop:    vals[3],
		TxBytes:   vals[8],
		TxPackets: vals[9],
		TxErrs:    vals[10],
		TxDrop:    vals[11],
	}, nil
}

// readNetDev returns the counters of every interface in the net/dev file of
// fs. With physicalOnly, interfaces with a virtual sysfs entry are skipped.
func readNetDev(fs hostfs.FS, physicalOnly bool) ([]IOCounters, error) {
	path := fs.ProcPath("net", "dev")
	var (
		out  []IOCounters
		line int
	)
	err := hostfs.ScanLines(path, func(b []byte) (bool, error) {
		line++
		if line <= netDevHeaderLines || len(bytes.TrimSpace(b)) == 0 {
			return true, nil
		}
		c, err := parseNetDevLine(path, b)
		if err != nil {
			return false, err
		}
		if physicalOnly && hostfs.Exists(fs.VirtualNetPath(c.Interface)) {
			slog.Debug("skipping virtual interface", "interface", c.Interface)
			return true, nil
		}
		out = append(out, c)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
