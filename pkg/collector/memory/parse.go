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

package memory

import (
	"bytes"
	"encoding/binary"
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/mach"
	"github.com/NVIDIA/hostmetrics/pkg/units"
)

// meminfo field indexes.
const (
	fieldTotal = iota
	fieldFree
	fieldBuffers
	fieldCached
	fieldSReclaimable
	fieldShmem
	numFields
)

// meminfoKeys maps the four byte classification prefix of each consumed
// /proc/meminfo line to its full key.
var meminfoKeys = [numFields]struct {
	prefix string
	key    string
}{
	fieldTotal:        {"MemT", "MemTotal"},
	fieldFree:         {"MemF", "MemFree"},
	fieldBuffers:      {"Buff", "Buffers"},
	fieldCached:       {"Cach", "Cached"},
	fieldSReclaimable: {"SRec", "SReclaimable"},
	fieldShmem:        {"Shme", "Shmem"},
}

// requiredFields must be present. SReclaimable and Shmem are missing on very
// old kernels and count as zero.
const requiredFields = 1<<fieldTotal | 1<<fieldFree | 1<<fieldBuffers | 1<<fieldCached

// readMeminfo parses path into a Memory in KiB. Cached includes SReclaimable.
func readMeminfo(path string) (Memory, error) {
	var (
		vals [numFields]uint64
		seen int
	)
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		if len(line) < 4 {
			return true, nil
		}
		idx := -1
		for i, k := range meminfoKeys {
			if hostfs.HasPrefix(line, k.prefix) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return true, nil
		}

		key, rest, ok := bytes.Cut(line, []byte{':'})
		if !ok || string(key) != meminfoKeys[idx].key {
			return true, nil
		}
		fields := bytes.Fields(rest)
		if len(fields) < 1 {
			return false, errors.Malformed(path, "%s has no value", key)
		}
		v, ok := hostfs.ParseUint(fields[0])
		if !ok {
			return false, errors.Malformed(path, "%s value is not a number: %q", key, fields[0])
		}
		vals[idx] = v
		seen |= 1 << idx
		return seen != 1<<numFields-1, nil
	})
	if err != nil {
		return Memory{}, err
	}
	if seen&requiredFields != requiredFields {
		for i, k := range meminfoKeys {
			if requiredFields&(1<<i) != 0 && seen&(1<<i) == 0 {
				return Memory{}, errors.Malformed(path, "missing %s", k.key)
			}
		}
	}

	m := Memory{
		Total:   vals[fieldTotal],
		Free:    vals[fieldFree],
		Buffers: vals[fieldBuffers],
		Cached:  vals[fieldCached] + vals[fieldSReclaimable],
		Shared:  vals[fieldShmem],
	}
	if inUse := m.Free + m.Buffers + m.Cached; inUse <= m.Total {
		m.Used = m.Total - inUse
	} else {
		slog.Debug("meminfo parts exceed total", "path", path, "total", m.Total, "parts", inUse)
	}
	return m, nil
}

// toBytes scales a KiB Memory to bytes.
func (m Memory) toBytes() Memory {
	return Memory{
		Total:   units.KiBToBytes(m.Total),
		Free:    units.KiBToBytes(m.Free),
		Used:    units.KiBToBytes(m.Used),
		Shared:  units.KiBToBytes(m.Shared),
		Buffers: units.KiBToBytes(m.Buffers),
		Cached:  units.KiBToBytes(m.Cached),
	}
}

// readHasSwap reports whether path lists any swap device below its header.
func readHasSwap(path string) (bool, error) {
	lines := 0
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		if len(bytes.TrimSpace(line)) == 0 {
			return true, nil
		}
		lines++
		return lines < 2, nil
	})
	if err != nil {
		return false, err
	}
	return lines > 1, nil
}

// parseSwapUsage decodes a darwin struct xsw_usage: total, avail and used as
// 64-bit byte counts.
func parseSwapUsage(b []byte) (Swap, error) {
	if len(b) < 24 {
		return Swap{}, errors.Malformed("vm.swapusage", "got %d bytes, want at least 24", len(b))
	}
	total := binary.LittleEndian.Uint64(b[0:8])
	avail := binary.LittleEndian.Uint64(b[8:16])
	return newSwap(total, avail), nil
}

// memoryFromVM reports used as active plus wired pages. Purgeable and
// file-backed pages are reported as cached.
func memoryFromVM(total uint64, vm mach.VMStats, pageSize uint64) Memory {
	return Memory{
		Total:  total,
		Free:   units.PagesToBytes(vm.Free, pageSize),
		Used:   units.PagesToBytes(vm.Active+vm.Wired, pageSize),
		Cached: units.PagesToBytes(vm.Purgeable+vm.External, pageSize),
	}
}
