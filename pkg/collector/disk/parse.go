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

package disk

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/units"
)

// Column positions in /proc/diskstats.
const (
	colName         = 2
	colReads        = 3
	colReadSectors  = 5
	colWrites       = 7
	colWriteSectors = 9
	colBusyMillis   = 12

	minDiskstatsColumns = 14
)

// parseDiskstatsLine parses one /proc/diskstats line. Sectors are scaled to
// bytes.
func parseDiskstatsLine(source string, line []byte) (IOCounters, error) {
	fields := bytes.Fields(line)
	if len(fields) < minDiskstatsColumns {
		return IOCounters{}, errors.Malformed(source, "diskstats line has %d fields, want at least %d",
			len(fields), minDiskstatsColumns)
	}

	var vals [5]uint64
	for i, col := range [...]int{colReads, colReadSectors, colWrites, colWriteSectors, colBusyMillis} {
		v, ok := hostfs.ParseUint(fields[col])
		if !ok {
			return IOCounters{}, errors.Malformed(source, "diskstats column %d of %s is not a number: %q",
				col+1, fields[colName], fields[col])
		}
		vals[i] = v
	}

	return IOCounters{
		DeviceName: string(fields[colName]),
		ReadCount:  vals[0],
		ReadBytes:  units.SectorsToBytes(vals[1]),
		WriteCount: vals[2],
		WriteBytes: units.SectorsToBytes(vals[3]),
		BusyTime:   vals[4],
	}, nil
}

// readDiskstats returns the counters of every device in the diskstats file
// of fs. With physicalOnly, devices without a sysfs device link are skipped.
func readDiskstats(fs hostfs.FS, physicalOnly bool) ([]IOCounters, error) {
	path := fs.ProcPath("diskstats")
	var out []IOCounters
	err := hostfs.ScanLines(path, func(line []byte) (bool, error) {
		c, err := parseDiskstatsLine(path, line)
		if err != nil {
			return false, err
		}
		if physicalOnly && !hostfs.Exists(fs.BlockDevicePath(c.DeviceName)) {
			slog.Debug("skipping non-physical block device", "device", c.DeviceName)
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

// mountEntry is one line of /proc/mounts.
type mountEntry struct {
	Device     string
	MountPoint string
	FSType     string
}

// parseMounts parses the content of /proc/mounts. Lines with fewer than three
// fields are malformed.
func parseMounts(source string, data []byte) ([]mountEntry, error) {
	var out []mountEntry
	err := hostfs.Scan(source, bytes.NewReader(data), func(line []byte) (bool, error) {
		fields := strings.Fields(string(line))
		if len(fields) == 0 {
			return true, nil
		}
		if len(fields) < 3 {
			return false, errors.Malformed(source, "mount line has %d fields, want at least 3", len(fields))
		}
		out = append(out, mountEntry{
			Device:     unescapeMount(fields[0]),
			MountPoint: unescapeMount(fields[1]),
			FSType:     fields[2],
		})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// unescapeMount decodes the three-digit octal escapes (\040 for space and
// so on) the kernel writes into mount table fields.
func unescapeMount(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

// visibleMounts keeps one entry per mount point. The kernel lists mounts in
// mount order, so the last entry for a point is the one stacked on top and
// visible to statfs. Each kept entry stays at the position of the first.
func visibleMounts(mounts []mountEntry) []mountEntry {
	index := make(map[string]int, len(mounts))
	out := make([]mountEntry, 0, len(mounts))
	for _, m := range mounts {
		if i, ok := index[m.MountPoint]; ok {
			out[i] = m
			continue
		}
		index[m.MountPoint] = len(out)
		out = append(out, m)
	}
	return out
}

// filterMounts drops shadowed mounts, then keeps physical filesystems when
// physicalOnly is set. A physical filesystem hidden under a virtual one is
// dropped with it.
func filterMounts(mounts []mountEntry, physicalOnly bool) []mountEntry {
	mounts = visibleMounts(mounts)
	if !physicalOnly {
		return mounts
	}
	out := mounts[:0:0]
	for _, m := range mounts {
		if IsPhysicalFilesystem(m.FSType) {
			out = append(out, m)
		}
	}
	return out
}
