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

package units

import "fmt"

// SectorSize is the fixed unit /proc/diskstats reports sector counts in,
// independent of the device's physical sector size.
const SectorSize = 512

// ByteUnit is a binary multiple of a byte.
type ByteUnit uint64

// Binary byte units.
const (
	Byte ByteUnit = 1
	KiB  ByteUnit = 1 << 10
	MiB  ByteUnit = 1 << 20
	GiB  ByteUnit = 1 << 30
	TiB  ByteUnit = 1 << 40
)

// String returns the unit symbol.
func (u ByteUnit) String() string {
	switch u {
	case Byte:
		return "B"
	case KiB:
		return "KiB"
	case MiB:
		return "MiB"
	case GiB:
		return "GiB"
	case TiB:
		return "TiB"
	default:
		return fmt.Sprintf("%dB", uint64(u))
	}
}

// SectorsToBytes scales a diskstats sector count to bytes.
func SectorsToBytes(sectors uint64) uint64 {
	return sectors * SectorSize
}

// KiBToBytes scales a kilobyte count as printed by /proc/meminfo.
func KiBToBytes(kib uint64) uint64 {
	return kib * uint64(KiB)
}

// PagesToBytes scales a page count by pageSize.
func PagesToBytes(pages, pageSize uint64) uint64 {
	return pages * pageSize
}

// TicksToSeconds converts clock ticks to whole seconds. Fractional seconds are
// truncated. A zero hz yields zero rather than a division panic.
func TicksToSeconds(ticks, hz uint64) uint64 {
	if hz == 0 {
		return 0
	}
	return ticks / hz
}

// NanosToMillis truncates a nanosecond duration to milliseconds.
func NanosToMillis(ns uint64) uint64 {
	return ns / 1_000_000
}

// BytesTo converts b to the given unit with integer truncation.
func BytesTo(b uint64, u ByteUnit) uint64 {
	if u == 0 {
		return 0
	}
	return b / uint64(u)
}

// Humanize renders b with the largest unit that keeps the value at or above one,
// e.g. 1536 becomes "1.5 KiB".
func Humanize(b uint64) string {
	units := []ByteUnit{TiB, GiB, MiB, KiB}
	for _, u := range units {
		if b >= uint64(u) {
			return fmt.Sprintf("%.1f %s", float64(b)/float64(u), u)
		}
	}
	return fmt.Sprintf("%d %s", b, Byte)
}
