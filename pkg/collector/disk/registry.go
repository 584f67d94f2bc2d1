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
	"log/slog"

	"github.com/NVIDIA/hostmetrics/pkg/iokit"
	"github.com/NVIDIA/hostmetrics/pkg/units"
)

// walkIOCounters enumerates IOMedia services whose parent is a block storage
// driver and reads their I/O statistics.
//
// Every iterator, entry and property dictionary acquired during the walk is
// released before the call returns, on every path. Failing to resolve a
// parent, snapshot properties or find a required key aborts the walk.
func walkIOCounters(reg iokit.Registry, physicalOnly bool) ([]IOCounters, error) {
	it, err := reg.MatchingServices(iokit.ClassMedia)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var out []IOCounters
	for {
		media, ok := it.Next()
		if !ok {
			return out, nil
		}

		c, keep, err := readMedia(media, physicalOnly)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, c)
		}
	}
}

// readMedia takes ownership of media and releases it.
func readMedia(media iokit.Entry, physicalOnly bool) (IOCounters, bool, error) {
	defer media.Release()

	parent, err := media.Parent(iokit.PlaneService)
	if err != nil {
		return IOCounters{}, false, err
	}
	defer parent.Release()

	if !parent.ConformsTo(iokit.ClassBlockStorageDriver) {
		return IOCounters{}, false, nil
	}

	props, err := media.Properties()
	if err != nil {
		return IOCounters{}, false, err
	}
	defer props.Release()

	parentProps, err := parent.Properties()
	if err != nil {
		return IOCounters{}, false, err
	}
	defer parentProps.Release()

	if physicalOnly {
		removable, err := props.Bool(iokit.KeyRemovable)
		if err != nil {
			return IOCounters{}, false, err
		}
		if removable {
			slog.Debug("skipping removable media")
			return IOCounters{}, false, nil
		}
	}

	stats, err := parentProps.Dict(iokit.KeyStatistics)
	if err != nil {
		return IOCounters{}, false, err
	}

	c, err := readStatistics(stats)
	if err != nil {
		return IOCounters{}, false, err
	}

	if c.DeviceName, err = props.String(iokit.KeyBSDName); err != nil {
		return IOCounters{}, false, err
	}
	return c, true, nil
}

func readStatistics(stats iokit.Dict) (IOCounters, error) {
	keys := [...]string{
		iokit.KeyReadOps,
		iokit.KeyReadBytes,
		iokit.KeyWriteOps,
		iokit.KeyWriteBytes,
		iokit.KeyReadTotalTime,
		iokit.KeyWriteTotalTime,
	}
	var vals [len(keys)]uint64
	for i, k := range keys {
		v, err := stats.Int64(k)
		if err != nil {
			return IOCounters{}, err
		}
		vals[i] = uint64(v)
	}

	return IOCounters{
		ReadCount:  vals[0],
		ReadBytes:  vals[1],
		WriteCount: vals[2],
		WriteBytes: vals[3],
		BusyTime:   units.NanosToMillis(vals[4] + vals[5]),
	}, nil
}
