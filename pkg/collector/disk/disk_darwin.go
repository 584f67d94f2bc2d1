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

package disk

import (
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
	"github.com/NVIDIA/hostmetrics/pkg/iokit"
)

type darwinPlatform struct{}

func newPlatform(hostfs.FS) platform {
	return darwinPlatform{}
}

// partitions lists mounts with getfsstat. The mount table can grow between
// the sizing call and the fill call, so the buffer gets one spare slot and
// only the returned count is read.
func (darwinPlatform) partitions(physicalOnly bool) ([]Partition, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, errors.OSCall("getfsstat", err)
	}

	buf := make([]unix.Statfs_t, n+1)
	n, err = unix.Getfsstat(buf, unix.MNT_NOWAIT)
	if err != nil {
		return nil, errors.OSCall("getfsstat", err)
	}

	out := make([]Partition, 0, n)
	for i := range buf[:n] {
		st := &buf[i]
		fsType := unix.ByteSliceToString(st.Fstypename[:])
		if physicalOnly && !IsPhysicalFilesystem(fsType) {
			continue
		}
		bsize := uint64(st.Bsize)
		out = append(out, newPartition(
			unix.ByteSliceToString(st.Mntfromname[:]),
			unix.ByteSliceToString(st.Mntonname[:]),
			fsType,
			st.Blocks*bsize,
			st.Bavail*bsize,
		))
	}
	return out, nil
}

func (darwinPlatform) ioCounters(physicalOnly bool) ([]IOCounters, error) {
	reg, err := iokit.Open()
	if err != nil {
		return nil, err
	}
	return walkIOCounters(reg, physicalOnly)
}
