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

package disk

import (
	"golang.org/x/sys/unix"
	utilio "k8s.io/utils/io"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

type linuxPlatform struct {
	fs hostfs.FS
}

func newPlatform(fs hostfs.FS) platform {
	return &linuxPlatform{fs: fs}
}

// partitions reads the mount table until two consecutive reads agree, then
// statfs's every listed mount point below the root of fs.
func (p *linuxPlatform) partitions(physicalOnly bool) ([]Partition, error) {
	path := p.fs.ProcPath("mounts")
	data, err := utilio.ConsistentRead(path, defaults.MountsReadAttempts)
	if err != nil {
		return nil, errors.IO(path, err)
	}

	mounts, err := parseMounts(path, data)
	if err != nil {
		return nil, err
	}

	mounts = filterMounts(mounts, physicalOnly)
	out := make([]Partition, 0, len(mounts))
	for _, m := range mounts {
		total, avail, err := usage(p.fs.RootPath(m.MountPoint))
		if err != nil {
			return nil, err
		}
		out = append(out, newPartition(m.Device, m.MountPoint, m.FSType, total, avail))
	}
	return out, nil
}

func usage(mountPoint string) (uint64, uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(mountPoint, &st); err != nil {
		return 0, 0, errors.WrapWithContext(errors.ErrCodeOSCall, "statfs failed", err, map[string]any{
			"call": "statfs",
			"path": mountPoint,
		})
	}
	size := uint64(st.Frsize)
	if size == 0 {
		size = uint64(st.Bsize)
	}
	return uint64(st.Blocks) * size, uint64(st.Bavail) * size, nil
}

func (p *linuxPlatform) ioCounters(physicalOnly bool) ([]IOCounters, error) {
	return readDiskstats(p.fs, physicalOnly)
}
