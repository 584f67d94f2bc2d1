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

// Partition is a mounted filesystem and its capacity in bytes.
type Partition struct {
	Name       string `json:"name" yaml:"name"`
	MountPoint string `json:"mount_point" yaml:"mount_point"`
	FSType     string `json:"fs_type" yaml:"fs_type"`
	TotalSpace uint64 `json:"total_space" yaml:"total_space"`
	AvailSpace uint64 `json:"avail_space" yaml:"avail_space"`
}

// IOCounters are cumulative I/O counters of one block device. BusyTime is in
// milliseconds.
type IOCounters struct {
	DeviceName string `json:"device_name" yaml:"device_name"`
	ReadCount  uint64 `json:"read_count" yaml:"read_count"`
	ReadBytes  uint64 `json:"read_bytes" yaml:"read_bytes"`
	WriteCount uint64 `json:"write_count" yaml:"write_count"`
	WriteBytes uint64 `json:"write_bytes" yaml:"write_bytes"`
	BusyTime   uint64 `json:"busy_time" yaml:"busy_time"`
}

type platform interface {
	partitions(physicalOnly bool) ([]Partition, error)
	ioCounters(physicalOnly bool) ([]IOCounters, error)
}

// physicalFilesystems are the filesystem types backed by local block
// storage.
var physicalFilesystems = map[string]struct{}{
	"ext2":     {},
	"ext3":     {},
	"ext4":     {},
	"vfat":     {},
	"ntfs":     {},
	"zfs":      {},
	"hfs":      {},
	"reiserfs": {},
	"reiser4":  {},
	"exfat":    {},
	"f2fs":     {},
	"hfsplus":  {},
	"jfs":      {},
	"btrfs":    {},
	"minix":    {},
	"nilfs":    {},
	"xfs":      {},
	"apfs":     {},
	"fuseblk":  {},
}

// IsPhysicalFilesystem reports whether fsType is backed by local block
// storage.
func IsPhysicalFilesystem(fsType string) bool {
	_, ok := physicalFilesystems[fsType]
	return ok
}

// newPartition clamps avail to total.
func newPartition(name, mountPoint, fsType string, total, avail uint64) Partition {
	if avail > total {
		avail = total
	}
	return Partition{
		Name:       name,
		MountPoint: mountPoint,
		FSType:     fsType,
		TotalSpace: total,
		AvailSpace: avail,
	}
}
