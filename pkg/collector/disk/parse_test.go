package disk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/hostfs"
)

const diskstats = `   8       0 sda 1000 10 2048 500 2000 20 4096 800 0 900 1300 0 0 0 0
   8       1 sda1 900 5 1024 400 1500 10 2048 600 0 700 1000 0 0 0 0
   7       0 loop0 50 0 100 5 0 0 0 0 0 6 5 0 0 0 0
 104       0 cciss/c0d0 10 0 8 1 20 0 16 2 0 3 3
`

func TestParseDiskstatsLine(t *testing.T) {
	got, err := parseDiskstatsLine("/proc/diskstats", []byte("   8       0 sda 1000 10 2048 500 2000 20 4096 800 0 900 1300"))
	require.NoError(t, err)
	assert.Equal(t, IOCounters{
		DeviceName: "sda",
		ReadCount:  1000,
		ReadBytes:  2048 * 512,
		WriteCount: 2000,
		WriteBytes: 4096 * 512,
		BusyTime:   900,
	}, got)
}

func TestParseDiskstatsLineMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "thirteen fields", line: "8 0 sda 1000 10 2048 500 2000 20 4096 800 0 900"},
		{name: "empty", line: ""},
		{name: "non numeric", line: "8 0 sda 1000 10 lots 500 2000 20 4096 800 0 900 1300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDiskstatsLine("/proc/diskstats", []byte(tt.line))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
		})
	}
}

func diskFS(t *testing.T, content string) hostfs.FS {
	t.Helper()
	fs := hostfs.Under(t.TempDir())
	require.NoError(t, os.MkdirAll(fs.Proc, 0o755))
	require.NoError(t, os.WriteFile(fs.ProcPath("diskstats"), []byte(content), 0o600))
	return fs
}

func addBlockDevice(t *testing.T, fs hostfs.FS, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(fs.BlockDevicePath(name), 0o755))
}

func deviceNames(cs []IOCounters) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.DeviceName
	}
	return names
}

func TestReadDiskstats(t *testing.T) {
	fs := diskFS(t, diskstats)

	got, err := readDiskstats(fs, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sda", "sda1", "loop0", "cciss/c0d0"}, deviceNames(got))
}

func TestReadDiskstatsPhysicalOnly(t *testing.T) {
	fs := diskFS(t, diskstats)
	addBlockDevice(t, fs, "sda")

	got, err := readDiskstats(fs, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"sda"}, deviceNames(got))
}

func TestReadDiskstatsEscapesSlash(t *testing.T) {
	fs := diskFS(t, diskstats)

	got, err := readDiskstats(fs, true)
	require.NoError(t, err)
	assert.NotContains(t, deviceNames(got), "cciss/c0d0")

	assert.Equal(t, filepath.Join(fs.Sys, "block", "cciss!c0d0", "device"), fs.BlockDevicePath("cciss/c0d0"))
	addBlockDevice(t, fs, "cciss/c0d0")

	got, err = readDiskstats(fs, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"cciss/c0d0"}, deviceNames(got))
}

func TestReadDiskstatsRejectsShortLine(t *testing.T) {
	fs := diskFS(t, "8 0 sda 1 2 3 4 5 6 7 8 9 10 11\n8 1 sda1 1 2 3\n")

	got, err := readDiskstats(fs, false)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
}

func TestReadDiskstatsMissingFile(t *testing.T) {
	_, err := readDiskstats(hostfs.Under(t.TempDir()), false)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIO))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const mounts = `sysfs /sys sysfs rw,nosuid,nodev,noexec,relatime 0 0
proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
/dev/nvme0n1p2 / ext4 rw,relatime 0 0
/dev/nvme0n1p1 /boot/efi vfat rw,relatime 0 0
/dev/sdb1 /mnt/my\040disk xfs rw 0 0
tmpfs /run tmpfs rw,nosuid,nodev 0 0
`

func TestParseMounts(t *testing.T) {
	got, err := parseMounts("/proc/mounts", []byte(mounts))
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, mountEntry{Device: "/dev/sdb1", MountPoint: "/mnt/my disk", FSType: "xfs"}, got[4])

	physical := filterMounts(got, true)
	require.Len(t, physical, 3)
	assert.Equal(t, "/", physical[0].MountPoint)
	assert.Equal(t, "/boot/efi", physical[1].MountPoint)

	assert.Len(t, filterMounts(got, false), 6)
}

const stackedMounts = `/dev/sda1 / ext4 rw 0 0
devpts /dev/pts devpts rw 0 0
/dev/sdb1 /data xfs rw 0 0
devpts /dev/pts devpts rw,nosuid 0 0
systemd-1 /proc/sys/fs/binfmt_misc autofs rw 0 0
binfmt_misc /proc/sys/fs/binfmt_misc binfmt_misc rw 0 0
overlay / overlay rw 0 0
`

func TestFilterMountsKeepsVisibleMount(t *testing.T) {
	got, err := parseMounts("/proc/mounts", []byte(stackedMounts))
	require.NoError(t, err)
	require.Len(t, got, 7)

	all := filterMounts(got, false)
	require.Len(t, all, 4)
	assert.Equal(t, mountEntry{Device: "overlay", MountPoint: "/", FSType: "overlay"}, all[0])
	assert.Equal(t, "/dev/pts", all[1].MountPoint)
	assert.Equal(t, "/data", all[2].MountPoint)
	assert.Equal(t, "binfmt_misc", all[3].FSType)

	physical := filterMounts(got, true)
	require.Len(t, physical, 1)
	assert.Equal(t, "/data", physical[0].MountPoint)
}

func TestParseMountsMalformed(t *testing.T) {
	_, err := parseMounts("/proc/mounts", []byte("/dev/sda1 /\n"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
}

func TestUnescapeMount(t *testing.T) {
	tests := map[string]string{
		"/plain":         "/plain",
		`/a\040b`:        "/a b",
		`/tab\011here`:   "/tab\there",
		`/back\134slash`: `/back\slash`,
		`/trailing\04`:   `/trailing\04`,
		`/not\089octal`:  `/not\089octal`,
	}
	for in, want := range tests {
		assert.Equal(t, want, unescapeMount(in), in)
	}
}

func TestIsPhysicalFilesystem(t *testing.T) {
	for _, fs := range []string{"ext4", "xfs", "btrfs", "apfs", "fuseblk", "vfat"} {
		assert.True(t, IsPhysicalFilesystem(fs), fs)
	}
	for _, fs := range []string{"tmpfs", "proc", "overlay", "nfs", "cgroup2", ""} {
		assert.False(t, IsPhysicalFilesystem(fs), fs)
	}
}

func TestNewPartitionClampsAvail(t *testing.T) {
	p := newPartition("/dev/sda1", "/", "ext4", 100, 150)
	assert.Equal(t, uint64(100), p.AvailSpace)
	assert.LessOrEqual(t, p.AvailSpace, p.TotalSpace)
}
