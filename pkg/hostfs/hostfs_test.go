package hostfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hmerrors "github.com/NVIDIA/hostmetrics/pkg/errors"
)

func TestFSPaths(t *testing.T) {
	f := Under("/host")

	assert.Equal(t, "/host/proc/stat", f.ProcPath("stat"))
	assert.Equal(t, "/host/sys/class/dmi/id/sys_vendor", f.SysPath("class", "dmi", "id", "sys_vendor"))
	assert.Equal(t, "/host/etc/machine-id", f.EtcPath("machine-id"))
	assert.Equal(t, "/host/run/systemd/container", f.RunPath("systemd", "container"))
	assert.Equal(t, "/host/var/lib/dbus/machine-id", f.VarPath("lib", "dbus", "machine-id"))
	assert.Equal(t, "/host/.dockerenv", f.RootPath(".dockerenv"))
}

func TestWithDefaults(t *testing.T) {
	f := FS{Proc: "/host/proc"}.WithDefaults()
	assert.Equal(t, "/host/proc", f.Proc)
	assert.Equal(t, DefaultSys, f.Sys)
	assert.Equal(t, DefaultRoot, f.Root)
	assert.Equal(t, Default(), FS{}.WithDefaults())
}

func TestBlockDevicePathEscapesSlash(t *testing.T) {
	f := Under("/x")
	assert.Equal(t, "/x/sys/block/cciss!c0d0/device", f.BlockDevicePath("cciss/c0d0"))
	assert.Equal(t, "/x/sys/block/sda/device", f.BlockDevicePath("sda"))
	assert.Equal(t, "/x/sys/devices/virtual/net/lo", f.VirtualNetPath("lo"))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), link))

	assert.True(t, Exists(target))
	assert.True(t, Exists(link))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
}

func collect(t *testing.T, in string) []string {
	t.Helper()
	var lines []string
	err := Scan("test", strings.NewReader(in), func(line []byte) (bool, error) {
		lines = append(lines, string(line))
		return true, nil
	})
	require.NoError(t, err)
	return lines
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(t, tt.in))
		})
	}
}

func TestScanLongLine(t *testing.T) {
	long := "intr " + strings.Repeat("0 ", 10000)
	lines := collect(t, long+"\nctxt 5\n")
	require.Len(t, lines, 2)
	assert.Equal(t, long, lines[0])
	assert.Equal(t, "ctxt 5", lines[1])
}

func TestScanStopsEarly(t *testing.T) {
	calls := 0
	err := Scan("test", strings.NewReader("1\n2\n3\n"), func(line []byte) (bool, error) {
		calls++
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestScanCallbackError(t *testing.T) {
	want := errors.New("stop")
	err := Scan("test", strings.NewReader("1\n"), func(line []byte) (bool, error) {
		return true, want
	})
	assert.ErrorIs(t, err, want)
}

func TestScanReadError(t *testing.T) {
	err := Scan("test", iotest.ErrReader(errors.New("boom")), func(line []byte) (bool, error) {
		t.Fatal("callback must not run")
		return true, nil
	})
	assert.True(t, hmerrors.IsCode(err, hmerrors.ErrCodeIO))
}

func TestScanLinesMissingFile(t *testing.T) {
	err := ScanLines(filepath.Join(t.TempDir(), "stat"), func(line []byte) (bool, error) {
		return true, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, hmerrors.IsCode(err, hmerrors.ErrCodeIO))
}

func TestReadTrimmed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "machine-id")
	require.NoError(t, os.WriteFile(p, []byte("  abc123\n"), 0o600))

	got, err := ReadTrimmed(p)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = ReadTrimmed(p + ".missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"12345", 12345, true},
		{"18446744073709551615", 18446744073709551615, true},
		{"18446744073709551616", 0, false},
		{"", 0, false},
		{"-1", 0, false},
		{"12a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseUint([]byte(tt.in))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix([]byte("MemTotal: 1 kB"), "MemT"))
	assert.False(t, HasPrefix([]byte("Me"), "MemT"))
	assert.False(t, HasPrefix([]byte("MemFree: 1 kB"), "MemT"))
}
