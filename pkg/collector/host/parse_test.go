package host

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/defaults"
	"github.com/NVIDIA/hostmetrics/pkg/errors"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadOSVersion(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		files    map[string]string
		want     string
		wantCode errors.ErrorCode
	}{
		{
			name:  "pretty name",
			files: map[string]string{"etc": "NAME=\"Ubuntu\"\nVERSION_ID=\"24.04\"\nPRETTY_NAME=\"Ubuntu 24.04.1 LTS\"\n"},
			want:  "Ubuntu 24.04.1 LTS",
		},
		{
			name:  "name and version",
			files: map[string]string{"etc": "NAME='Alpine Linux'\nVERSION_ID=3.20.3\n"},
			want:  "Alpine Linux 3.20.3",
		},
		{
			name:  "fallback file",
			files: map[string]string{"lib": "# comment\nPRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\n"},
			want:  "Debian GNU/Linux 12 (bookworm)",
		},
		{
			name:     "no name keys",
			files:    map[string]string{"etc": "ID=custom\n"},
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name:     "no files",
			files:    map[string]string{},
			wantCode: errors.ErrCodeIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := filepath.Join(dir, filepath.Base(t.Name()))
			etc := filepath.Join(base, "etc-os-release")
			lib := filepath.Join(base, "lib-os-release")
			if c, ok := tt.files["etc"]; ok {
				writeFile(t, etc, c)
			}
			if c, ok := tt.files["lib"]; ok {
				writeFile(t, lib, c)
			}

			got, err := readOSVersion(etc, lib)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadMachineID(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, filepath.Join(dir, "empty"), "\n")
	uninit := writeFile(t, filepath.Join(dir, "uninit"), "uninitialized\n")
	good := writeFile(t, filepath.Join(dir, "good"), "4c4c4544004e3510804bb4c04f575032\n")
	bad := writeFile(t, filepath.Join(dir, "bad"), "not-a-machine-id\n")
	hyphen := writeFile(t, filepath.Join(dir, "hyphen"), "  4C4C4544-004E-3510-804B-B4C04F575032 \n")
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name     string
		paths    []string
		want     string
		wantCode errors.ErrorCode
	}{
		{name: "primary", paths: []string{good, missing}, want: "4c4c4544004e3510804bb4c04f575032"},
		{name: "fallback after missing", paths: []string{missing, good}, want: "4c4c4544004e3510804bb4c04f575032"},
		{name: "fallback after empty", paths: []string{empty, good}, want: "4c4c4544004e3510804bb4c04f575032"},
		{name: "fallback after malformed", paths: []string{bad, good}, want: "4c4c4544004e3510804bb4c04f575032"},
		{name: "hyphenated kept as read", paths: []string{hyphen}, want: "4C4C4544-004E-3510-804B-B4C04F575032"},
		{name: "uninitialized only", paths: []string{uninit}, wantCode: errors.ErrCodeNotFound},
		{name: "not a uuid", paths: []string{bad}, wantCode: errors.ErrCodeMalformed},
		{name: "all missing", paths: []string{missing, missing}, wantCode: errors.ErrCodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readMachineID(tt.paths...)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadUIDRange(t *testing.T) {
	dir := t.TempDir()

	lo, hi, err := readUIDRange(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Equal(t, uint32(defaults.UIDMin), lo)
	assert.Equal(t, uint32(defaults.UIDMax), hi)

	path := writeFile(t, filepath.Join(dir, "login.defs"), "# range\nUID_MIN\t\t\t  500\nUID_MAX   29999\nUMASK 022\n")
	lo, hi, err = readUIDRange(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(500), lo)
	assert.Equal(t, uint32(29999), hi)

	partial := writeFile(t, filepath.Join(dir, "partial"), "UID_MIN 2000\n")
	lo, hi, err = readUIDRange(partial)
	require.NoError(t, err)
	assert.Equal(t, uint32(2000), lo)
	assert.Equal(t, uint32(defaults.UIDMax), hi)

	broken := writeFile(t, filepath.Join(dir, "broken"), "UID_MIN lots\n")
	_, _, err = readUIDRange(broken)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
}

const passwd = `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
alice:x:1000:1000:Alice,,,:/home/alice:/bin/zsh
bob:x:1001:1001::/home/bob:/bin/bash
nobody:x:65534:65534:nobody:/nonexistent:/usr/sbin/nologin
`

func TestReadPasswdUsers(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "passwd"), passwd)

	got, err := readPasswdUsers(path, defaults.UIDMin, defaults.UIDMax)
	require.NoError(t, err)
	assert.Equal(t, []User{
		{Name: "alice", UID: 1000, Home: "/home/alice", Shell: "/bin/zsh"},
		{Name: "bob", UID: 1001, Home: "/home/bob", Shell: "/bin/bash"},
	}, got)
}

func TestReadPasswdUsersMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "short entry", content: "alice:x:1000:1000\n"},
		{name: "uid not numeric", content: "alice:x:one:1000::/home/alice:/bin/sh\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "passwd"), tt.content)
			_, err := readPasswdUsers(path, 0, 100000)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed), "got %v", err)
		})
	}
}

func utmpRecord(typ int16, user string) []byte {
	rec := make([]byte, utmpRecordSize)
	binary.NativeEndian.PutUint16(rec, uint16(typ))
	copy(rec[utmpUserOffset:utmpUserOffset+utmpUserSize], user)
	return rec
}

func TestParseUtmp(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(utmpRecord(2, "reboot"))
	buf.Write(utmpRecord(utmpUserProcess, "alice"))
	buf.Write(utmpRecord(6, "LOGIN"))
	buf.Write(utmpRecord(utmpUserProcess, ""))
	buf.Write(utmpRecord(utmpUserProcess, "bob"))
	buf.Write(utmpRecord(utmpUserProcess, "alice"))
	buf.Write(utmpRecord(utmpUserProcess, "a-very-long-user-name-of-32-byte"))

	got, err := parseUtmp("utmp", &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "alice", "a-very-long-user-name-of-32-byte"}, got)
	assert.Equal(t, []string{"alice", "bob", "a-very-long-user-name-of-32-byte"}, dedupe(got))
}

func TestParseUtmpTruncated(t *testing.T) {
	rec := utmpRecord(utmpUserProcess, "alice")
	data := append(rec, rec[:100]...)

	_, err := parseUtmp("utmp", bytes.NewReader(data))
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
}

func TestParseUtmpEmpty(t *testing.T) {
	got, err := parseUtmp("utmp", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}
