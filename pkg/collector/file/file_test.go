package file

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGetMapOSRelease(t *testing.T) {
	path := writeFile(t, `# comment
NAME="Ubuntu"
ID=ubuntu
VERSION_ID='22.04'
PRETTY_NAME="Ubuntu 22.04.4 LTS"
EMPTY=
BROKEN
`)

	got, err := NewParser(
		WithVTrimChars(`"'`),
		WithSkipEmptyValues(true),
	).GetMap(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"NAME":        "Ubuntu",
		"ID":          "ubuntu",
		"VERSION_ID":  "22.04",
		"PRETTY_NAME": "Ubuntu 22.04.4 LTS",
	}, got)
}

func TestGetMapKeepsEmptyByDefault(t *testing.T) {
	path := writeFile(t, "A=1\nB=\nC\n")

	got, err := NewParser().GetMap(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "", "C": ""}, got)
}

func TestGetMapWhitespaceDelimited(t *testing.T) {
	path := writeFile(t, "# login.defs\nUID_MIN\t\t\t 1000\nUID_MAX   60000\nENCRYPT_METHOD SHA512\n")

	got, err := NewParser(WithKVDelimiter("")).GetMap(path)
	require.NoError(t, err)
	assert.Equal(t, "1000", got["UID_MIN"])
	assert.Equal(t, "60000", got["UID_MAX"])
	assert.Equal(t, "SHA512", got["ENCRYPT_METHOD"])
}

func TestGetRecords(t *testing.T) {
	path := writeFile(t, "root:x:0:0:root:/root:/bin/bash\nalice:x:1000:1000::/home/alice:/bin/zsh\n")

	got, err := NewParser().GetRecords(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[1][0])
	assert.Equal(t, "1000", got[1][2])
	assert.Empty(t, got[1][4])
	assert.Len(t, got[1], 7)
}

func TestGetLinesComments(t *testing.T) {
	path := writeFile(t, "# a\n\n  b  \n#c\nd\n")

	got, err := NewParser().GetLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, got)

	got, err = NewParser(WithSkipComments(false)).GetLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"# a", "b", "#c", "d"}, got)
}

func TestGetLinesErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		opts []Option
		code errors.ErrorCode
	}{
		{
			name: "empty path",
			path: func(*testing.T) string { return "" },
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			code: errors.ErrCodeIO,
		},
		{
			name: "too large",
			path: func(t *testing.T) string { return writeFile(t, strings.Repeat("x", 32)) },
			opts: []Option{WithMaxSize(16)},
			code: errors.ErrCodeMalformed,
		},
		{
			name: "invalid utf8",
			path: func(t *testing.T) string { return writeFile(t, "\xff\xfe") },
			code: errors.ErrCodeMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.opts...).GetLines(tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestMissingFileKeepsNotExist(t *testing.T) {
	_, err := NewParser().GetMap(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
}
