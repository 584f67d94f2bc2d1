package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/serializer"
)

// isolate keeps config files, .env files and HOSTMETRICS_ variables of the
// developer machine out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, key := range []string{
		"HOSTMETRICS_PROC_ROOT", "HOSTMETRICS_SYS_ROOT", "HOSTMETRICS_FORMAT",
		"HOSTMETRICS_INTERVAL", "HOSTMETRICS_PHYSICAL_ONLY", "HOSTMETRICS_LOG_LEVEL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

// run executes the root command with args and returns what it wrote.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd(&app{out: &buf})
	cmd.Writer = io.Discard
	cmd.ErrWriter = io.Discard
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return buf.String(), err
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		fallback   string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "flag yaml", args: []string{"--format", "yaml"}, fallback: "json", wantFormat: serializer.FormatYAML},
		{name: "flag json", args: []string{"--format", "json"}, fallback: "yaml", wantFormat: serializer.FormatJSON},
		{name: "flag table", args: []string{"-t", "table"}, fallback: "yaml", wantFormat: serializer.FormatTable},
		{name: "fallback used", fallback: "table", wantFormat: serializer.FormatTable},
		{name: "invalid flag", args: []string{"--format", "xml"}, fallback: "yaml", wantErr: true},
		{name: "invalid fallback", fallback: "csv", wantErr: true},
		{name: "empty format", args: []string{"--format", ""}, fallback: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{formatFlag()},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c, tt.fallback)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), append([]string{"test"}, tt.args...)); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestParseTypes(t *testing.T) {
	types, err := parseTypes([]string{"cpu", "Memory", "NETWORK"})
	require.NoError(t, err)
	require.Equal(t, []measurement.Type{measurement.TypeCPU, measurement.TypeMemory, measurement.TypeNetwork}, types)

	types, err = parseTypes(nil)
	require.NoError(t, err)
	require.Empty(t, types)

	_, err = parseTypes([]string{"gpu"})
	require.Error(t, err)
}
