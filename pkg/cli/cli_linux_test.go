//go:build linux

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/collector/cpu"
	"github.com/NVIDIA/hostmetrics/pkg/header"
	"github.com/NVIDIA/hostmetrics/pkg/snapshotter"
)

const procStat = `cpu  100 10 50 800 5 0 0 0 0 0
cpu0 60 5 30 400 3 0 0 0 0 0
intr 12345 1 2 3
ctxt 67890
softirq 555 1 2
`

func procFixture(t *testing.T, dir string) {
	t.Helper()
	proc := filepath.Join(dir, "proc")
	require.NoError(t, os.MkdirAll(proc, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(proc, "stat"), []byte(procStat), 0o600))
	t.Setenv("HOSTMETRICS_PROC_ROOT", proc)
}

func TestGetCPUStats(t *testing.T) {
	dir := isolate(t)
	procFixture(t, dir)

	out, err := run(t, "get", "--format", "json", "cpu-stats")
	require.NoError(t, err)

	var stats cpu.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, cpu.Stats{Interrupts: 12345, ContextSwitches: 67890, SoftInterrupts: 555}, stats)
}

func TestGetCPUTimesFromConfigFile(t *testing.T) {
	dir := isolate(t)
	procFixture(t, dir)
	// the environment wins over the file
	cfg := filepath.Join(dir, "hm.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("proc-root: /nonexistent\nformat: json\n"), 0o600))

	out, err := run(t, "--config", cfg, "get", "cpu-times")
	require.NoError(t, err)

	var times cpu.Times
	require.NoError(t, json.Unmarshal([]byte(out), &times))
	assert.Equal(t, cpu.Aggregate, times.Core)
	assert.Equal(t, uint64(965), times.Total())
}

func TestWatchCPUStats(t *testing.T) {
	dir := isolate(t)
	procFixture(t, dir)

	out, err := run(t, "watch", "--interval", "250ms", "--count", "2", "--format", "json", "cpu-stats")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	for i := 0; i < 2; i++ {
		var s snapshotter.Sample
		require.NoError(t, dec.Decode(&s))
		assert.Equal(t, header.KindSample, s.Kind)
		assert.Equal(t, "cpu-stats", s.Metric)
	}
	assert.False(t, dec.More())
}

func TestGetMissingProc(t *testing.T) {
	dir := isolate(t)
	t.Setenv("HOSTMETRICS_PROC_ROOT", filepath.Join(dir, "missing"))

	_, err := run(t, "get", "cpu-stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read cpu-stats")
}

func TestSnapshotTextfileFailure(t *testing.T) {
	dir := isolate(t)
	t.Setenv("HOSTMETRICS_PROC_ROOT", filepath.Join(dir, "missing"))
	textfile := filepath.Join(dir, "hostmetrics.prom")

	_, err := run(t, "snapshot", "--type", "memory", "--textfile", textfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot for textfile failed")
	assert.NoFileExists(t, textfile)
}
