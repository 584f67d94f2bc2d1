package cli

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/header"
	"github.com/NVIDIA/hostmetrics/pkg/measurement"
	"github.com/NVIDIA/hostmetrics/pkg/serializer"
	"github.com/NVIDIA/hostmetrics/pkg/snapshotter"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd(&app{})

	var names []string
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
		assert.NotNil(t, c.Action, "command %s has no action", c.Name)
	}
	assert.Equal(t, []string{"snapshot", "get", "watch", "render"}, names)
}

func TestMetricNames(t *testing.T) {
	want := []string{
		"cpu", "cpu-stats", "cpu-times", "disk-io", "host", "load",
		"memory", "net-io", "partitions", "swap", "users", "virt",
	}
	assert.Equal(t, want, metricNames())
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "get without metric", args: []string{"get"}, want: "expected exactly one metric"},
		{name: "get unknown metric", args: []string{"get", "gpu"}, want: `unknown metric "gpu"`},
		{name: "get bad format", args: []string{"get", "--format", "xml", "load"}, want: "unknown output format"},
		{name: "watch interval too short", args: []string{"watch", "--interval", "10ms", "load"}, want: "below the minimum"},
		{name: "watch negative count", args: []string{"watch", "--count=-1", "load"}, want: "must not be negative"},
		{name: "snapshot bad type", args: []string{"snapshot", "--type", "gpu"}, want: "unknown measurement type"},
		{name: "render missing file", args: []string{"render", "nope.yaml"}, want: "failed to load snapshot"},
		{name: "render without file", args: []string{"render"}, want: "expected exactly one snapshot file"},
		{name: "missing config", args: []string{"--config", "missing.yaml", "get", "load"}, want: "failed to load configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	snap := snapshotter.NewSnapshot()
	snap.Init(header.KindSnapshot, snapshotter.FullAPIVersion, "test", time.Now())
	snap.Measurements = append(snap.Measurements,
		measurement.NewMeasurement(measurement.TypeCPU).
			WithSubtypeBuilder(measurement.NewSubtypeBuilder("aggregate").SetUint64(measurement.KeyUser, 1200)).
			WithSubtypeBuilder(measurement.NewSubtypeBuilder("cpu0").SetUint64(measurement.KeyUser, 700)).
			Build(),
		measurement.NewMeasurement(measurement.TypeMemory).
			WithSubtypeBuilder(measurement.NewSubtypeBuilder("memory").SetUint64(measurement.KeyTotal, 2048)).
			Build(),
	)

	path := filepath.Join(dir, "snapshot.yaml")
	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
	require.NoError(t, w.Serialize(context.Background(), snap))
	require.NoError(t, w.Close())
	return path
}

func TestRenderTable(t *testing.T) {
	dir := isolate(t)
	path := writeSnapshot(t, dir)

	out, err := run(t, "render", "--format", "table", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SUBTYPE")
	assert.Contains(t, out, "aggregate")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2,048")
}

func TestRenderSubtypeFilter(t *testing.T) {
	dir := isolate(t)
	path := writeSnapshot(t, dir)

	out, err := run(t, "render", "--format", "json", "--subtype", "cpu*", path)
	require.NoError(t, err)

	var snap snapshotter.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Measurements, 1)
	assert.Equal(t, []string{"cpu0"}, snap.Measurements[0].SubtypeNames())
	assert.Equal(t, header.KindSnapshot, snap.Kind)
}

func TestRenderKeyFilter(t *testing.T) {
	dir := isolate(t)
	path := writeSnapshot(t, dir)

	out, err := run(t, "render", "--format", "json", "--key", "tot*", path)
	require.NoError(t, err)

	var snap snapshotter.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Measurements, 1)
	assert.Equal(t, measurement.TypeMemory, snap.Measurements[0].Type)

	out, err = run(t, "render", "--format", "json", "--exclude-key", measurement.KeyUser, path)
	require.NoError(t, err)
	snap = snapshotter.Snapshot{}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	require.Len(t, snap.Measurements, 1)
	assert.Equal(t, measurement.TypeMemory, snap.Measurements[0].Type)
}

func TestRenderRejectsDuplicateSubtypes(t *testing.T) {
	dir := isolate(t)
	snap := snapshotter.NewSnapshot()
	snap.Init(header.KindSnapshot, snapshotter.FullAPIVersion, "test", time.Now())
	snap.Measurements = append(snap.Measurements,
		measurement.NewMeasurement(measurement.TypeDisk).
			WithSubtypeBuilder(measurement.NewSubtypeBuilder("/").SetUint64(measurement.KeyTotal, 1)).
			WithSubtypeBuilder(measurement.NewSubtypeBuilder("/").SetUint64(measurement.KeyTotal, 2)).
			Build())
	path := filepath.Join(dir, "dup.json")
	w := serializer.NewFileWriterOrStdout(serializer.FormatJSON, path)
	require.NoError(t, w.Serialize(context.Background(), snap))
	require.NoError(t, w.Close())

	_, err := run(t, "render", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestRenderToFile(t *testing.T) {
	dir := isolate(t)
	path := writeSnapshot(t, dir)
	outPath := filepath.Join(dir, "out.yaml")

	out, err := run(t, "render", "-o", outPath, path)
	require.NoError(t, err)
	assert.Empty(t, out)

	snap, err := serializer.FromFile[snapshotter.Snapshot](outPath)
	require.NoError(t, err)
	assert.NotNil(t, snap.Get(measurement.TypeMemory))
}

func TestWatchCount(t *testing.T) {
	var reads atomic.Int32
	var samples []*snapshotter.Sample

	err := watch(context.Background(), watchConfig{
		metric: "fake",
		read: func(context.Context, source) (any, error) {
			return int(reads.Add(1)), nil
		},
		interval: time.Millisecond,
		count:    3,
		emit: func(_ context.Context, s *snapshotter.Sample) error {
			samples = append(samples, s)
			return nil
		},
	})
	require.NoError(t, err)
	require.Len(t, samples, 3)
	for i, s := range samples {
		assert.Equal(t, header.KindSample, s.Kind)
		assert.Equal(t, "fake", s.Metric)
		assert.Equal(t, i+1, s.Value)
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := 0

	err := watch(ctx, watchConfig{
		metric: "fake",
		read: func(context.Context, source) (any, error) {
			return "x", nil
		},
		interval: time.Millisecond,
		emit: func(context.Context, *snapshotter.Sample) error {
			n++
			if n == 2 {
				cancel()
			}
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWatchReadError(t *testing.T) {
	err := watch(context.Background(), watchConfig{
		metric: "fake",
		read: func(context.Context, source) (any, error) {
			return nil, errors.New("boom")
		},
		interval: time.Millisecond,
		count:    5,
		emit: func(context.Context, *snapshotter.Sample) error {
			t.Fatal("emit must not be called")
			return nil
		},
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to read fake"))
}
