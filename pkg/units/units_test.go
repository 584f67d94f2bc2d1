package units

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"sectors", SectorsToBytes(8), 4096},
		{"kib", KiBToBytes(600), 614400},
		{"pages", PagesToBytes(3, 16384), 49152},
		{"ticks exact", TicksToSeconds(500, 100), 5},
		{"ticks truncated", TicksToSeconds(199, 100), 1},
		{"ticks zero hz", TicksToSeconds(199, 0), 0},
		{"nanos", NanosToMillis(2_999_999), 2},
		{"bytes to mib", BytesTo(3*uint64(MiB)+1, MiB), 3},
		{"bytes to zero unit", BytesTo(10, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 * uint64(GiB), "5.0 GiB"},
		{2 * uint64(TiB), "2.0 TiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.in))
		})
	}
}

func TestByteUnitString(t *testing.T) {
	assert.Equal(t, "MiB", MiB.String())
	assert.Equal(t, "3B", ByteUnit(3).String())
}

func TestCachedConstants(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("sysconf constants only on linux and darwin")
	}

	var wg sync.WaitGroup
	results := make([]uint64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hz, err := ClockTicks()
			assert.NoError(t, err)
			results[i] = hz
		}(i)
	}
	wg.Wait()

	for _, hz := range results {
		assert.Equal(t, results[0], hz)
	}
	assert.Positive(t, results[0])

	ps, err := PageSize()
	require.NoError(t, err)
	assert.Zero(t, ps%1024, "page size %d should be a multiple of 1KiB", ps)
	assert.Equal(t, 2*ps, PagesToBytes(2, ps))
}
