package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "hostmetrics", "v0.1.0", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("collected", "metric", "cpu")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "collected", rec["msg"])
	assert.Equal(t, "hostmetrics", rec[attrModule])
	assert.Equal(t, "v0.1.0", rec[attrVersion])
	assert.Equal(t, "cpu", rec["metric"])
	assert.NotContains(t, rec, "source")
}

func TestDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "m", "v", slog.LevelDebug)
	logger.Debug("probe")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Contains(t, rec, "source")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	assert.Equal(t, slog.LevelError, levelFromEnv())

	logger := NewStructuredLogger("m", "v", "")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelWarn))

	logger = NewStructuredLogger("m", "v", "debug")
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestNewLogLogger(t *testing.T) {
	l := NewLogLogger(slog.LevelWarn, false)
	require.NotNil(t, l)
}
