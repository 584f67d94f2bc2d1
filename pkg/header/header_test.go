package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindSnapshot.IsValid())
	assert.True(t, KindSample.IsValid())
	assert.False(t, Kind("Recipe").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindSample),
		WithAPIVersion("hostmetrics.nvidia.com/v1alpha1"),
		WithMetadata(MetadataHostname, "node-1"),
	)
	assert.Equal(t, KindSample, h.Kind)
	assert.Equal(t, "hostmetrics.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "node-1", h.Metadata[MetadataHostname])
}

func TestInit(t *testing.T) {
	now := time.Date(2025, 1, 15, 11, 30, 0, 0, time.FixedZone("CET", 3600))

	var h Header
	h.Init(KindSnapshot, "v1", "v1.2.3", now)
	assert.Equal(t, map[string]string{
		MetadataTimestamp: "2025-01-15T10:30:00Z",
		MetadataVersion:   "v1.2.3",
	}, h.Metadata)

	h.Init(KindSnapshot, "v1", "", now)
	assert.NotContains(t, h.Metadata, MetadataVersion)
}
