package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/iokit"
	"github.com/NVIDIA/hostmetrics/pkg/iokit/iokittest"
)

func expert(props map[string]any) *iokittest.Node {
	return &iokittest.Node{Classes: []string{iokit.ClassPlatformExpert}, Props: props}
}

func TestPlatformUUID(t *testing.T) {
	reg := &iokittest.Registry{Services: map[string][]*iokittest.Node{
		iokit.ClassPlatformExpert: {expert(map[string]any{
			iokit.KeyPlatformUUID: "A1B2C3D4-E5F6-0718-293A-4B5C6D7E8F90",
		})},
	}}

	got, err := platformUUID(reg)
	require.NoError(t, err)
	assert.Equal(t, "A1B2C3D4-E5F6-0718-293A-4B5C6D7E8F90", got)
	assert.True(t, reg.Balanced())
}

func TestPlatformUUIDFailures(t *testing.T) {
	tests := []struct {
		name     string
		reg      *iokittest.Registry
		wantCode errors.ErrorCode
	}{
		{
			name:     "iterator fails",
			reg:      &iokittest.Registry{FailIterator: true},
			wantCode: errors.ErrCodeOSCall,
		},
		{
			name:     "no device",
			reg:      &iokittest.Registry{Services: map[string][]*iokittest.Node{}},
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name: "properties fail",
			reg: &iokittest.Registry{Services: map[string][]*iokittest.Node{
				iokit.ClassPlatformExpert: {{Classes: []string{iokit.ClassPlatformExpert}, FailProps: true}},
			}},
			wantCode: errors.ErrCodeOSCall,
		},
		{
			name: "key missing",
			reg: &iokittest.Registry{Services: map[string][]*iokittest.Node{
				iokit.ClassPlatformExpert: {expert(map[string]any{})},
			}},
			wantCode: errors.ErrCodeMalformed,
		},
		{
			name: "wrong type",
			reg: &iokittest.Registry{Services: map[string][]*iokittest.Node{
				iokit.ClassPlatformExpert: {expert(map[string]any{iokit.KeyPlatformUUID: int64(7)})},
			}},
			wantCode: errors.ErrCodeMalformed,
		},
		{
			name: "not a uuid",
			reg: &iokittest.Registry{Services: map[string][]*iokittest.Node{
				iokit.ClassPlatformExpert: {expert(map[string]any{iokit.KeyPlatformUUID: "Mac-1234"})},
			}},
			wantCode: errors.ErrCodeMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := platformUUID(tt.reg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
			assert.Equal(t, tt.reg.Acquired(), tt.reg.Released())
			assert.Zero(t, tt.reg.DoubleReleases())
		})
	}
}
