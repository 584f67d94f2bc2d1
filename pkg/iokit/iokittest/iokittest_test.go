package iokittest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostmetrics/pkg/errors"
	"github.com/NVIDIA/hostmetrics/pkg/iokit"
)

func TestRegistryCountsHandles(t *testing.T) {
	parent := &Node{Classes: []string{iokit.ClassBlockStorageDriver}}
	reg := &Registry{Services: map[string][]*Node{
		iokit.ClassMedia: {{Parent: parent, Props: map[string]any{iokit.KeyBSDName: "disk0"}}},
	}}

	it, err := reg.MatchingServices(iokit.ClassMedia)
	require.NoError(t, err)
	e, ok := it.Next()
	require.True(t, ok)
	p, err := e.Parent(iokit.PlaneService)
	require.NoError(t, err)
	assert.True(t, p.ConformsTo(iokit.ClassBlockStorageDriver))
	props, err := e.Properties()
	require.NoError(t, err)

	name, err := props.String(iokit.KeyBSDName)
	require.NoError(t, err)
	assert.Equal(t, "disk0", name)

	assert.Equal(t, 4, reg.Acquired())
	assert.False(t, reg.Balanced())

	props.Release()
	p.Release()
	e.Release()
	_, ok = it.Next()
	assert.False(t, ok)
	it.Release()

	assert.True(t, reg.Balanced())

	it.Release()
	assert.Equal(t, 1, reg.DoubleReleases())
	assert.False(t, reg.Balanced())
}

func TestDictLookupErrors(t *testing.T) {
	d := &dict{props: map[string]any{
		"s": "x",
		"n": int64(3),
		"b": true,
		"d": map[string]any{"k": 1},
	}}

	_, err := d.String("missing")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
	_, err = d.Int64("s")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
	_, err = d.Bool("n")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))
	_, err = d.Dict("b")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformed))

	nested, err := d.Dict("d")
	require.NoError(t, err)
	v, err := nested.Int64("k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}
