package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtypeBuilder(t *testing.T) {
	st := NewSubtypeBuilder("sda").
		SetUint64(KeyReadBytes, 4096).
		SetFloat64(KeyLoad1, 0.5).
		SetInt(KeyLogicalCount, 8).
		SetBool(KeyEnabled, true).
		SetString(KeyFSType, "ext4").
		Set(KeyWriteBytes, Uint64(512)).
		Label(ContextDevice, "sda").
		Build()

	assert.Equal(t, "sda", st.Name)
	assert.Equal(t, "sda", st.Context[ContextDevice])

	v, err := st.GetUint64(KeyReadBytes)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), v)

	f, ok := Numeric(st.Get(KeyLoad1))
	require.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-9)

	assert.Equal(t, true, st.Get(KeyEnabled).Any())

	s, err := st.GetString(KeyFSType)
	require.NoError(t, err)
	assert.Equal(t, "ext4", s)

	assert.Len(t, st.Keys(), 6)
}

func TestMeasurementValidate(t *testing.T) {
	dup := NewMeasurement(TypeDisk).
		WithSubtypeBuilder(NewSubtypeBuilder("/").SetUint64(KeyTotal, 1)).
		WithSubtypeBuilder(NewSubtypeBuilder("/").SetUint64(KeyTotal, 2)).
		Build()
	assert.ErrorContains(t, dup.Validate(), "duplicate name")

	assert.Error(t, NewMeasurement(TypeDisk).Build().Validate())
	assert.Error(t, (&Measurement{Type: TypeDisk, Subtypes: []Subtype{{Name: "sda"}}}).Validate())
	assert.Error(t, (&Measurement{Subtypes: []Subtype{{Name: "sda"}}}).Validate())
}

func TestSubtypeBuilderWithoutLabels(t *testing.T) {
	st := NewSubtypeBuilder("aggregate").SetUint64(KeyUser, 1).Build()
	assert.Nil(t, st.Context)
}

func TestMeasurementBuilder(t *testing.T) {
	m := NewMeasurement(TypeCPU).
		WithSubtypeBuilder(NewSubtypeBuilder("aggregate").SetUint64(KeyUser, 100)).
		WithSubtype(NewSubtypeBuilder("cpu0").SetUint64(KeyUser, 50).Label(ContextCore, "0").Build()).
		Build()

	require.NoError(t, m.Validate())
	assert.Equal(t, TypeCPU, m.Type)
	assert.Equal(t, []string{"aggregate", "cpu0"}, m.SubtypeNames())
	assert.NotNil(t, m.GetSubtype("cpu0"))
	assert.Nil(t, m.GetSubtype("cpu1"))
}

func TestEmptyMeasurementFailsValidation(t *testing.T) {
	m := NewMeasurement(TypeHost).Build()
	assert.Error(t, m.Validate())
}
