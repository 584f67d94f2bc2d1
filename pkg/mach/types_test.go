package mach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadsFromTicks(t *testing.T) {
	ticks := []int32{
		10, 20, 30, 40,
		1, 2, 3, 4,
	}

	got := loadsFromTicks(ticks, 2)
	assert.Equal(t, []CPULoad{
		{User: 10, System: 20, Idle: 30, Nice: 40},
		{User: 1, System: 2, Idle: 3, Nice: 4},
	}, got)
}

func TestLoadsFromTicksTruncatedArray(t *testing.T) {
	got := loadsFromTicks([]int32{1, 2, 3, 4, 5}, 3)
	assert.Len(t, got, 1)
}

func TestLoadsFromTicksWrapsAsUnsigned(t *testing.T) {
	got := loadsFromTicks([]int32{-1, 0, 0, 0}, 1)
	assert.Equal(t, uint64(0xFFFFFFFF), got[0].User)
}

func TestKernReturnError(t *testing.T) {
	assert.Equal(t, "kern_return_t 5", KernReturn(5).Error())
}
