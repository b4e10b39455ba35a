package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPow2(t *testing.T) {
	tests := []struct {
		in, want uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
		{1 << 40, 1 << 40},
		{(1 << 40) + 1, 1 << 41},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NextPow2(tc.in), "NextPow2(%d)", tc.in)
	}
}

func TestIsPow2(t *testing.T) {
	assert.False(t, IsPow2(0))
	assert.True(t, IsPow2(1))
	assert.True(t, IsPow2(2))
	assert.False(t, IsPow2(3))
	assert.True(t, IsPow2(1<<31))
	assert.False(t, IsPow2(6))
}

func TestCeilLog2(t *testing.T) {
	tests := []struct {
		in   uint64
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{1024, 10},
		{1025, 11},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CeilLog2(tc.in), "CeilLog2(%d)", tc.in)
	}
}
