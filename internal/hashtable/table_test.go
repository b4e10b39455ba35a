package hashtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeFor(t *testing.T) {
	assert.Equal(t, uint32(0), SizeFor(0))

	for _, n := range []int{1, 2, 3, 7, 64, 100, 5000} {
		size := SizeFor(n)
		require.NotZero(t, size, "n=%d", n)
		assert.Zero(t, size&(size-1), "n=%d: size %d not a power of two", n, size)
		assert.GreaterOrEqual(t, uint64(size), uint64(n), "n=%d", n)
	}
}

func TestGroupTilesEntries(t *testing.T) {
	entries := []uint64{0, 1, 2, 3, 8, 9, 16, 17, 5}
	table, grouped := Group(entries, 8, func(e *uint64) uint64 { return *e })

	require.Len(t, grouped, len(entries))
	require.Equal(t, uint32(8), table.Size())

	// Ranges tile [0, len) without overlap, in slot order.
	var next uint32
	for s, r := range table.Slots {
		assert.Equal(t, next, r.Begin, "slot %d", s)
		assert.GreaterOrEqual(t, r.End, r.Begin)
		next = r.End
	}
	assert.Equal(t, uint32(len(entries)), next)

	// Every entry is findable through its slot range.
	for _, e := range entries {
		r := table.SlotRange(e)
		found := false
		for i := r.Begin; i < r.End; i++ {
			if grouped[i] == e {
				found = true
				break
			}
		}
		assert.True(t, found, "entry %d not in its chain", e)
	}

	// 0, 8, and 16 collide in slot 0.
	r := table.SlotRange(0)
	assert.Equal(t, uint32(3), r.End-r.Begin)
}

func TestGroupPreservesChainOrder(t *testing.T) {
	type kv struct {
		k uint64
		v int
	}
	entries := []kv{{k: 4, v: 0}, {k: 12, v: 1}, {k: 20, v: 2}}
	table, grouped := Group(entries, 8, func(e *kv) uint64 { return e.k })

	r := table.SlotRange(4)
	require.Equal(t, uint32(3), r.End-r.Begin)
	assert.Equal(t, []kv{{k: 4, v: 0}, {k: 12, v: 1}, {k: 20, v: 2}}, grouped[r.Begin:r.End])
}

func TestGroupEmpty(t *testing.T) {
	table, grouped := Group([]int{}, 2, func(e *int) uint64 { return uint64(*e) })
	assert.Empty(t, grouped)
	for _, r := range table.Slots {
		assert.Equal(t, r.Begin, r.End)
	}
}
