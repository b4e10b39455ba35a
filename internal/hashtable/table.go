// Package hashtable implements the chained hash table layout shared by all
// hash-family collection variants.
//
// The layout separates the table from the entries: entries live in one
// contiguous slice grouped by slot, and the table is a slice of [begin, end)
// ranges into it, one per slot. A lookup masks the hash code down to a slot,
// reads the slot's range, and scans the chain linearly. Chains are bounded
// by the analysis that sized the table, so the scan is short.
package hashtable

import (
	"math"

	intbits "github.com/geeknoid/frozen-collections/internal/bits"
)

// Range is a half-open [Begin, End) span of entry indices forming one
// slot's collision chain. Empty slots have Begin == End.
type Range struct {
	Begin uint32
	End   uint32
}

// Table maps hash codes to chains. Size is always a power of two so the
// slot computation is a mask rather than a modulo.
type Table struct {
	mask  uint64
	Slots []Range
}

// LoadTarget is the table occupancy the default sizing aims for.
const LoadTarget = 0.75

// SizeFor returns the table size used for n entries: the next power of two
// at or above n scaled by the load target.
func SizeFor(n int) uint32 {
	if n == 0 {
		return 0
	}
	want := uint64(math.Ceil(float64(n) / LoadTarget))
	return uint32(intbits.NextPow2(want))
}

// SlotRange returns the chain for a hash code.
func (t *Table) SlotRange(hash uint64) Range {
	return t.Slots[hash&t.mask]
}

// Size returns the number of slots.
func (t *Table) Size() uint32 {
	return uint32(len(t.Slots))
}

// Group reorders entries so that all entries sharing a slot are contiguous,
// and returns the resulting table. slotOf must return the full hash code of
// an entry's key; Group masks it down to the table size. The relative order
// of entries within a chain follows their order in the input.
//
// Group allocates the output slice; the input is left untouched.
func Group[E any](entries []E, tableSize uint32, slotOf func(*E) uint64) (Table, []E) {
	mask := uint64(tableSize) - 1

	counts := make([]uint32, tableSize)
	for i := range entries {
		counts[slotOf(&entries[i])&mask]++
	}

	slots := make([]Range, tableSize)
	var begin uint32
	for s := range slots {
		slots[s] = Range{Begin: begin, End: begin}
		begin += counts[s]
	}

	grouped := make([]E, len(entries))
	for i := range entries {
		s := slotOf(&entries[i]) & mask
		grouped[slots[s].End] = entries[i]
		slots[s].End++
	}

	return Table{mask: mask, Slots: slots}, grouped
}
