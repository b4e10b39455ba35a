package analysis

import (
	intbits "github.com/geeknoid/frozen-collections/internal/bits"
)

// EvaluateSlots simulates distributing the given hash codes over a table of
// tableSize slots (a power of two) and reports the total number of colliding
// entries and the length of the longest chain.
func EvaluateSlots(hashes []uint64, tableSize uint32) (collisions, maxChain int) {
	mask := uint64(tableSize) - 1
	counts := make([]int, tableSize)
	for _, h := range hashes {
		s := h & mask
		counts[s]++
		if counts[s] > maxChain {
			maxChain = counts[s]
		}
		if counts[s] > 1 {
			collisions++
		}
	}
	return collisions, maxChain
}

// MaxChainAllowed returns the longest collision chain tolerated for a
// population of n keys: 4 for small populations, growing by one per
// doubling beyond 64 so that large inputs are not rejected outright.
func MaxChainAllowed(n int) int {
	c := 4
	if n > 64 {
		c += intbits.CeilLog2(uint64(n / 64))
	}
	return c
}
