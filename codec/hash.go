package codec

import (
	frozen "github.com/geeknoid/frozen-collections"
	"github.com/geeknoid/frozen-collections/internal/hasher"
)

// windowLen returns the minimum key length the substring variants demand;
// zero for the other variants.
func (h *header) windowLen() int {
	switch h.Variant {
	case frozen.LeftSubstringHash, frozen.RightSubstringHash:
		return int(h.SubOffset) + int(h.SubLen)
	default:
		return 0
	}
}

// hashKey computes the slot hash the header's variant assigns to a key.
// For the substring variants the key must be at least windowLen() bytes;
// the writer's keys are guaranteed long enough by analysis, and the reader
// rejects short queries before calling this.
func (h *header) hashKey(key string) uint64 {
	switch h.Variant {
	case frozen.LengthHash:
		return hasher.Length(key)
	case frozen.LeftSubstringHash:
		return hasher.LeftWindow(h.Seed, key, int(h.SubOffset), int(h.SubLen))
	case frozen.RightSubstringHash:
		return hasher.RightWindow(h.Seed, key, int(h.SubOffset), int(h.SubLen))
	default:
		return hasher.String(h.Seed, key)
	}
}
