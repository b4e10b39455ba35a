// Package frozen provides maps and sets whose key population is fixed at
// construction time.
//
// Because the keys never change, each collection can be built around the
// cheapest lookup algorithm that is correct for the keys it actually holds.
// Construction analyzes the keys and picks one of eleven layouts: direct
// indexing for dense integer ranges, a position table for sparse ranges,
// hash tables keyed by the integer value itself, by string length, by a
// short byte window of the key, or by a full hash, and scan or search
// layouts for small or ordered populations. Lookups on the result are
// typically faster than a general-purpose hash map; values remain mutable
// through GetMut.
//
// # Basic Usage
//
// Building and querying a map:
//
//	m := frozen.NewStringMap([]frozen.Entry[string, int]{
//	    {Key: "red", Value: 0xff0000},
//	    {Key: "green", Value: 0x00ff00},
//	    {Key: "blue", Value: 0x0000ff},
//	})
//	v, ok := m.Get("green")
//
// Sets work the same way from bare keys:
//
//	s := frozen.NewScalarSet([]int{1, 2, 3, 4, 5})
//	if s.Contains(3) { ... }
//
// # Choosing a Constructor
//
// The constructors differ only in what they are allowed to assume about the
// key type; the analysis and variant selection behind them is shared:
//
//   - NewScalarMap / NewScalarSet: integer keys
//   - NewStringMap / NewStringSet: string keys
//   - NewOrderedMap / NewOrderedSet: any ordered keys
//   - NewHashMap / NewHashSet: any comparable keys
//
// # Concurrency
//
// A built collection is safe for concurrent readers. GetMut, GetDisjointMut,
// and ValuesMut require that the caller holds exclusive access; the library
// does not synchronize.
//
// # Adversarial Input
//
// The hashing used here is fast and non-cryptographic, and the length and
// window variants hash only a fraction of each key. None of this resists
// deliberately colliding keys; do not build collections from keys chosen by
// an untrusted party.
//
// # Package Structure
//
//   - Public API: map.go, set.go (contracts), construct.go (constructors)
//   - Analysis: analyze.go, plan.go (Plan), internal/analysis
//   - Variants: map_scalar.go, map_hash.go, map_scan.go, map_search.go
//   - Hashing: internal/hasher, internal/hashtable
//   - Serialization: codec/ (file format, mmap-backed reads)
//   - Code generation: emit/ plus the cmd/frozen-gen CLI
package frozen
