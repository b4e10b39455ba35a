package frozen

import "iter"

// Entry is one key-value pair of a map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is the read contract shared by every map variant. The key population
// is fixed when the map is built; values may still be changed through
// GetMut, GetDisjointMut, and ValuesMut, which require exclusive access.
//
// Iteration visits entries in their storage order. The order is stable for
// a given instance but otherwise unspecified and differs between variants.
type Map[K comparable, V any] interface {
	// Len returns the number of entries.
	Len() int

	// IsEmpty reports whether the map has no entries.
	IsEmpty() bool

	// ContainsKey reports whether key is present.
	ContainsKey(key K) bool

	// Get returns the value stored for key.
	Get(key K) (V, bool)

	// GetKeyValue returns the stored key and value for key. The stored
	// key is returned rather than the argument, which matters to callers
	// treating equal keys as distinguishable (interned strings and such).
	GetKeyValue(key K) (K, V, bool)

	// GetMut returns a pointer to the value stored for key, or nil if
	// absent. The pointer stays valid for the life of the map; writing
	// through it never changes the key's slot.
	GetMut(key K) *V

	// GetDisjointMut returns pointers to the values of all given keys.
	// It returns (nil, false) if any key is absent or any two keys are
	// equal; no pointers escape in that case.
	GetDisjointMut(keys ...K) ([]*V, bool)

	// All iterates over entries in storage order.
	All() iter.Seq2[K, V]

	// Keys iterates over keys in storage order.
	Keys() iter.Seq[K]

	// Values iterates over values in storage order.
	Values() iter.Seq[V]

	// ValuesMut iterates over pointers to values in storage order,
	// allowing in-place updates. Requires exclusive access.
	ValuesMut() iter.Seq[*V]
}

// MapsEqual reports whether two maps hold the same key-value pairs,
// regardless of which variants back them.
func MapsEqual[K comparable, V comparable](a, b Map[K, V]) bool {
	return MapsEqualFunc(a, b, func(x, y V) bool { return x == y })
}

// MapsEqualFunc is MapsEqual with a caller-supplied value equivalence.
func MapsEqualFunc[K comparable, V any](a, b Map[K, V], eq func(V, V) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		w, ok := b.Get(k)
		if !ok || !eq(v, w) {
			return false
		}
	}
	return true
}

// entryStore holds the contiguous entry array and provides the length and
// iteration behavior every entry-backed variant shares.
type entryStore[K comparable, V any] struct {
	entries []Entry[K, V]
}

func (s *entryStore[K, V]) Len() int {
	return len(s.entries)
}

func (s *entryStore[K, V]) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *entryStore[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range s.entries {
			if !yield(s.entries[i].Key, s.entries[i].Value) {
				return
			}
		}
	}
}

func (s *entryStore[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range s.entries {
			if !yield(s.entries[i].Key) {
				return
			}
		}
	}
}

func (s *entryStore[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range s.entries {
			if !yield(s.entries[i].Value) {
				return
			}
		}
	}
}

func (s *entryStore[K, V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for i := range s.entries {
			if !yield(&s.entries[i].Value) {
				return
			}
		}
	}
}

// disjointMut implements GetDisjointMut on top of a variant's GetMut.
func disjointMut[K comparable, V any](getMut func(K) *V, keys []K) ([]*V, bool) {
	seen := make(map[K]struct{}, len(keys))
	out := make([]*V, len(keys))
	for i, k := range keys {
		if _, dup := seen[k]; dup {
			return nil, false
		}
		seen[k] = struct{}{}
		p := getMut(k)
		if p == nil {
			return nil, false
		}
		out[i] = p
	}
	return out, true
}
