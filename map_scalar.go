package frozen

import "iter"

// denseScalarMap is the layout for keys that exactly cover a continuous
// integer range: a bare value array indexed by key minus the smallest key.
// Keys are not stored at all; they are reconstructed from the index when
// iterating.
type denseScalarMap[K Scalar, V any] struct {
	min    int64
	values []V
}

// newDenseScalarMap requires entries sorted ascending by key and covering
// [min, min+len) exactly.
func newDenseScalarMap[K Scalar, V any](min int64, entries []Entry[K, V]) *denseScalarMap[K, V] {
	values := make([]V, len(entries))
	for i := range entries {
		values[i] = entries[i].Value
	}
	return &denseScalarMap[K, V]{min: min, values: values}
}

// index converts a query key to a value index, or returns false when the
// key falls outside the stored range. Keys below the range wrap around to
// large unsigned differences, so one unsigned comparison rejects keys on
// either side of it.
func (m *denseScalarMap[K, V]) index(key K) (uint64, bool) {
	idx := uint64(position(key)) - uint64(m.min)
	return idx, idx < uint64(len(m.values))
}

func (m *denseScalarMap[K, V]) Len() int {
	return len(m.values)
}

func (m *denseScalarMap[K, V]) IsEmpty() bool {
	return len(m.values) == 0
}

func (m *denseScalarMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.index(key)
	return ok
}

func (m *denseScalarMap[K, V]) Get(key K) (V, bool) {
	if idx, ok := m.index(key); ok {
		return m.values[idx], true
	}
	var zero V
	return zero, false
}

func (m *denseScalarMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if idx, ok := m.index(key); ok {
		return key, m.values[idx], true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *denseScalarMap[K, V]) GetMut(key K) *V {
	if idx, ok := m.index(key); ok {
		return &m.values[idx]
	}
	return nil
}

func (m *denseScalarMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}

func (m *denseScalarMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.values {
			if !yield(fromPosition[K](m.min+int64(i)), m.values[i]) {
				return
			}
		}
	}
}

func (m *denseScalarMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := range m.values {
			if !yield(fromPosition[K](m.min + int64(i))) {
				return
			}
		}
	}
}

func (m *denseScalarMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range m.values {
			if !yield(m.values[i]) {
				return
			}
		}
	}
}

func (m *denseScalarMap[K, V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		for i := range m.values {
			if !yield(&m.values[i]) {
				return
			}
		}
	}
}

// noEntry marks an unoccupied position in a sparse lookup table.
const noEntry = ^uint32(0)

// sparseScalarMap covers a bounded integer range with a position table:
// pos[key-min] holds the entry index or a sentinel. Lookups are a bounds
// check and two array reads.
type sparseScalarMap[K Scalar, V any] struct {
	entryStore[K, V]
	min int64
	pos []uint32
}

// newSparseScalarMap requires deduplicated entries with positions inside
// [min, min+span).
func newSparseScalarMap[K Scalar, V any](min int64, span uint64, entries []Entry[K, V]) *sparseScalarMap[K, V] {
	pos := make([]uint32, span)
	for i := range pos {
		pos[i] = noEntry
	}
	for i := range entries {
		pos[uint64(position(entries[i].Key))-uint64(min)] = uint32(i)
	}
	return &sparseScalarMap[K, V]{
		entryStore: entryStore[K, V]{entries: entries},
		min:        min,
		pos:        pos,
	}
}

func (m *sparseScalarMap[K, V]) find(key K) *Entry[K, V] {
	idx := uint64(position(key)) - uint64(m.min)
	if idx >= uint64(len(m.pos)) {
		return nil
	}
	p := m.pos[idx]
	if p == noEntry {
		return nil
	}
	e := &m.entries[p]
	if e.Key != key {
		return nil
	}
	return e
}

func (m *sparseScalarMap[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

func (m *sparseScalarMap[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (m *sparseScalarMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if e := m.find(key); e != nil {
		return e.Key, e.Value, true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *sparseScalarMap[K, V]) GetMut(key K) *V {
	if e := m.find(key); e != nil {
		return &e.Value
	}
	return nil
}

func (m *sparseScalarMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}
