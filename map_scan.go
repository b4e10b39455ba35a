package frozen

import "cmp"

// scanMap compares the query against every entry front to back. With a
// handful of entries this beats any table: no hashing, no indirection, and
// the whole map sits in one or two cache lines.
type scanMap[K comparable, V any] struct {
	entryStore[K, V]
}

func newScanMap[K comparable, V any](entries []Entry[K, V]) *scanMap[K, V] {
	return &scanMap[K, V]{entryStore[K, V]{entries: entries}}
}

func (m *scanMap[K, V]) find(key K) *Entry[K, V] {
	for i := range m.entries {
		if m.entries[i].Key == key {
			return &m.entries[i]
		}
	}
	return nil
}

func (m *scanMap[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

func (m *scanMap[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (m *scanMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if e := m.find(key); e != nil {
		return e.Key, e.Value, true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *scanMap[K, V]) GetMut(key K) *V {
	if e := m.find(key); e != nil {
		return &e.Value
	}
	return nil
}

func (m *scanMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}

// orderedScanMap scans an ascending entry array and gives up as soon as
// the stored key passes the query, halving the expected work for misses.
type orderedScanMap[K cmp.Ordered, V any] struct {
	entryStore[K, V]
}

// newOrderedScanMap requires entries sorted ascending by key.
func newOrderedScanMap[K cmp.Ordered, V any](entries []Entry[K, V]) *orderedScanMap[K, V] {
	return &orderedScanMap[K, V]{entryStore[K, V]{entries: entries}}
}

func (m *orderedScanMap[K, V]) find(key K) *Entry[K, V] {
	for i := range m.entries {
		switch {
		case m.entries[i].Key == key:
			return &m.entries[i]
		case m.entries[i].Key > key:
			return nil
		}
	}
	return nil
}

func (m *orderedScanMap[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

func (m *orderedScanMap[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (m *orderedScanMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if e := m.find(key); e != nil {
		return e.Key, e.Value, true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *orderedScanMap[K, V]) GetMut(key K) *V {
	if e := m.find(key); e != nil {
		return &e.Value
	}
	return nil
}

func (m *orderedScanMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}
