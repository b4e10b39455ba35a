package frozen

import "cmp"

// binarySearchMap performs standard binary search on an ascending entry
// array.
type binarySearchMap[K cmp.Ordered, V any] struct {
	entryStore[K, V]
}

// newBinarySearchMap requires entries sorted ascending by key.
func newBinarySearchMap[K cmp.Ordered, V any](entries []Entry[K, V]) *binarySearchMap[K, V] {
	return &binarySearchMap[K, V]{entryStore[K, V]{entries: entries}}
}

func (m *binarySearchMap[K, V]) find(key K) *Entry[K, V] {
	lo, hi := 0, len(m.entries)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if m.entries[mid].Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m.entries) && m.entries[lo].Key == key {
		return &m.entries[lo]
	}
	return nil
}

func (m *binarySearchMap[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

func (m *binarySearchMap[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (m *binarySearchMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if e := m.find(key); e != nil {
		return e.Key, e.Value, true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *binarySearchMap[K, V]) GetMut(key K) *V {
	if e := m.find(key); e != nil {
		return &e.Value
	}
	return nil
}

func (m *binarySearchMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}

// eytzingerMap stores entries in the level-order layout of a complete
// binary search tree: the root at index 0, the children of node i at
// 2i+1 and 2i+2. The descent touches a prefix of the array that stays
// dense in cache, and each step is a compare and an index update with no
// hard-to-predict branches on the search path.
type eytzingerMap[K cmp.Ordered, V any] struct {
	entryStore[K, V]
}

// newEytzingerMap requires entries sorted ascending by key; it permutes
// them into level order.
func newEytzingerMap[K cmp.Ordered, V any](entries []Entry[K, V]) *eytzingerMap[K, V] {
	permuted := make([]Entry[K, V], len(entries))
	next := 0
	var fill func(i int)
	fill = func(i int) {
		if i >= len(permuted) {
			return
		}
		fill(2*i + 1)
		permuted[i] = entries[next]
		next++
		fill(2*i + 2)
	}
	fill(0)
	return &eytzingerMap[K, V]{entryStore[K, V]{entries: permuted}}
}

func (m *eytzingerMap[K, V]) find(key K) *Entry[K, V] {
	i := 0
	for i < len(m.entries) {
		c := cmp.Compare(key, m.entries[i].Key)
		if c == 0 {
			return &m.entries[i]
		}
		// c is -1 or +1: left child for less, right child for greater.
		i = 2*i + 1 + (c+1)/2
	}
	return nil
}

func (m *eytzingerMap[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

func (m *eytzingerMap[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (m *eytzingerMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if e := m.find(key); e != nil {
		return e.Key, e.Value, true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *eytzingerMap[K, V]) GetMut(key K) *V {
	if e := m.find(key); e != nil {
		return &e.Value
	}
	return nil
}

func (m *eytzingerMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}
