package frozen

import (
	"hash/maphash"

	"github.com/geeknoid/frozen-collections/internal/hasher"
	"github.com/geeknoid/frozen-collections/internal/hashtable"
)

// comparableSeed feeds the runtime's comparable hasher for keys that offer
// nothing beyond equality. One seed per process, same reasoning as
// processSeed.
var comparableSeed = maphash.MakeSeed()

// hashMap is the chained hash table shared by the ScalarHash, LengthHash,
// substring-hash, and ClassicHash variants. The variants differ only in
// the slot function and, for the window variants, a length precheck that
// rejects keys too short to be hashed through the window.
type hashMap[K comparable, V any] struct {
	entryStore[K, V]
	table hashtable.Table
	hash  func(K) uint64

	// minQueryLen rejects query keys shorter than the substring window
	// demands; such keys cannot equal any stored key. Zero for the
	// non-window variants. Only meaningful when K is a string type, which
	// is the only way a window variant is ever constructed.
	minQueryLen int
	queryLen    func(K) int
}

// newHashMap groups entries by slot and builds the table. tableSize must
// be a power of two.
func newHashMap[K comparable, V any](entries []Entry[K, V], tableSize uint32, hash func(K) uint64) *hashMap[K, V] {
	table, grouped := hashtable.Group(entries, tableSize, func(e *Entry[K, V]) uint64 {
		return hash(e.Key)
	})
	return &hashMap[K, V]{
		entryStore: entryStore[K, V]{entries: grouped},
		table:      table,
		hash:       hash,
	}
}

func (m *hashMap[K, V]) find(key K) *Entry[K, V] {
	if m.minQueryLen > 0 && m.queryLen(key) < m.minQueryLen {
		return nil
	}
	r := m.table.SlotRange(m.hash(key))
	for i := r.Begin; i < r.End; i++ {
		if m.entries[i].Key == key {
			return &m.entries[i]
		}
	}
	return nil
}

func (m *hashMap[K, V]) ContainsKey(key K) bool {
	return m.find(key) != nil
}

func (m *hashMap[K, V]) Get(key K) (V, bool) {
	if e := m.find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

func (m *hashMap[K, V]) GetKeyValue(key K) (K, V, bool) {
	if e := m.find(key); e != nil {
		return e.Key, e.Value, true
	}
	var zk K
	var zv V
	return zk, zv, false
}

func (m *hashMap[K, V]) GetMut(key K) *V {
	if e := m.find(key); e != nil {
		return &e.Value
	}
	return nil
}

func (m *hashMap[K, V]) GetDisjointMut(keys ...K) ([]*V, bool) {
	return disjointMut(m.GetMut, keys)
}

// newScalarHashMap builds the passthrough-hash variant: the key's own
// value is its hash code.
func newScalarHashMap[K Scalar, V any](entries []Entry[K, V], tableSize uint32) *hashMap[K, V] {
	return newHashMap(entries, tableSize, func(k K) uint64 {
		return uint64(position(k))
	})
}

// newLengthHashMap builds the variant that uses byte length as the hash
// code, skipping hashing entirely.
func newLengthHashMap[V any](entries []Entry[string, V], tableSize uint32) *hashMap[string, V] {
	return newHashMap(entries, tableSize, hasher.Length)
}

// newLeftSubstringHashMap hashes the window [off, off+n) of each key.
func newLeftSubstringHashMap[V any](entries []Entry[string, V], tableSize uint32, seed uint64, off, n int) *hashMap[string, V] {
	m := newHashMap(entries, tableSize, func(s string) uint64 {
		return hasher.LeftWindow(seed, s, off, n)
	})
	m.minQueryLen = off + n
	m.queryLen = func(s string) int { return len(s) }
	return m
}

// newRightSubstringHashMap hashes a window of n bytes ending off bytes
// before the end of each key.
func newRightSubstringHashMap[V any](entries []Entry[string, V], tableSize uint32, seed uint64, off, n int) *hashMap[string, V] {
	m := newHashMap(entries, tableSize, func(s string) uint64 {
		return hasher.RightWindow(seed, s, off, n)
	})
	m.minQueryLen = off + n
	m.queryLen = func(s string) int { return len(s) }
	return m
}

// newClassicStringHashMap hashes whole string keys with the seeded default
// hasher.
func newClassicStringHashMap[V any](entries []Entry[string, V], tableSize uint32, seed uint64) *hashMap[string, V] {
	return newHashMap(entries, tableSize, func(s string) uint64 {
		return hasher.String(seed, s)
	})
}

// newClassicHashMap hashes arbitrary comparable keys through the runtime's
// comparable hasher.
func newClassicHashMap[K comparable, V any](entries []Entry[K, V], tableSize uint32) *hashMap[K, V] {
	return newHashMap(entries, tableSize, func(k K) uint64 {
		return maphash.Comparable(comparableSeed, k)
	})
}
