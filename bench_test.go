package frozen

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/spaolacci/murmur3"
)

// benchStringKeys generates n deterministic pseudo-random hex keys.
func benchStringKeys(n int) []string {
	keys := make([]string, n)
	var buf [8]byte
	for i := range keys {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h1, h2 := murmur3.Sum128WithSeed(buf[:], 0x9e3779b9)
		keys[i] = fmt.Sprintf("%016x%016x", h1, h2)
	}
	return keys
}

func BenchmarkStringMapGet(b *testing.B) {
	for _, n := range []int{16, 256, 4096} {
		keys := benchStringKeys(n)
		entries := make([]Entry[string, int], n)
		for i, k := range keys {
			entries[i] = Entry[string, int]{Key: k, Value: i}
		}
		m := NewStringMap(entries)

		b.Run(fmt.Sprintf("frozen/n=%d", n), func(b *testing.B) {
			for i := 0; b.Loop(); i++ {
				m.Get(keys[i%n])
			}
		})

		builtin := make(map[string]int, n)
		for i, k := range keys {
			builtin[k] = i
		}
		b.Run(fmt.Sprintf("builtin/n=%d", n), func(b *testing.B) {
			for i := 0; b.Loop(); i++ {
				_ = builtin[keys[i%n]]
			}
		})
	}
}

func BenchmarkStringMapMiss(b *testing.B) {
	const n = 1024
	keys := benchStringKeys(n)
	entries := make([]Entry[string, int], n)
	for i, k := range keys {
		entries[i] = Entry[string, int]{Key: k, Value: i}
	}
	m := NewStringMap(entries)
	misses := benchStringKeys(2 * n)[n:]

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		m.Get(misses[i%n])
	}
}

func BenchmarkDenseScalarMapGet(b *testing.B) {
	const n = 1000
	entries := make([]Entry[int, int], n)
	for i := range entries {
		entries[i] = Entry[int, int]{Key: i + 500, Value: i}
	}
	m := NewScalarMap(entries)

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		m.Get(500 + i%n)
	}
}

func BenchmarkEytzingerGet(b *testing.B) {
	const n = 4096
	keys := benchStringKeys(n)
	entries := make([]Entry[string, int], n)
	for i, k := range keys {
		entries[i] = Entry[string, int]{Key: k, Value: i}
	}
	m := NewOrderedMap(entries)

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		m.Get(keys[i%n])
	}
}
