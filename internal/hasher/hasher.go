// Package hasher provides the hash functions used by the frozen collection
// variants: seeded whole-string hashing, bounded-window hashing anchored to
// either end of a key, and the degenerate length "hash".
//
// All functions are non-cryptographic. Two calls with the same seed and
// input always produce the same value, which the serialization codec and
// the code generator rely on: a seed recorded at analysis time reproduces
// the same slot assignments at query time, in another process or on another
// machine.
package hasher

import "github.com/zeebo/xxh3"

// String hashes the full contents of s with the given seed.
func String(seed uint64, s string) uint64 {
	return xxh3.HashStringSeed(s, seed)
}

// Bytes hashes the full contents of b with the given seed.
func Bytes(seed uint64, b []byte) uint64 {
	return xxh3.HashSeed(b, seed)
}

// Length returns the byte length of s as its hash code.
func Length(s string) uint64 {
	return uint64(len(s))
}

// LeftWindow hashes the window s[off : off+n].
// Precondition: len(s) >= off+n. Callers reject shorter keys up front since
// they cannot match any stored key hashed through the same window.
func LeftWindow(seed uint64, s string, off, n int) uint64 {
	return xxh3.HashStringSeed(s[off:off+n], seed)
}

// RightWindow hashes a window of n bytes ending off bytes before the end of
// s, i.e. s[len(s)-off-n : len(s)-off].
// Precondition: len(s) >= off+n.
func RightWindow(seed uint64, s string, off, n int) uint64 {
	end := len(s) - off
	return xxh3.HashStringSeed(s[end-n:end], seed)
}
