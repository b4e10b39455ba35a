package analysis

import (
	"github.com/geeknoid/frozen-collections/internal/hasher"
	"github.com/geeknoid/frozen-collections/internal/hashtable"
)

// SliceResult describes how to treat string keys for the best performance.
type SliceResult int

const (
	// GeneralSlice means no shortcut applies; hash whole keys.
	GeneralSlice SliceResult = iota

	// LengthBased means key lengths alone spread well enough to serve as
	// hash codes, skipping hashing entirely.
	LengthBased

	// LeftWindow means hashing the byte window [Offset, Offset+Len) of
	// each key is distinguishing enough.
	LeftWindow

	// RightWindow is LeftWindow anchored to the end of the key: the
	// window covers Len bytes ending Offset bytes before the end.
	RightWindow
)

// SliceAnalysis is the result of classifying string keys.
type SliceAnalysis struct {
	Result SliceResult
	Offset int
	Len    int
}

const (
	// maxWindowLen bounds the window search so analysis stays tractable
	// for large inputs; windows longer than this rarely beat whole-key
	// hashing anyway.
	maxWindowLen = 16

	// acceptableDuplicateRatio tolerates 1-in-20 duplicate window hashes
	// (5%) before a candidate window is rejected.
	acceptableDuplicateRatio = 20

	// parallelMinKeys is the input size at which the window search fans
	// out across goroutines.
	parallelMinKeys = 2048
)

// AnalyzeStrings looks for patterns in string keys that let lookups hash
// less than the whole key: distinguishing lengths first, then a short byte
// window anchored at either end. keys must be deduplicated. The window
// search hashes candidate windows with the given seed; the caller must use
// the same seed when building the chosen variant.
//
// parallelism > 1 spreads the per-window-length searches across that many
// goroutines once the input is large enough. The result is identical to
// the sequential search.
func AnalyzeStrings(keys []string, seed uint64, parallelism int) SliceAnalysis {
	if len(keys) == 0 {
		return SliceAnalysis{Result: GeneralSlice}
	}

	if lengthsDistinguish(keys) {
		return SliceAnalysis{Result: LengthBased}
	}

	return findWindow(keys, seed, parallelism)
}

// lengthsDistinguish reports whether using byte lengths as hash codes
// spreads the keys acceptably over the table the keys would get.
func lengthsDistinguish(keys []string) bool {
	n := len(keys)
	hashes := make([]uint64, n)
	for i, k := range keys {
		hashes[i] = uint64(len(k))
	}

	collisions, maxChain := EvaluateSlots(hashes, hashtable.SizeFor(n))
	return maxChain <= MaxChainAllowed(n) && collisions <= n/5
}

// windowBounds holds the shared geometry of the window search.
type windowBounds struct {
	minLen    int
	maxLen    int
	prefixLen int // length of the byte prefix shared by every key
	suffixLen int // length of the byte suffix shared by every key
}

func measure(keys []string) windowBounds {
	b := windowBounds{minLen: len(keys[0]), maxLen: len(keys[0])}
	b.prefixLen = len(keys[0])
	b.suffixLen = len(keys[0])

	for _, s := range keys {
		if len(s) < b.minLen {
			b.minLen = len(s)
		}
		if len(s) > b.maxLen {
			b.maxLen = len(s)
		}
		if len(s) < b.prefixLen {
			b.prefixLen = len(s)
		}
		if len(s) < b.suffixLen {
			b.suffixLen = len(s)
		}
		for i := 0; i < b.prefixLen; i++ {
			if s[i] != keys[0][i] {
				b.prefixLen = i
				break
			}
		}
		for i := 0; i < b.suffixLen; i++ {
			if s[len(s)-i-1] != keys[0][len(keys[0])-i-1] {
				b.suffixLen = i
				break
			}
		}
	}
	return b
}

// findWindow searches for the shortest window, at the leftmost usable
// offset, whose hashes are distinguishing enough. Short windows are
// preferred because they minimize the bytes hashed per lookup; left
// anchoring is preferred because it avoids the extra arithmetic of
// end-relative offsets.
func findWindow(keys []string, seed uint64, parallelism int) SliceAnalysis {
	b := measure(keys)

	maxL := min(b.minLen, maxWindowLen)
	if maxL == 0 {
		// An empty key is present; no window can cover it.
		return SliceAnalysis{Result: GeneralSlice}
	}

	if parallelism > 1 && len(keys) >= parallelMinKeys && maxL > 1 {
		return findWindowParallel(keys, seed, b, maxL, parallelism)
	}

	for l := 1; l <= maxL; l++ {
		if a, ok := searchWindowLen(keys, seed, b, l); ok {
			return a
		}
	}
	return SliceAnalysis{Result: GeneralSlice}
}

// searchWindowLen scans every candidate window of length l, left-anchored
// offsets first. Offsets inside the shared prefix (or suffix) are skipped
// since every key agrees on those bytes.
func searchWindowLen(keys []string, seed uint64, b windowBounds, l int) (SliceAnalysis, bool) {
	allowed := len(keys) / acceptableDuplicateRatio
	seen := make(map[uint64]struct{}, len(keys))

	for off := b.prefixLen; off+l <= b.minLen; off++ {
		if windowDistinguishes(keys, seed, off, l, true, seen, allowed) {
			if l == b.maxLen {
				// The window spans every key in full; a plain hash
				// of the whole key is the same thing without the
				// window bookkeeping.
				return SliceAnalysis{Result: GeneralSlice}, true
			}
			return SliceAnalysis{Result: LeftWindow, Offset: off, Len: l}, true
		}
	}

	// Keys of equal length align the same way from both ends, so the
	// right-anchored pass only adds coverage when lengths vary.
	if b.minLen != b.maxLen {
		for off := b.suffixLen; off+l <= b.minLen; off++ {
			if windowDistinguishes(keys, seed, off, l, false, seen, allowed) {
				return SliceAnalysis{Result: RightWindow, Offset: off, Len: l}, true
			}
		}
	}

	return SliceAnalysis{}, false
}

func windowDistinguishes(keys []string, seed uint64, off, l int, left bool, seen map[uint64]struct{}, allowed int) bool {
	clear(seen)
	for _, k := range keys {
		var h uint64
		if left {
			h = hasher.LeftWindow(seed, k, off, l)
		} else {
			h = hasher.RightWindow(seed, k, off, l)
		}
		if _, dup := seen[h]; dup {
			if allowed == 0 {
				return false
			}
			allowed--
			continue
		}
		seen[h] = struct{}{}
	}
	return true
}
