// Package analysis classifies key populations so a construction site can
// pick the cheapest lookup layout that is still correct for them. All
// functions are pure: same input, same answer, no retained state.
package analysis

import "math"

// ScalarResult describes how to treat integer keys for the best performance.
type ScalarResult int

const (
	// GeneralScalar means no special optimization is possible.
	GeneralScalar ScalarResult = iota

	// DenseRange means the keys exactly cover a continuous range.
	DenseRange

	// SparseRange means the keys sit in a range small enough that a
	// position table pays off.
	SparseRange
)

// ScalarAnalysis is the result of classifying scalar key positions.
type ScalarAnalysis struct {
	Result ScalarResult
	Min    int64
	Max    int64
	Span   uint64 // Max - Min + 1
}

// AnalyzeScalars looks for well-known patterns to optimize for with
// integer keys. positions must be deduplicated.
func AnalyzeScalars(positions []int64) ScalarAnalysis {
	// A range up to this many times larger than the key count still gets
	// a position table.
	const maxSparseMultiplier = 4

	// Ranges at or below this size always get a position table; the table
	// is too small for its occupancy to matter.
	const alwaysSparseThreshold = 64

	if len(positions) == 0 {
		return ScalarAnalysis{Result: GeneralScalar}
	}

	minPos := positions[0]
	maxPos := positions[0]
	for _, p := range positions[1:] {
		if p < minPos {
			minPos = p
		}
		if p > maxPos {
			maxPos = p
		}
	}

	// Two's-complement subtraction gives the exact non-negative distance
	// even when the positions straddle zero.
	diff := uint64(maxPos) - uint64(minPos)
	if diff == math.MaxUint64 {
		return ScalarAnalysis{Result: GeneralScalar, Min: minPos, Max: maxPos}
	}
	span := diff + 1

	a := ScalarAnalysis{Min: minPos, Max: maxPos, Span: span}
	n := uint64(len(positions))
	switch {
	case span == n:
		a.Result = DenseRange
	case span <= alwaysSparseThreshold || span < n*maxSparseMultiplier:
		a.Result = SparseRange
	default:
		a.Result = GeneralScalar
	}
	return a
}
