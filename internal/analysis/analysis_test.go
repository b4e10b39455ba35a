package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeScalarsEmpty(t *testing.T) {
	a := AnalyzeScalars(nil)
	assert.Equal(t, GeneralScalar, a.Result)
}

func TestAnalyzeScalarsDense(t *testing.T) {
	a := AnalyzeScalars([]int64{1, 2, 3, 4, 5})
	require.Equal(t, DenseRange, a.Result)
	assert.Equal(t, int64(1), a.Min)
	assert.Equal(t, int64(5), a.Max)
	assert.Equal(t, uint64(5), a.Span)
}

func TestAnalyzeScalarsSingleKey(t *testing.T) {
	a := AnalyzeScalars([]int64{-7})
	require.Equal(t, DenseRange, a.Result)
	assert.Equal(t, uint64(1), a.Span)
}

func TestAnalyzeScalarsSparse(t *testing.T) {
	a := AnalyzeScalars([]int64{1, 3, 5, 7, 9})
	assert.Equal(t, SparseRange, a.Result)
}

func TestAnalyzeScalarsGeneral(t *testing.T) {
	a := AnalyzeScalars([]int64{1, 2, 4, 8, 1000})
	assert.Equal(t, GeneralScalar, a.Result)
}

func TestAnalyzeScalarsStraddlingZero(t *testing.T) {
	a := AnalyzeScalars([]int64{-2, -1, 0, 1})
	require.Equal(t, DenseRange, a.Result)
	assert.Equal(t, int64(-2), a.Min)
	assert.Equal(t, uint64(4), a.Span)
}

func TestAnalyzeScalarsExtremeRange(t *testing.T) {
	// Min and max at the ends of the int64 domain; span would overflow.
	a := AnalyzeScalars([]int64{-9223372036854775808, 0, 9223372036854775807})
	assert.Equal(t, GeneralScalar, a.Result)
}

func TestEvaluateSlots(t *testing.T) {
	collisions, maxChain := EvaluateSlots([]uint64{0, 1, 2, 3}, 4)
	assert.Equal(t, 0, collisions)
	assert.Equal(t, 1, maxChain)

	// 0, 4, 8 land in slot 0 of a 4-slot table.
	collisions, maxChain = EvaluateSlots([]uint64{0, 4, 8, 1}, 4)
	assert.Equal(t, 2, collisions)
	assert.Equal(t, 3, maxChain)
}

func TestMaxChainAllowed(t *testing.T) {
	assert.Equal(t, 4, MaxChainAllowed(10))
	assert.Equal(t, 4, MaxChainAllowed(64))
	assert.Greater(t, MaxChainAllowed(1024), 4)
}

func TestAnalyzeStringsEmptyInput(t *testing.T) {
	a := AnalyzeStrings(nil, 1, 1)
	assert.Equal(t, GeneralSlice, a.Result)
}

func TestAnalyzeStringsLengths(t *testing.T) {
	a := AnalyzeStrings([]string{"a", "bb", "ccc", "dddd", "eeeee"}, 1, 1)
	assert.Equal(t, LengthBased, a.Result)
}

func TestAnalyzeStringsLeftWindow(t *testing.T) {
	a := AnalyzeStrings([]string{"apple", "berry", "cherry", "damson", "elder"}, 1, 1)
	require.Equal(t, LeftWindow, a.Result)
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 1, a.Len)
}

func TestAnalyzeStringsSkipsSharedPrefix(t *testing.T) {
	// Every key starts with "item", so the distinguishing window starts
	// after it.
	a := AnalyzeStrings([]string{"item_aa", "item_bb", "item_cc", "item_dd", "item_ee"}, 1, 1)
	require.Equal(t, LeftWindow, a.Result)
	assert.GreaterOrEqual(t, a.Offset, 5)
}

func TestAnalyzeStringsRightWindow(t *testing.T) {
	a := AnalyzeStrings([]string{"xa", "xb", "xya", "xyb"}, 1, 1)
	require.Equal(t, RightWindow, a.Result)
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 2, a.Len)
}

func TestAnalyzeStringsGeneral(t *testing.T) {
	a := AnalyzeStrings([]string{"aa", "ab", "ba", "bb", "aab"}, 1, 1)
	assert.Equal(t, GeneralSlice, a.Result)
}

func TestAnalyzeStringsEmptyKeyPresent(t *testing.T) {
	// An empty key rules out any window; lengths collide too.
	a := AnalyzeStrings([]string{"", "aa", "ab", "ba", "bb"}, 1, 1)
	assert.Equal(t, GeneralSlice, a.Result)
}

func TestFindWindowParallelMatchesSequential(t *testing.T) {
	keys := make([]string, 0, 64)
	for i := range 64 {
		keys = append(keys, fmt.Sprintf("node-%02d-%c", i, 'A'+byte(i%26)))
	}
	b := measure(keys)
	maxL := min(b.minLen, maxWindowLen)

	var seq SliceAnalysis
	found := false
	for l := 1; l <= maxL && !found; l++ {
		seq, found = searchWindowLen(keys, 9, b, l)
	}
	if !found {
		seq = SliceAnalysis{Result: GeneralSlice}
	}

	par := findWindowParallel(keys, 9, b, maxL, 4)
	assert.Equal(t, seq, par)
}
