package frozen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[K comparable](seq func(yield func(K) bool)) []K {
	var out []K
	seq(func(k K) bool {
		out = append(out, k)
		return true
	})
	return out
}

func sortedKeys[K int | string](s Set[K]) []K {
	out := collect(s.All())
	slices.Sort(out)
	return out
}

func TestSetBasics(t *testing.T) {
	s := NewStringSet([]string{"red", "green", "blue"})

	assert.Equal(t, 3, s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains("green"))
	assert.False(t, s.Contains("mauve"))
	assert.ElementsMatch(t, []string{"red", "green", "blue"}, collect(s.All()))

	empty := NewScalarSet([]int{})
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.Contains(0))
}

func TestSetAlgebraLaws(t *testing.T) {
	a := NewScalarSet([]int{1, 2, 3, 4, 5, 6})
	b := NewScalarSet([]int{4, 5, 6, 7, 8})

	// Union is commutative.
	ab := collect(Union(a, b))
	ba := collect(Union(b, a))
	slices.Sort(ab)
	slices.Sort(ba)
	assert.Equal(t, ab, ba)

	// A set intersected with itself is itself.
	assert.Equal(t, sortedKeys[int](a), func() []int {
		out := collect(Intersection(a, a))
		slices.Sort(out)
		return out
	}())

	// A is a subset of A union B.
	union := NewScalarSet(ab)
	assert.True(t, IsSubset(a, union))
	assert.True(t, IsSubset(b, union))
	assert.True(t, IsSuperset(union, a))

	// (A \ B) is disjoint from B.
	diff := NewScalarSet(collect(Difference(a, b)))
	assert.True(t, IsDisjoint(diff, b))
	assert.ElementsMatch(t, []int{1, 2, 3}, collect(diff.All()))

	sym := collect(SymmetricDifference(a, b))
	assert.ElementsMatch(t, []int{1, 2, 3, 7, 8}, sym)
}

func TestSetPredicates(t *testing.T) {
	a := NewStringSet([]string{"x", "y"})
	b := NewStringSet([]string{"x", "y", "z"})
	c := NewStringSet([]string{"p", "q"})

	assert.True(t, IsSubset(a, b))
	assert.False(t, IsSubset(b, a))
	assert.True(t, IsSuperset(b, a))
	assert.True(t, IsDisjoint(a, c))
	assert.False(t, IsDisjoint(a, b))
	assert.True(t, IsSubset(a, a))
}

func TestSetsEqualAcrossBackends(t *testing.T) {
	keys := []int{3, 1, 4, 1, 5, 9, 2, 6}

	scalar := NewScalarSet(keys)
	hashed := NewHashSet(keys)
	ordered := NewOrderedSet(keys)

	assert.True(t, SetsEqual(scalar, hashed))
	assert.True(t, SetsEqual(hashed, ordered))
	assert.True(t, SetsEqual(scalar, ordered))
	assert.Equal(t, 7, scalar.Len(), "duplicates collapse")

	other := NewScalarSet([]int{3, 1, 4})
	assert.False(t, SetsEqual(scalar, other))
}

func TestLargeOrderedStringSet(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 43))
	keyset := make(map[string]struct{}, 256)
	for len(keyset) < 256 {
		keyset[fmt.Sprintf("k%08x", rng.Uint32())] = struct{}{}
	}
	keys := make([]string, 0, 256)
	for k := range keyset {
		keys = append(keys, k)
	}

	require.Equal(t, EytzingerSearch, AnalyzeOrderedKeys(len(keys)).Variant)

	s := NewOrderedSet(keys)
	require.Equal(t, 256, s.Len())
	for _, k := range keys {
		assert.True(t, s.Contains(k), "missing %q", k)
	}

	// The probe keys use a prefix no member has, so all must miss.
	for i := range 1000 {
		assert.False(t, s.Contains(fmt.Sprintf("zz%08d", i)))
	}
}
