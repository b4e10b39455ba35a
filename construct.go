package frozen

import (
	"cmp"
	"fmt"
	"slices"

	intbits "github.com/geeknoid/frozen-collections/internal/bits"
)

// NewScalarMap builds a frozen map from integer-keyed entries. Duplicate
// keys collapse to the last value given.
func NewScalarMap[K Scalar, V any](entries []Entry[K, V]) Map[K, V] {
	es := sortDedupEntries(entries)
	keys := make([]K, len(es))
	for i := range es {
		keys[i] = es[i].Key
	}

	plan := AnalyzeScalarKeys(keys)
	switch plan.Variant {
	case DenseScalarLookup:
		return newDenseScalarMap(plan.MinKey, es)
	case SparseScalarLookup:
		return newSparseScalarMap[K, V](plan.MinKey, plan.Span, es)
	case ScalarHash:
		return newScalarHashMap(es, plan.TableSize)
	default:
		return newScanMap(es)
	}
}

// NewScalarSet builds a frozen set from integer keys.
func NewScalarSet[K Scalar](keys []K) Set[K] {
	return setAdapter[K]{m: NewScalarMap(unitEntries(keys))}
}

// NewStringMap builds a frozen map from string-keyed entries. Duplicate
// keys collapse to the last value given.
func NewStringMap[V any](entries []Entry[string, V], opts ...AnalysisOption) Map[string, V] {
	es := sortDedupEntries(entries)
	keys := make([]string, len(es))
	for i := range es {
		keys[i] = es[i].Key
	}

	plan := AnalyzeStringKeys(keys, opts...)
	return buildStringMap(plan, es)
}

// NewStringSet builds a frozen set from string keys.
func NewStringSet(keys []string, opts ...AnalysisOption) Set[string] {
	return setAdapter[string]{m: NewStringMap(unitEntries(keys), opts...)}
}

// NewOrderedMap builds a frozen map from entries whose keys are ordered
// but carry no cheaper structure to exploit. Duplicate keys collapse to
// the last value given.
func NewOrderedMap[K cmp.Ordered, V any](entries []Entry[K, V]) Map[K, V] {
	es := sortDedupEntries(entries)

	plan := AnalyzeOrderedKeys(len(es))
	switch plan.Variant {
	case OrderedScan:
		return newOrderedScanMap(es)
	case BinarySearch:
		return newBinarySearchMap(es)
	case EytzingerSearch:
		return newEytzingerMap(es)
	default:
		return newScanMap(es)
	}
}

// NewOrderedSet builds a frozen set from ordered keys.
func NewOrderedSet[K cmp.Ordered](keys []K) Set[K] {
	return setAdapter[K]{m: NewOrderedMap(unitEntries(keys))}
}

// NewHashMap builds a frozen map from entries whose keys are merely
// comparable. Duplicate keys collapse to the last value given, at the
// position where the key was first seen. The scan layout stores entries
// in that order; the hash layout regroups them by slot.
func NewHashMap[K comparable, V any](entries []Entry[K, V]) Map[K, V] {
	es := dedupAnyEntries(entries)

	plan := analyzeAnyKeys(len(es))
	if plan.Variant == ClassicHash {
		return newClassicHashMap(es, plan.TableSize)
	}
	return newScanMap(es)
}

// NewHashSet builds a frozen set from comparable keys.
func NewHashSet[K comparable](keys []K) Set[K] {
	return setAdapter[K]{m: NewHashMap(unitEntries(keys))}
}

// NewScalarMapWithPlan builds a scalar map from a previously computed
// plan, bypassing analysis. This is the replay path for generated code.
// The entries may be in any order but must be free of duplicate keys and
// must satisfy the plan's invariants; violations are programmer errors and
// panic.
func NewScalarMapWithPlan[K Scalar, V any](plan Plan, entries []Entry[K, V]) Map[K, V] {
	es := sortDedupEntries(entries)
	if len(es) != len(entries) {
		panic("frozen: duplicate keys handed to plan-based construction")
	}

	switch plan.Variant {
	case LinearScan:
		return newScanMap(es)
	case DenseScalarLookup:
		if plan.Span != uint64(len(es)) {
			panic(fmt.Sprintf("frozen: dense plan span %d does not match %d entries", plan.Span, len(es)))
		}
		for i := range es {
			if position(es[i].Key) != plan.MinKey+int64(i) {
				panic("frozen: dense plan keys do not cover the planned range")
			}
		}
		return newDenseScalarMap(plan.MinKey, es)
	case SparseScalarLookup:
		if plan.Span < uint64(len(es)) {
			panic(fmt.Sprintf("frozen: sparse plan span %d is smaller than %d entries", plan.Span, len(es)))
		}
		for i := range es {
			idx := uint64(position(es[i].Key)) - uint64(plan.MinKey)
			if idx >= plan.Span {
				panic("frozen: sparse plan key outside the planned range")
			}
		}
		return newSparseScalarMap[K, V](plan.MinKey, plan.Span, es)
	case ScalarHash:
		requireTableSize(plan.TableSize)
		return newScalarHashMap(es, plan.TableSize)
	default:
		panic(fmt.Sprintf("frozen: variant %s is not valid for scalar keys", plan.Variant))
	}
}

// NewStringMapWithPlan builds a string map from a previously computed
// plan, bypassing analysis. Same contract as NewScalarMapWithPlan.
func NewStringMapWithPlan[V any](plan Plan, entries []Entry[string, V]) Map[string, V] {
	es := sortDedupEntries(entries)
	if len(es) != len(entries) {
		panic("frozen: duplicate keys handed to plan-based construction")
	}

	switch plan.Variant {
	case LeftSubstringHash, RightSubstringHash:
		window := int(plan.SubOffset) + int(plan.SubLen)
		for i := range es {
			if len(es[i].Key) < window {
				panic("frozen: substring plan window exceeds a key's length")
			}
		}
	case LinearScan, LengthHash, ClassicHash:
	default:
		panic(fmt.Sprintf("frozen: variant %s is not valid for string keys", plan.Variant))
	}

	return buildStringMap(plan, es)
}

// buildStringMap constructs the variant a string plan names. entries must
// be deduplicated.
func buildStringMap[V any](plan Plan, es []Entry[string, V]) Map[string, V] {
	switch plan.Variant {
	case LengthHash:
		requireTableSize(plan.TableSize)
		return newLengthHashMap(es, plan.TableSize)
	case LeftSubstringHash:
		requireTableSize(plan.TableSize)
		return newLeftSubstringHashMap(es, plan.TableSize, plan.Seed, int(plan.SubOffset), int(plan.SubLen))
	case RightSubstringHash:
		requireTableSize(plan.TableSize)
		return newRightSubstringHashMap(es, plan.TableSize, plan.Seed, int(plan.SubOffset), int(plan.SubLen))
	case ClassicHash:
		requireTableSize(plan.TableSize)
		return newClassicStringHashMap(es, plan.TableSize, plan.Seed)
	default:
		return newScanMap(es)
	}
}

func requireTableSize(size uint32) {
	if !intbits.IsPow2(uint64(size)) {
		panic(fmt.Sprintf("frozen: hash table size %d is not a power of two", size))
	}
}

// sortDedupEntries clones, sorts ascending by key, and collapses duplicate
// keys keeping the last value supplied.
func sortDedupEntries[K cmp.Ordered, V any](entries []Entry[K, V]) []Entry[K, V] {
	es := slices.Clone(entries)
	slices.SortStableFunc(es, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})

	out := es[:0]
	for i := range es {
		if i+1 < len(es) && es[i+1].Key == es[i].Key {
			continue
		}
		out = append(out, es[i])
	}
	return out
}

// dedupAnyEntries collapses duplicate keys keeping the last value while
// preserving first-seen order, for keys that cannot be sorted.
func dedupAnyEntries[K comparable, V any](entries []Entry[K, V]) []Entry[K, V] {
	at := make(map[K]int, len(entries))
	out := make([]Entry[K, V], 0, len(entries))
	for _, e := range entries {
		if j, ok := at[e.Key]; ok {
			out[j].Value = e.Value
			continue
		}
		at[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}

func unitEntries[K comparable](keys []K) []Entry[K, struct{}] {
	es := make([]Entry[K, struct{}], len(keys))
	for i, k := range keys {
		es[i].Key = k
	}
	return es
}
