package frozen

import (
	"github.com/geeknoid/frozen-collections/internal/analysis"
	"github.com/geeknoid/frozen-collections/internal/hashtable"
)

// Size thresholds for the scan and search layouts. Up to maxLinearScan
// keys a straight scan beats any table; ordered populations tolerate a slightly
// longer scan because it exits early, and binary search stays ahead of the
// Eytzinger layout until the array outgrows a few cache lines.
const (
	maxLinearScan   = 3
	maxOrderedScan  = 8
	maxBinarySearch = 64
)

// AnalyzeScalarKeys classifies deduplicated integer keys and returns the
// plan a scalar map or set would be built from. The function is pure; the
// constructors call it themselves, and code-generation callers invoke it
// directly to inline the result.
func AnalyzeScalarKeys[K Scalar](keys []K) Plan {
	if len(keys) == 0 {
		return Plan{Variant: LinearScan}
	}

	positions := make([]int64, len(keys))
	for i, k := range keys {
		positions[i] = position(k)
	}

	// Range classification runs even for tiny inputs: indexing a dense
	// range is cheaper than any scan at any size.
	a := analysis.AnalyzeScalars(positions)
	switch a.Result {
	case analysis.DenseRange:
		return Plan{Variant: DenseScalarLookup, MinKey: a.Min, Span: a.Span}
	case analysis.SparseRange:
		return Plan{Variant: SparseScalarLookup, MinKey: a.Min, Span: a.Span}
	default:
		// Passthrough hashing costs nothing, so unlike the other key
		// families there is no population small enough for a scan to
		// win here.
		return Plan{Variant: ScalarHash, TableSize: hashtable.SizeFor(len(keys))}
	}
}

// AnalyzeStringKeys classifies deduplicated string keys and returns the
// plan a string map or set would be built from.
func AnalyzeStringKeys(keys []string, opts ...AnalysisOption) Plan {
	cfg := defaultAnalysisConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(keys) <= maxLinearScan {
		return Plan{Variant: LinearScan}
	}

	tableSize := hashtable.SizeFor(len(keys))
	a := analysis.AnalyzeStrings(keys, cfg.seed, cfg.parallelism)
	switch a.Result {
	case analysis.LengthBased:
		return Plan{Variant: LengthHash, TableSize: tableSize}
	case analysis.LeftWindow:
		return Plan{
			Variant:   LeftSubstringHash,
			TableSize: tableSize,
			Seed:      cfg.seed,
			SubOffset: uint32(a.Offset),
			SubLen:    uint32(a.Len),
		}
	case analysis.RightWindow:
		return Plan{
			Variant:   RightSubstringHash,
			TableSize: tableSize,
			Seed:      cfg.seed,
			SubOffset: uint32(a.Offset),
			SubLen:    uint32(a.Len),
		}
	default:
		return Plan{Variant: ClassicHash, TableSize: tableSize, Seed: cfg.seed}
	}
}

// AnalyzeOrderedKeys returns the plan for keys whose only exploitable
// capability is a total order: a scan layout while the population is
// small, binary search in the mid range, and the cache-friendly Eytzinger
// permutation beyond that.
func AnalyzeOrderedKeys(n int) Plan {
	switch {
	case n <= maxLinearScan:
		return Plan{Variant: LinearScan}
	case n <= maxOrderedScan:
		return Plan{Variant: OrderedScan}
	case n <= maxBinarySearch:
		return Plan{Variant: BinarySearch}
	default:
		return Plan{Variant: EytzingerSearch}
	}
}

// analyzeAnyKeys plans for keys that are only comparable: a scan while
// small, otherwise a classic hash table over the runtime's comparable
// hasher.
func analyzeAnyKeys(n int) Plan {
	if n <= maxLinearScan {
		return Plan{Variant: LinearScan}
	}
	return Plan{Variant: ClassicHash, TableSize: hashtable.SizeFor(n)}
}
