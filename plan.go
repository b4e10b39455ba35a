package frozen

// Variant identifies the lookup layout a collection is built around.
type Variant uint8

const (
	// LinearScan stores entries in an array and compares front to back.
	LinearScan Variant = iota

	// OrderedScan scans an ascending array and stops at the first stored
	// key greater than the query.
	OrderedScan

	// BinarySearch performs standard binary search on an ascending array.
	BinarySearch

	// EytzingerSearch searches an array permuted into the level-order
	// layout of a complete binary search tree.
	EytzingerSearch

	// DenseScalarLookup indexes a value array directly by key minus the
	// smallest key. Keys are not stored.
	DenseScalarLookup

	// SparseScalarLookup indirects through a position table covering the
	// key range, with a sentinel for absent positions.
	SparseScalarLookup

	// ScalarHash is a chained hash table whose hash is the key itself.
	ScalarHash

	// LengthHash is a chained hash table whose hash is the key's byte
	// length.
	LengthHash

	// LeftSubstringHash hashes a fixed byte window anchored to the start
	// of the key.
	LeftSubstringHash

	// RightSubstringHash hashes a fixed byte window anchored to the end
	// of the key.
	RightSubstringHash

	// ClassicHash hashes the whole key with the seeded default hasher.
	ClassicHash
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case LinearScan:
		return "linear-scan"
	case OrderedScan:
		return "ordered-scan"
	case BinarySearch:
		return "binary-search"
	case EytzingerSearch:
		return "eytzinger-search"
	case DenseScalarLookup:
		return "dense-scalar-lookup"
	case SparseScalarLookup:
		return "sparse-scalar-lookup"
	case ScalarHash:
		return "scalar-hash"
	case LengthHash:
		return "length-hash"
	case LeftSubstringHash:
		return "left-substring-hash"
	case RightSubstringHash:
		return "right-substring-hash"
	case ClassicHash:
		return "classic-hash"
	default:
		return "unknown"
	}
}

// Plan tells a constructor which variant to build and with what parameters.
// Plans come from the Analyze functions. The code generator records a plan
// and replays it later through the *WithPlan constructors; the
// serialization codec records it in its file header and serves lookups
// from the file.
type Plan struct {
	// Variant selects the layout.
	Variant Variant

	// TableSize is the hash table size for hash-family variants. Always a
	// power of two; zero when the variant has no table.
	TableSize uint32

	// Seed parameterizes the hasher for LeftSubstringHash,
	// RightSubstringHash, and ClassicHash. Zero when hashing is unseeded
	// (passthrough, length) or absent.
	Seed uint64

	// SubOffset and SubLen describe the substring window. The offset is
	// counted from the start of the key for LeftSubstringHash and from
	// the end for RightSubstringHash.
	SubOffset uint32
	SubLen    uint32

	// MinKey is the smallest key position for the scalar-lookup variants.
	MinKey int64

	// Span is MaxKey - MinKey + 1 for the scalar-lookup variants.
	Span uint64
}
