package frozen

// Scalar is the constraint for keys with an integral identity: the key is
// its own position on the number line, so it can be compared, ordered, and
// hashed without looking anywhere else.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// position maps a scalar key to its signed 64-bit position. Unsigned keys
// above the int64 range wrap; the wrap is applied consistently on both the
// construction and query sides, so lookups stay correct, though span
// classification may then pick a hashed layout over a dense one.
func position[K Scalar](k K) int64 {
	return int64(k)
}

// fromPosition converts a position back into the key type. Only positions
// obtained from actual keys are ever converted back, so the conversion is
// lossless.
func fromPosition[K Scalar](p int64) K {
	return K(p)
}
