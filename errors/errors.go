// Package errors defines all exported error sentinels for the
// frozen-collections library.
//
// This is the single source of truth for error values. Both the codec and
// emit packages import from here, ensuring errors.Is checks work across
// package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrDuplicateKey = errors.New("frozen: duplicate key detected")
	ErrEmptyFile    = errors.New("frozen: cannot create file with zero entries")
	ErrKeyTooLong   = errors.New("frozen: key exceeds maximum length (4GiB)")
	ErrValueTooLong = errors.New("frozen: value exceeds maximum length (4GiB)")
	ErrFileTooLarge = errors.New("frozen: region exceeds maximum encodable size (4GiB)")
)

// File errors
var (
	ErrInvalidMagic           = errors.New("frozen: invalid magic number")
	ErrInvalidVersion         = errors.New("frozen: unsupported version")
	ErrChecksumFailed         = errors.New("frozen: file checksum verification failed")
	ErrTruncatedFile          = errors.New("frozen: file is truncated")
	ErrCorruptedFile          = errors.New("frozen: file data is corrupted")
	ErrUnsupportedCompression = errors.New("frozen: unsupported compression codec")
)

// Query errors
var (
	ErrClosed   = errors.New("frozen: index is closed")
	ErrNoValues = errors.New("frozen: file stores a key set and has no value data")
	ErrNotFound = errors.New("frozen: key not found")
)
