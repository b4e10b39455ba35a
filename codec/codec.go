// Package codec persists string-keyed frozen maps and sets to a single
// read-only file and serves lookups from it without rebuilding.
//
// Create analyzes the keys with the same analyzer the in-memory
// constructors use, lays the entries out exactly as the chosen variant
// would in memory, and records the plan in the file header. Open
// memory-maps the file and answers queries straight out of the mapping;
// for uncompressed files, keys and values are served zero-copy.
//
// # File Layout
//
//	[Header 64B][Slot region][Entry region][Footer 32B]
//
// The slot region holds the hash table as (begin, end) uint32 pairs, one
// per slot; it is empty for the scan layout. The entry region holds the
// key offset table, the key bytes, and, for maps, the value offset table
// and value bytes. The footer carries an xxHash64 checksum of each region
// as stored, so Verify works without decompression.
//
// # Trust Model
//
// Header fields are validated on open, and Verify checks the region
// checksums on demand, but lookups do not re-validate the file on every
// query. Do not open files from untrusted sources.
package codec

import (
	"encoding/binary"

	frozen "github.com/geeknoid/frozen-collections"
	frozenerrors "github.com/geeknoid/frozen-collections/errors"
)

const (
	// magic number for frozen collection files: "FZCL" in little-endian.
	magic = uint32(0x4C435A46)

	// version is the current format version.
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header.
	headerSize = 64

	// footerSize is the exact size of the serialized footer.
	footerSize = 32

	// slotEntrySize is the stored size of one (begin, end) slot pair.
	slotEntrySize = 8

	// defaultSeed parameterizes analysis when the caller does not supply
	// a seed. An arbitrary fixed value: files must hash the same way in
	// every process that opens them.
	defaultSeed = uint64(0x9e3779b97f4a7c15)
)

// flag bits stored in the header.
const (
	flagHasValues = 1 << 0
)

// Compression selects how the entry region is stored.
type Compression uint8

const (
	// NoCompression stores the entry region raw and serves it zero-copy
	// from the mapping.
	NoCompression Compression = iota

	// Zstd compresses the entry region; Open inflates it to the heap.
	Zstd
)

// String returns the compression codec name.
func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// header is the 64-byte file header.
//
// Layout:
//
//	Offset  Size  Field        Type
//	0       4     Magic        0x4C435A46 ("FZCL")
//	4       2     Version      0x0001
//	6       1     Flags        bit 0: has values
//	7       1     Variant      frozen.Variant
//	8       8     Seed         uint64_le
//	16      4     TableSize    uint32_le (power of two, 0 = no table)
//	20      4     SubOffset    uint32_le
//	24      4     SubLen       uint32_le
//	28      1     Compression  uint8
//	29      3     Reserved     zero
//	32      8     NumEntries   uint64_le
//	40      8     SlotsLen     uint64_le (bytes)
//	48      8     DataLen      uint64_le (bytes as stored)
//	56      8     RawDataLen   uint64_le (bytes after decompression)
type header struct {
	Flags       uint8
	Variant     frozen.Variant
	Seed        uint64
	TableSize   uint32
	SubOffset   uint32
	SubLen      uint32
	Compression Compression
	NumEntries  uint64
	SlotsLen    uint64
	DataLen     uint64
	RawDataLen  uint64
}

// encodeTo serializes the header into an existing 64-byte buffer.
func (h *header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], version)
	buf[6] = h.Flags
	buf[7] = uint8(h.Variant)
	binary.LittleEndian.PutUint64(buf[8:16], h.Seed)
	binary.LittleEndian.PutUint32(buf[16:20], h.TableSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.SubOffset)
	binary.LittleEndian.PutUint32(buf[24:28], h.SubLen)
	buf[28] = uint8(h.Compression)
	buf[29], buf[30], buf[31] = 0, 0, 0
	binary.LittleEndian.PutUint64(buf[32:40], h.NumEntries)
	binary.LittleEndian.PutUint64(buf[40:48], h.SlotsLen)
	binary.LittleEndian.PutUint64(buf[48:56], h.DataLen)
	binary.LittleEndian.PutUint64(buf[56:64], h.RawDataLen)
}

// decodeHeader parses and validates a 64-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, frozenerrors.ErrTruncatedFile
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return nil, frozenerrors.ErrInvalidMagic
	}
	if binary.LittleEndian.Uint16(buf[4:6]) != version {
		return nil, frozenerrors.ErrInvalidVersion
	}

	h := &header{
		Flags:       buf[6],
		Variant:     frozen.Variant(buf[7]),
		Seed:        binary.LittleEndian.Uint64(buf[8:16]),
		TableSize:   binary.LittleEndian.Uint32(buf[16:20]),
		SubOffset:   binary.LittleEndian.Uint32(buf[20:24]),
		SubLen:      binary.LittleEndian.Uint32(buf[24:28]),
		Compression: Compression(buf[28]),
		NumEntries:  binary.LittleEndian.Uint64(buf[32:40]),
		SlotsLen:    binary.LittleEndian.Uint64(buf[40:48]),
		DataLen:     binary.LittleEndian.Uint64(buf[48:56]),
		RawDataLen:  binary.LittleEndian.Uint64(buf[56:64]),
	}

	switch h.Variant {
	case frozen.LinearScan, frozen.LengthHash, frozen.LeftSubstringHash,
		frozen.RightSubstringHash, frozen.ClassicHash:
	default:
		return nil, frozenerrors.ErrCorruptedFile
	}
	if h.Compression > Zstd {
		return nil, frozenerrors.ErrUnsupportedCompression
	}
	if h.Variant == frozen.LinearScan {
		if h.TableSize != 0 || h.SlotsLen != 0 {
			return nil, frozenerrors.ErrCorruptedFile
		}
	} else {
		if h.TableSize == 0 || h.TableSize&(h.TableSize-1) != 0 {
			return nil, frozenerrors.ErrCorruptedFile
		}
		if h.SlotsLen != uint64(h.TableSize)*slotEntrySize {
			return nil, frozenerrors.ErrCorruptedFile
		}
	}
	if h.Compression == NoCompression && h.DataLen != h.RawDataLen {
		return nil, frozenerrors.ErrCorruptedFile
	}

	return h, nil
}

func (h *header) hasValues() bool {
	return h.Flags&flagHasValues != 0
}

// footer is the 32-byte file footer.
//
// Layout:
//
//	Offset  Size  Field      Type
//	0       8     SlotsHash  uint64_le (xxHash64 of slot region as stored)
//	8       8     DataHash   uint64_le (xxHash64 of entry region as stored)
//	16      16    Reserved   zero
type footer struct {
	SlotsHash uint64
	DataHash  uint64
}

// encodeTo serializes the footer into an existing 32-byte buffer.
func (f *footer) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.SlotsHash)
	binary.LittleEndian.PutUint64(buf[8:16], f.DataHash)
	clear(buf[16:32])
}

// decodeFooter parses a 32-byte footer.
func decodeFooter(buf []byte) (*footer, error) {
	if len(buf) < footerSize {
		return nil, frozenerrors.ErrTruncatedFile
	}
	return &footer{
		SlotsHash: binary.LittleEndian.Uint64(buf[0:8]),
		DataHash:  binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}
