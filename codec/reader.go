package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zstd"

	frozen "github.com/geeknoid/frozen-collections"
	frozenerrors "github.com/geeknoid/frozen-collections/errors"
)

// minFileSize is a conservative lower bound for valid files:
// header + one-entry offset tables + footer.
const minFileSize = headerSize + 8 + footerSize

// Index is a read-only frozen collection served from a file.
//
// Thread safety:
//   - Get, Contains, All, Verify, Len, and Stats are safe for concurrent use
//   - Close is NOT safe to call concurrently with queries
//   - After Close returns, Get, Contains, and Verify return ErrClosed;
//     All must not be called
type Index struct {
	// Memory map (no file handle needed after mmap)
	mmap mmap.MMap
	data []byte

	header *header

	// Stored regions, as written (for Verify)
	slots      []byte
	storedData []byte

	// Entry region, decompressed if necessary
	keyOffs  []byte
	keyBytes []byte
	valOffs  []byte
	valBytes []byte

	closed atomic.Bool
}

// Open opens a frozen collection file for querying.
// It opens the file, memory-maps it, and closes the file descriptor.
func Open(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return OpenFile(f)
}

// OpenFile opens a frozen collection by memory-mapping the given file.
// The caller is responsible for closing f; per POSIX mmap(2), f may be
// closed as soon as OpenFile returns.
func OpenFile(f *os.File) (*Index, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if stat.Size() < minFileSize {
		return nil, frozenerrors.ErrTruncatedFile
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap file: %w", err)
	}

	// Lookups touch the mapping at hash-determined offsets.
	madviseRandom(mm)

	idx := &Index{mmap: mm, data: []byte(mm)}
	if err := idx.initFromData(); err != nil {
		return nil, errors.Join(err, idx.Close())
	}
	return idx, nil
}

// OpenBytes creates an Index from an in-memory byte slice. No file is
// opened or mapped; Close only marks the Index closed. The caller must not modify data
// while the Index is in use.
func OpenBytes(data []byte) (*Index, error) {
	if len(data) < minFileSize {
		return nil, frozenerrors.ErrTruncatedFile
	}
	idx := &Index{data: data}
	if err := idx.initFromData(); err != nil {
		return nil, err
	}
	return idx, nil
}

// initFromData parses the header, slices the regions, and inflates the
// entry region when compressed.
func (idx *Index) initFromData() error {
	hdr, err := decodeHeader(idx.data[:headerSize])
	if err != nil {
		return err
	}
	idx.header = hdr

	total := uint64(headerSize) + hdr.SlotsLen + hdr.DataLen + footerSize
	if total != uint64(len(idx.data)) {
		return frozenerrors.ErrTruncatedFile
	}

	idx.slots = idx.data[headerSize : headerSize+hdr.SlotsLen]
	idx.storedData = idx.data[headerSize+hdr.SlotsLen : headerSize+hdr.SlotsLen+hdr.DataLen]

	raw := idx.storedData
	if hdr.Compression == Zstd {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return fmt.Errorf("init zstd decoder: %w", err)
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(idx.storedData, make([]byte, 0, hdr.RawDataLen))
		if err != nil {
			return fmt.Errorf("%w: %w", frozenerrors.ErrCorruptedFile, err)
		}
	}
	if uint64(len(raw)) != hdr.RawDataLen {
		return frozenerrors.ErrCorruptedFile
	}

	return idx.sliceEntryRegion(raw)
}

// sliceEntryRegion splits the raw entry region into its offset tables and
// byte arrays, validating that the pieces tile the region exactly.
func (idx *Index) sliceEntryRegion(raw []byte) error {
	n := idx.header.NumEntries
	offsSize := (n + 1) * 4
	if uint64(len(raw)) < offsSize {
		return frozenerrors.ErrCorruptedFile
	}

	idx.keyOffs = raw[:offsSize]
	keyTotal := uint64(binary.LittleEndian.Uint32(idx.keyOffs[n*4:]))
	rest := raw[offsSize:]
	if uint64(len(rest)) < keyTotal {
		return frozenerrors.ErrCorruptedFile
	}
	idx.keyBytes = rest[:keyTotal]
	rest = rest[keyTotal:]

	if !idx.header.hasValues() {
		if len(rest) != 0 {
			return frozenerrors.ErrCorruptedFile
		}
		return nil
	}

	if uint64(len(rest)) < offsSize {
		return frozenerrors.ErrCorruptedFile
	}
	idx.valOffs = rest[:offsSize]
	valTotal := uint64(binary.LittleEndian.Uint32(idx.valOffs[n*4:]))
	rest = rest[offsSize:]
	if uint64(len(rest)) != valTotal {
		return frozenerrors.ErrCorruptedFile
	}
	idx.valBytes = rest
	return nil
}

// keyAt returns the i'th stored key without copying. The string aliases
// the mapping (or the inflated region) and is only valid until Close.
func (idx *Index) keyAt(i uint64) string {
	begin := binary.LittleEndian.Uint32(idx.keyOffs[i*4:])
	end := binary.LittleEndian.Uint32(idx.keyOffs[i*4+4:])
	if begin == end {
		return ""
	}
	b := idx.keyBytes[begin:end]
	return unsafe.String(&b[0], len(b))
}

// valueAt returns the i'th stored value without copying. Callers must
// treat the bytes as read-only; for mapped files they literally are.
func (idx *Index) valueAt(i uint64) []byte {
	begin := binary.LittleEndian.Uint32(idx.valOffs[i*4:])
	end := binary.LittleEndian.Uint32(idx.valOffs[i*4+4:])
	return idx.valBytes[begin:end:end]
}

// lookup returns the entry index of key.
func (idx *Index) lookup(key string) (uint64, bool) {
	hdr := idx.header

	if hdr.Variant == frozen.LinearScan {
		for i := uint64(0); i < hdr.NumEntries; i++ {
			if idx.keyAt(i) == key {
				return i, true
			}
		}
		return 0, false
	}

	if w := hdr.windowLen(); w > 0 && len(key) < w {
		// Too short to hash through the window; cannot match any
		// stored key.
		return 0, false
	}

	slot := hdr.hashKey(key) & uint64(hdr.TableSize-1)
	begin := uint64(binary.LittleEndian.Uint32(idx.slots[slot*slotEntrySize:]))
	end := uint64(binary.LittleEndian.Uint32(idx.slots[slot*slotEntrySize+4:]))
	for i := begin; i < end; i++ {
		if idx.keyAt(i) == key {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether key is present.
func (idx *Index) Contains(key string) (bool, error) {
	if idx.closed.Load() {
		return false, frozenerrors.ErrClosed
	}
	_, ok := idx.lookup(key)
	return ok, nil
}

// Get returns the value stored for key. The returned bytes alias the file
// and must be treated as read-only; they are valid until Close.
// Returns ErrNotFound if the key is absent and ErrNoValues if the file
// stores a set.
func (idx *Index) Get(key string) ([]byte, error) {
	if idx.closed.Load() {
		return nil, frozenerrors.ErrClosed
	}
	if !idx.header.hasValues() {
		return nil, frozenerrors.ErrNoValues
	}
	i, ok := idx.lookup(key)
	if !ok {
		return nil, frozenerrors.ErrNotFound
	}
	return idx.valueAt(i), nil
}

// Len returns the number of stored keys.
func (idx *Index) Len() int {
	return int(idx.header.NumEntries)
}

// All iterates over the stored entries in storage order. Values are nil
// for set files. The yielded strings and byte slices alias the file.
func (idx *Index) All() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for i := uint64(0); i < idx.header.NumEntries; i++ {
			var v []byte
			if idx.header.hasValues() {
				v = idx.valueAt(i)
			}
			if !yield(idx.keyAt(i), v) {
				return
			}
		}
	}
}

// Verify recomputes the region checksums and compares them against the
// footer. It reads every byte of the file.
func (idx *Index) Verify() error {
	if idx.closed.Load() {
		return frozenerrors.ErrClosed
	}

	ftr, err := decodeFooter(idx.data[len(idx.data)-footerSize:])
	if err != nil {
		return err
	}
	if xxhash.Sum64(idx.slots) != ftr.SlotsHash {
		return fmt.Errorf("%w: slot region", frozenerrors.ErrChecksumFailed)
	}
	if xxhash.Sum64(idx.storedData) != ftr.DataHash {
		return fmt.Errorf("%w: entry region", frozenerrors.ErrChecksumFailed)
	}
	return nil
}

// Stats describes an open Index.
type Stats struct {
	NumKeys     uint64
	Variant     frozen.Variant
	TableSize   uint32
	Compression Compression
	HasValues   bool
	FileSize    int64
}

// Stats returns statistics for the Index.
func (idx *Index) Stats() Stats {
	return Stats{
		NumKeys:     idx.header.NumEntries,
		Variant:     idx.header.Variant,
		TableSize:   idx.header.TableSize,
		Compression: idx.header.Compression,
		HasValues:   idx.header.hasValues(),
		FileSize:    int64(len(idx.data)),
	}
}

// Close unmaps the file. For OpenBytes indexes it only marks the Index
// closed. Close is idempotent.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return nil
	}
	if idx.mmap != nil {
		return idx.mmap.Unmap()
	}
	return nil
}
