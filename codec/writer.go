package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	frozen "github.com/geeknoid/frozen-collections"
	frozenerrors "github.com/geeknoid/frozen-collections/errors"
	"github.com/geeknoid/frozen-collections/internal/hashtable"
)

// Entry is one key-value pair to persist.
type Entry struct {
	Key   string
	Value []byte
}

// Option is a functional option for configuring Create.
type Option func(*config)

type config struct {
	seed        uint64
	compression Compression
}

func defaultConfig() *config {
	return &config{seed: defaultSeed}
}

// WithSeed sets the hash seed recorded in the file. Files created with
// different seeds from the same keys differ in layout but behave the same.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithCompression compresses the entry region. Compressed files trade the
// zero-copy open path for size: Open inflates the region to the heap.
func WithCompression(comp Compression) Option {
	return func(c *config) {
		c.compression = comp
	}
}

// Create analyzes the keys, lays out the chosen variant, and writes it to
// path. Keys must be unique.
func Create(path string, entries []Entry, opts ...Option) error {
	return create(path, slices.Clone(entries), true, opts)
}

// CreateSet writes a key set: same layout as a map, no value data.
func CreateSet(path string, keys []string, opts ...Option) error {
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i].Key = k
	}
	return create(path, entries, false, opts)
}

func create(path string, entries []Entry, hasValues bool, opts []Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(entries) == 0 {
		return frozenerrors.ErrEmptyFile
	}

	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		if _, dup := seen[entries[i].Key]; dup {
			return fmt.Errorf("%w: %q", frozenerrors.ErrDuplicateKey, entries[i].Key)
		}
		seen[entries[i].Key] = struct{}{}
		if uint64(len(entries[i].Key)) > math.MaxUint32 {
			return frozenerrors.ErrKeyTooLong
		}
		if uint64(len(entries[i].Value)) > math.MaxUint32 {
			return frozenerrors.ErrValueTooLong
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})

	keys := make([]string, len(entries))
	for i := range entries {
		keys[i] = entries[i].Key
	}
	plan := frozen.AnalyzeStringKeys(keys, frozen.WithSeed(cfg.seed))

	hdr := &header{
		Variant:     plan.Variant,
		Seed:        plan.Seed,
		TableSize:   plan.TableSize,
		SubOffset:   plan.SubOffset,
		SubLen:      plan.SubLen,
		Compression: cfg.compression,
		NumEntries:  uint64(len(entries)),
	}
	if hasValues {
		hdr.Flags |= flagHasValues
	}

	// Group entries by slot exactly as the in-memory variant would.
	var slots []byte
	if plan.Variant != frozen.LinearScan {
		var table hashtable.Table
		table, entries = hashtable.Group(entries, plan.TableSize, func(e *Entry) uint64 {
			return hdr.hashKey(e.Key)
		})
		slots = make([]byte, int(plan.TableSize)*slotEntrySize)
		for s, r := range table.Slots {
			binary.LittleEndian.PutUint32(slots[s*slotEntrySize:], r.Begin)
			binary.LittleEndian.PutUint32(slots[s*slotEntrySize+4:], r.End)
		}
	}
	hdr.SlotsLen = uint64(len(slots))

	raw, err := encodeEntryRegion(entries, hasValues)
	if err != nil {
		return err
	}
	hdr.RawDataLen = uint64(len(raw))

	data := raw
	if cfg.compression == Zstd {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("init zstd encoder: %w", err)
		}
		data = enc.EncodeAll(raw, nil)
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close zstd encoder: %w", err)
		}
	}
	hdr.DataLen = uint64(len(data))

	ftr := &footer{
		SlotsHash: xxhash.Sum64(slots),
		DataHash:  xxhash.Sum64(data),
	}

	return writeFile(path, hdr, slots, data, ftr)
}

// encodeEntryRegion lays out the raw entry region: key offset table, key
// bytes, then the value offset table and value bytes for maps. Offset
// tables have one trailing entry holding the total byte count.
func encodeEntryRegion(entries []Entry, hasValues bool) ([]byte, error) {
	n := len(entries)

	var keyTotal, valTotal uint64
	for i := range entries {
		keyTotal += uint64(len(entries[i].Key))
		valTotal += uint64(len(entries[i].Value))
	}
	if keyTotal > math.MaxUint32 || valTotal > math.MaxUint32 {
		return nil, frozenerrors.ErrFileTooLarge
	}

	size := (n + 1) * 4
	size += int(keyTotal)
	if hasValues {
		size += (n+1)*4 + int(valTotal)
	}

	raw := make([]byte, 0, size)
	raw = appendOffsets(raw, entries, func(e *Entry) int { return len(e.Key) })
	for i := range entries {
		raw = append(raw, entries[i].Key...)
	}
	if hasValues {
		raw = appendOffsets(raw, entries, func(e *Entry) int { return len(e.Value) })
		for i := range entries {
			raw = append(raw, entries[i].Value...)
		}
	}
	return raw, nil
}

func appendOffsets(dst []byte, entries []Entry, length func(*Entry) int) []byte {
	var off uint32
	for i := range entries {
		dst = binary.LittleEndian.AppendUint32(dst, off)
		off += uint32(length(&entries[i]))
	}
	return binary.LittleEndian.AppendUint32(dst, off)
}

// writeFile writes the four sections sequentially and fsyncs. A partial
// file is removed rather than left behind.
func writeFile(path string, hdr *header, slots, data []byte, ftr *footer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, f.Close(), os.Remove(path))
		}
	}()

	buf := make([]byte, headerSize)
	hdr.encodeTo(buf)
	if _, err = f.Write(buf); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err = f.Write(slots); err != nil {
		return fmt.Errorf("write slot region: %w", err)
	}
	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write entry region: %w", err)
	}
	buf = buf[:footerSize]
	ftr.encodeTo(buf)
	if _, err = f.Write(buf); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}
	return f.Close()
}
