package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frozenerrors "github.com/geeknoid/frozen-collections/errors"
)

func testEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{
			Key:   fmt.Sprintf("key-%04d-%c", i, 'a'+byte(i%26)),
			Value: []byte(fmt.Sprintf("value-%d", i)),
		}
	}
	return entries
}

func createAndOpen(t *testing.T, entries []Entry, opts ...Option) *Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.fzc")
	require.NoError(t, Create(path, entries, opts...))
	idx, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestCreateOpenRoundTrip(t *testing.T) {
	entries := testEntries(100)
	idx := createAndOpen(t, entries)

	assert.Equal(t, 100, idx.Len())
	for _, e := range entries {
		v, err := idx.Get(e.Key)
		require.NoError(t, err, "key %q", e.Key)
		assert.Equal(t, e.Value, v)
	}

	_, err := idx.Get("no-such-key")
	assert.ErrorIs(t, err, frozenerrors.ErrNotFound)

	ok, err := idx.Contains(entries[0].Key)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = idx.Contains("nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, idx.Verify())
}

func TestSmallMapUsesScanLayout(t *testing.T) {
	entries := testEntries(2)
	idx := createAndOpen(t, entries)

	stats := idx.Stats()
	assert.Zero(t, stats.TableSize)
	for _, e := range entries {
		v, err := idx.Get(e.Key)
		require.NoError(t, err)
		assert.Equal(t, e.Value, v)
	}
}

func TestCreateSetRoundTrip(t *testing.T) {
	keys := make([]string, 50)
	for i := range keys {
		keys[i] = fmt.Sprintf("member-%03d", i)
	}

	path := filepath.Join(t.TempDir(), "set.fzc")
	require.NoError(t, CreateSet(path, keys))
	idx, err := Open(path)
	require.NoError(t, err)
	defer idx.Close()

	assert.False(t, idx.Stats().HasValues)
	for _, k := range keys {
		ok, err := idx.Contains(k)
		require.NoError(t, err)
		assert.True(t, ok, "missing %q", k)
	}
	ok, err := idx.Contains("member-999")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = idx.Get(keys[0])
	assert.ErrorIs(t, err, frozenerrors.ErrNoValues)
}

func TestCompressedRoundTrip(t *testing.T) {
	entries := testEntries(200)
	idx := createAndOpen(t, entries, WithCompression(Zstd))

	assert.Equal(t, Zstd, idx.Stats().Compression)
	for _, e := range entries {
		v, err := idx.Get(e.Key)
		require.NoError(t, err, "key %q", e.Key)
		assert.Equal(t, e.Value, v)
	}
	require.NoError(t, idx.Verify())
}

func TestOpenBytes(t *testing.T) {
	entries := testEntries(20)
	path := filepath.Join(t.TempDir(), "map.fzc")
	require.NoError(t, Create(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	idx, err := OpenBytes(data)
	require.NoError(t, err)
	defer idx.Close()

	v, err := idx.Get(entries[7].Key)
	require.NoError(t, err)
	assert.Equal(t, entries[7].Value, v)
}

func TestAllIteratesEveryEntry(t *testing.T) {
	entries := testEntries(30)
	idx := createAndOpen(t, entries)

	seen := make(map[string]string, 30)
	for k, v := range idx.All() {
		seen[k] = string(v)
	}
	require.Len(t, seen, 30)
	for _, e := range entries {
		assert.Equal(t, string(e.Value), seen[e.Key])
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.fzc")

	err := Create(path, nil)
	assert.ErrorIs(t, err, frozenerrors.ErrEmptyFile)

	err = Create(path, []Entry{{Key: "a"}, {Key: "a"}})
	assert.ErrorIs(t, err, frozenerrors.ErrDuplicateKey)
}

func TestOpenRejectsCorruptFiles(t *testing.T) {
	entries := testEntries(20)
	path := filepath.Join(t.TempDir(), "map.fzc")
	require.NoError(t, Create(path, entries))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] ^= 0xff
		_, err := OpenBytes(bad)
		assert.ErrorIs(t, err, frozenerrors.ErrInvalidMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] ^= 0xff
		_, err := OpenBytes(bad)
		assert.ErrorIs(t, err, frozenerrors.ErrInvalidVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := OpenBytes(data[:len(data)-10])
		assert.ErrorIs(t, err, frozenerrors.ErrTruncatedFile)
	})

	t.Run("tiny", func(t *testing.T) {
		_, err := OpenBytes(data[:8])
		assert.ErrorIs(t, err, frozenerrors.ErrTruncatedFile)
	})
}

func TestVerifyDetectsFlippedByte(t *testing.T) {
	entries := testEntries(20)
	path := filepath.Join(t.TempDir(), "map.fzc")
	require.NoError(t, Create(path, entries))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Flip a byte in the value bytes at the end of the entry region; the
	// file still parses but the checksum must catch it.
	data[len(data)-footerSize-1] ^= 0xff
	idx, err := OpenBytes(data)
	require.NoError(t, err)
	defer idx.Close()

	assert.ErrorIs(t, idx.Verify(), frozenerrors.ErrChecksumFailed)
}

func TestClosedIndexRejectsQueries(t *testing.T) {
	entries := testEntries(10)
	path := filepath.Join(t.TempDir(), "map.fzc")
	require.NoError(t, Create(path, entries))
	idx, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close(), "close is idempotent")

	_, err = idx.Get(entries[0].Key)
	assert.ErrorIs(t, err, frozenerrors.ErrClosed)
	_, err = idx.Contains(entries[0].Key)
	assert.ErrorIs(t, err, frozenerrors.ErrClosed)
	assert.ErrorIs(t, idx.Verify(), frozenerrors.ErrClosed)
}

func TestSeedChangesLayoutNotBehavior(t *testing.T) {
	entries := testEntries(40)

	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.fzc")
	pathB := filepath.Join(dir, "b.fzc")
	require.NoError(t, Create(pathA, entries, WithSeed(1)))
	require.NoError(t, Create(pathB, entries, WithSeed(2)))

	a, err := Open(pathA)
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(pathB)
	require.NoError(t, err)
	defer b.Close()

	for _, e := range entries {
		va, err := a.Get(e.Key)
		require.NoError(t, err)
		vb, err := b.Get(e.Key)
		require.NoError(t, err)
		assert.Equal(t, va, vb)
	}
}
