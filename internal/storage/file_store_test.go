package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cid/internal/providers"
	"cid/internal/structures"
)

// Local mocks: testutil depends on this package, so tests here roll their own.

type nopLogger struct{}

func (nopLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (nopLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (nopLogger) Close()                                                  {}

type identityCompressor struct{}

func (identityCompressor) Compress(val []byte) ([]byte, error) {
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (identityCompressor) Decompress(val []byte) ([]byte, error) {
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (identityCompressor) Close() {}

func newTestStore(t *testing.T) Store {
	t.Helper()
	conf := &structures.Config{Storage: structures.StorageConfig{Dir: t.TempDir()}}
	return NewFileStore(conf, identityCompressor{}, nopLogger{})
}

func TestNewFileStore_EmptyDirDegrades(t *testing.T) {
	conf := &structures.Config{}
	store := NewFileStore(conf, identityCompressor{}, nopLogger{})

	_, ok := store.(NoopStore)
	assert.True(t, ok)
}

func TestNewFileStore_UnusableDirDegrades(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("file, not a dir"), 0o644))

	conf := &structures.Config{Storage: structures.StorageConfig{Dir: filepath.Join(blocked, "sub")}}
	store := NewFileStore(conf, identityCompressor{}, nopLogger{})

	_, ok := store.(NoopStore)
	assert.True(t, ok)
	assert.Equal(t, ErrStoreUnavailable, store.Set("k", "v"))
}

func TestFileStore_SetGetRoundtrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("checksum_profile1", `{"checksum":42}`))

	val, ok := store.Get("checksum_profile1")
	require.True(t, ok)
	assert.Equal(t, `{"checksum":42}`, val)
}

func TestFileStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestFileStore_Overwrite(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", "first"))
	require.NoError(t, store.Set("k", "second"))

	val, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", val)
}

func TestFileStore_Remove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", "v"))
	store.Remove("k")

	_, ok := store.Get("k")
	assert.False(t, ok)

	// Removing a missing key is a no-op
	store.Remove("k")
}

func TestFileStore_KeysWithUnsafeCharacters(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("snapshot_user@example.com", "a"))
	require.NoError(t, store.Set("snapshot_user/example.com", "b"))

	va, ok := store.Get("snapshot_user@example.com")
	require.True(t, ok)
	vb, ok := store.Get("snapshot_user/example.com")
	require.True(t, ok)
	// Both sanitize to the same readable name; the crc suffix keeps them apart
	assert.Equal(t, "a", va)
	assert.Equal(t, "b", vb)
}

func TestFileNameForKey_DistinctAfterSanitizing(t *testing.T) {
	a := fileNameForKey("checksum_a@b")
	b := fileNameForKey("checksum_a/b")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "checksum_a~b")
}

func TestFileStore_Count(t *testing.T) {
	store := newTestStore(t)
	sw := store.(Sweepable)

	assert.Equal(t, 0, sw.Count("checksum_"))

	require.NoError(t, store.Set("checksum_p1", "a"))
	require.NoError(t, store.Set("checksum_p2", "b"))
	require.NoError(t, store.Set("snapshot_p1", "c"))

	assert.Equal(t, 2, sw.Count("checksum_"))
	assert.Equal(t, 1, sw.Count("snapshot_"))
}

func TestFileStore_KeysReturnsRawKeys(t *testing.T) {
	store := newTestStore(t)
	ls := store.(Lister)

	assert.Nil(t, ls.Keys("checksum_"))

	require.NoError(t, store.Set("checksum_user@example.com", "a"))
	require.NoError(t, store.Set("checksum_p2", "b"))
	require.NoError(t, store.Set("snapshot_p2", "c"))

	keys := ls.Keys("checksum_")
	// Raw keys survive the sanitized file names
	assert.ElementsMatch(t, []string{"checksum_user@example.com", "checksum_p2"}, keys)
	assert.Equal(t, []string{"snapshot_p2"}, ls.Keys("snapshot_"))
}

func TestFileStore_PruneOlderThan(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{Storage: structures.StorageConfig{Dir: dir}}
	store := NewFileStore(conf, identityCompressor{}, nopLogger{})
	sw := store.(Sweepable)

	require.NoError(t, store.Set("checksum_old", "a"))
	require.NoError(t, store.Set("checksum_new", "b"))

	// Age the first entry by backdating its mtime
	old := filepath.Join(dir, fileNameForKey("checksum_old"))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	pruned := sw.PruneOlderThan("checksum_", time.Now().Add(-24*time.Hour))
	assert.Equal(t, 1, pruned)

	_, ok := store.Get("checksum_old")
	assert.False(t, ok)
	_, ok = store.Get("checksum_new")
	assert.True(t, ok)
}

func TestFileStore_PruneIgnoresOtherPrefixes(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{Storage: structures.StorageConfig{Dir: dir}}
	store := NewFileStore(conf, identityCompressor{}, nopLogger{})
	sw := store.(Sweepable)

	require.NoError(t, store.Set("snapshot_p", "a"))
	old := filepath.Join(dir, fileNameForKey("snapshot_p"))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	assert.Equal(t, 0, sw.PruneOlderThan("checksum_", time.Now()))
	_, ok := store.Get("snapshot_p")
	assert.True(t, ok)
}

func TestNoopStore_Contract(t *testing.T) {
	var store Store = NoopStore{}

	_, ok := store.Get("k")
	assert.False(t, ok)
	assert.Equal(t, ErrStoreUnavailable, store.Set("k", "v"))
	store.Remove("k")

	sw := NoopStore{}
	assert.Equal(t, 0, sw.Count("checksum_"))
	assert.Equal(t, 0, sw.PruneOlderThan("checksum_", time.Now()))
	assert.Nil(t, sw.Keys("checksum_"))
}
