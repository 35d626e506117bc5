package storage

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"cid/internal/providers"
	"cid/internal/storage/interfaces"
	"cid/internal/structures"
)

// FileStore keeps one zstd-compressed file per key under the configured
// directory. Writes go through a temp file, fsync and rename, so a crashed
// write never leaves a torn value behind.
type FileStore struct {
	mu         sync.Mutex
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

// NewFileStore builds the persistent store. When the directory is unset or
// unusable it degrades to a NoopStore instead of failing: loss of local
// cache is recoverable by re-syncing from the server.
func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) Store {
	dir := conf.Storage.Dir
	if dir == "" {
		logger.Warnf(providers.TypeApp, "Persistent store disabled: no storage directory configured")
		return NoopStore{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Errorf(providers.TypeApp, "Persistent store disabled: %s", err)
		return NoopStore{}
	}
	return &FileStore{
		dir:        dir,
		compressor: compressor,
		logger:     logger,
	}
}

// fileNameForKey maps a key to a safe file name. The readable prefix is kept
// for sweeping; the crc suffix keeps distinct keys distinct after sanitizing.
func fileNameForKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('~')
		}
	}
	return fmt.Sprintf("%s.%08x.dat", b.String(), crc32.ChecksumIEEE([]byte(key)))
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, fileNameForKey(key))
}

// fileRecord is the on-disk envelope. File names are sanitized and therefore
// lossy, so the raw key travels inside the payload; Keys reads it back out.
type fileRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (f *FileStore) readRecord(path string) (fileRecord, bool) {
	var record fileRecord

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warnf(providers.TypeApp, "Store read failed at %s: %s", path, err)
		}
		return record, false
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Store entry at %s is corrupt: %s", path, err)
		return record, false
	}
	if err := json.Unmarshal(decompressed, &record); err != nil {
		f.logger.Warnf(providers.TypeApp, "Store entry at %s has a malformed envelope: %s", path, err)
		return record, false
	}
	return record, true
}

func (f *FileStore) Get(key string) (string, bool) {
	record, ok := f.readRecord(f.path(key))
	if !ok {
		return "", false
	}
	return record.Value, true
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	envelope, err := json.Marshal(fileRecord{Key: key, Value: value})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(envelope)
	if err != nil {
		return err
	}

	target := f.path(key)
	tmpFile := target + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, target)
}

func (f *FileStore) Remove(key string) {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		f.logger.Warnf(providers.TypeApp, "Store remove failed for key %s: %s", key, err)
	}
}

// Count returns the number of stored entries whose key starts with prefix.
func (f *FileStore) Count(prefix string) int {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0
	}

	sanitized := sanitizedPrefix(prefix)
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), sanitized) && strings.HasSuffix(e.Name(), ".dat") {
			count++
		}
	}
	return count
}

// Keys returns the raw keys of all stored entries starting with prefix.
// Entries that fail to decode are skipped, consistent with Get.
func (f *FileStore) Keys(prefix string) []string {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil
	}

	sanitized := sanitizedPrefix(prefix)
	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), sanitized) || !strings.HasSuffix(e.Name(), ".dat") {
			continue
		}
		record, ok := f.readRecord(filepath.Join(f.dir, e.Name()))
		if !ok || !strings.HasPrefix(record.Key, prefix) {
			continue
		}
		keys = append(keys, record.Key)
	}
	return keys
}

// PruneOlderThan removes entries under prefix whose file was last written
// before cutoff, returning how many were removed.
func (f *FileStore) PruneOlderThan(prefix string, cutoff time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0
	}

	sanitized := sanitizedPrefix(prefix)
	pruned := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), sanitized) || !strings.HasSuffix(e.Name(), ".dat") {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err == nil {
			pruned++
		}
	}
	return pruned
}

// sanitizedPrefix applies the same character mapping as fileNameForKey so
// prefix matching works on file names.
func sanitizedPrefix(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('~')
		}
	}
	return b.String()
}
