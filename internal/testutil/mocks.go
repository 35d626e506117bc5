package testutil

import (
	"strings"
	"sync"
	"time"

	"cid/internal/providers"
	"cid/internal/storage"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockStore is a map-backed storage.Store with injectable failure modes.
// It also implements storage.Sweepable so pruning paths can be tested.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string]string
	SavedAt  map[string]time.Time
	FailSet  bool
	FailGets bool
}

func NewMockStore() *MockStore {
	return &MockStore{
		Data:    make(map[string]string),
		SavedAt: make(map[string]time.Time),
	}
}

func (m *MockStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGets {
		return "", false
	}
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return storage.ErrStoreUnavailable
	}
	m.Data[key] = value
	m.SavedAt[key] = time.Now()
	return nil
}

func (m *MockStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	delete(m.SavedAt, key)
}

func (m *MockStore) Count(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key := range m.Data {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n
}

func (m *MockStore) Keys(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.Data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

func (m *MockStore) PruneOlderThan(prefix string, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, at := range m.SavedAt {
		if strings.HasPrefix(key, prefix) && at.Before(cutoff) {
			delete(m.Data, key)
			delete(m.SavedAt, key)
			removed++
		}
	}
	return removed
}

// MockCache implements providers.CacheProviderInterface. Deleted keys are
// recorded so invalidation paths can be asserted.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Dels []string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	m.Dels = append(m.Dels, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu             sync.Mutex
	Requests       int
	Durations      int
	CacheHits      int
	CacheMisses    int
	SweepDurations []time.Duration
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveSweepDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SweepDurations = append(m.SweepDurations, d)
}
