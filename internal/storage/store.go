package storage

import (
	"errors"
	"time"
)

// ErrStoreUnavailable is returned by writes when no usable backing store
// exists. Callers treat it as "no local cache", never as a fatal error.
var ErrStoreUnavailable = errors.New("persistent store unavailable")

// Store is the persisted key-value collaborator. Each call performs a single
// get/set/remove; there are no transactions spanning keys.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}

// Sweepable is implemented by stores that can enumerate and age out their
// entries, used by the retention sweep and the profile gauge.
type Sweepable interface {
	Count(prefix string) int
	PruneOlderThan(prefix string, cutoff time.Time) int
}

// Lister is implemented by stores that can report the raw keys currently
// stored under a prefix.
type Lister interface {
	Keys(prefix string) []string
}

// NoopStore stands in when storage is unavailable so that calling code never
// branches on "is storage available".
type NoopStore struct{}

func (NoopStore) Get(_ string) (string, bool)              { return "", false }
func (NoopStore) Set(_, _ string) error                    { return ErrStoreUnavailable }
func (NoopStore) Remove(_ string)                          {}
func (NoopStore) Count(_ string) int                       { return 0 }
func (NoopStore) PruneOlderThan(_ string, _ time.Time) int { return 0 }
func (NoopStore) Keys(_ string) []string                   { return nil }
