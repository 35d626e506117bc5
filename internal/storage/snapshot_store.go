package storage

import (
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"cid/internal/integrity"
	"cid/internal/models"
	"cid/internal/providers"
)

// Key prefixes for profile-scoped records. The checksum record is stored
// independently of the full snapshot so a comparison never has to load the
// whole payload, and so the two degrade independently.
const (
	ChecksumKeyPrefix = "checksum_"
	SnapshotKeyPrefix = "snapshot_"
)

type SnapshotStoreInterface interface {
	SaveLocalChecksum(profileID string, checksum int64, stats models.DataStats)
	GetLocalChecksum(profileID string) *models.LocalChecksum
	SaveLocalSnapshot(profileID string, snapshot *models.DataSnapshot) bool
	GetLocalSnapshot(profileID string) *models.DataSnapshot
	Clear(profileID string)
	TrackedProfiles() int
	Profiles() []string
	PruneOlderThan(cutoff time.Time) int
}

// SnapshotStore persists per-profile checksum records and full snapshots.
// Every accessor degrades to nil/false on absence, corruption or an
// unavailable store; none of them ever returns an error to the caller.
type SnapshotStore struct {
	store  Store
	logger providers.Logger
}

func NewSnapshotStore(store Store, logger providers.Logger) SnapshotStoreInterface {
	return &SnapshotStore{store: store, logger: logger}
}

func checksumKey(profileID string) string { return ChecksumKeyPrefix + profileID }
func snapshotKey(profileID string) string { return SnapshotKeyPrefix + profileID }

func (s *SnapshotStore) SaveLocalChecksum(profileID string, checksum int64, stats models.DataStats) {
	record := models.LocalChecksum{
		Checksum: checksum,
		Stats:    stats,
		SavedAt:  time.Now(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Could not encode checksum record for profile %s: %s", profileID, err)
		return
	}
	if err := s.store.Set(checksumKey(profileID), string(data)); err != nil {
		s.logger.Warnf(providers.TypeApp, "Could not persist checksum for profile %s: %s", profileID, err)
	}
}

func (s *SnapshotStore) GetLocalChecksum(profileID string) *models.LocalChecksum {
	raw, ok := s.store.Get(checksumKey(profileID))
	if !ok {
		return nil
	}

	var record models.LocalChecksum
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt checksum record for profile %s: %s", profileID, err)
		return nil
	}
	return &record
}

func (s *SnapshotStore) SaveLocalSnapshot(profileID string, snapshot *models.DataSnapshot) bool {
	if snapshot == nil {
		return false
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Could not encode snapshot for profile %s: %s", profileID, err)
		return false
	}
	if err := s.store.Set(snapshotKey(profileID), string(data)); err != nil {
		s.logger.Warnf(providers.TypeApp, "Could not persist snapshot for profile %s: %s", profileID, err)
		return false
	}
	return true
}

// GetLocalSnapshot loads and structurally validates a stored snapshot.
// The raw payload is checked before the typed decode so corrupt or truncated
// envelopes surface as "no local cache" instead of half-decoded state.
func (s *SnapshotStore) GetLocalSnapshot(profileID string) *models.DataSnapshot {
	raw, ok := s.store.Get(snapshotKey(profileID))
	if !ok {
		return nil
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt snapshot for profile %s: %s", profileID, err)
		return nil
	}

	validation := integrity.ValidateDataSnapshot(payload)
	if !validation.IsValid {
		s.logger.Warnf(providers.TypeApp, "Invalid snapshot for profile %s: %v", profileID, validation.Errors)
		return nil
	}
	for _, w := range validation.Warnings {
		s.logger.Warnf(providers.TypeApp, "Snapshot for profile %s: %s", profileID, w)
	}

	var snapshot models.DataSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logger.Warnf(providers.TypeApp, "Could not decode snapshot for profile %s: %s", profileID, err)
		return nil
	}
	return &snapshot
}

func (s *SnapshotStore) Clear(profileID string) {
	s.store.Remove(checksumKey(profileID))
	s.store.Remove(snapshotKey(profileID))
}

func (s *SnapshotStore) TrackedProfiles() int {
	if sw, ok := s.store.(Sweepable); ok {
		return sw.Count(ChecksumKeyPrefix)
	}
	return 0
}

// Profiles lists the profile IDs that currently have a stored checksum
// record, sorted. A store without listing support yields nil.
func (s *SnapshotStore) Profiles() []string {
	ls, ok := s.store.(Lister)
	if !ok {
		return nil
	}

	keys := ls.Keys(ChecksumKeyPrefix)
	if len(keys) == 0 {
		return nil
	}
	profiles := make([]string, 0, len(keys))
	for _, key := range keys {
		profiles = append(profiles, strings.TrimPrefix(key, ChecksumKeyPrefix))
	}
	sort.Strings(profiles)
	return profiles
}

// PruneOlderThan drops checksum and snapshot records last saved before
// cutoff. Returns the number of removed entries.
func (s *SnapshotStore) PruneOlderThan(cutoff time.Time) int {
	sw, ok := s.store.(Sweepable)
	if !ok {
		return 0
	}
	return sw.PruneOlderThan(ChecksumKeyPrefix, cutoff) + sw.PruneOlderThan(SnapshotKeyPrefix, cutoff)
}
