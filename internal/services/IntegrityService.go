package services

import (
	"fmt"
	"time"

	"go.uber.org/atomic"

	"cid/internal/integrity"
	"cid/internal/models"
	"cid/internal/providers"
	"cid/internal/storage"
)

// staleAfter is the age past which an otherwise healthy snapshot is reported
// as a warning.
const staleAfter = 7 * 24 * time.Hour

type IntegrityServiceInterface interface {
	BuildSnapshot(profileID string, collection []models.PersistenceCard, wishlist []models.PersistenceWishlistCard, achievements []models.PersistenceAchievement) (*models.DataSnapshot, bool, models.SnapshotValidationResult)
	GetChecksum(profileID string) *models.LocalChecksum
	GetSnapshot(profileID string) *models.DataSnapshot
	Compare(profileID string, serverChecksum int64, serverStats models.DataStats) models.ComparisonResult
	Diff(local []models.PersistenceCard, server []models.PersistenceCard) models.CollectionDiff
	Status(profileID string) models.SyncStatusReport
	Clear(profileID string)
	TrackedProfiles() int
	Profiles() []string
	SnapshotsBuilt() int64
	ComparisonsRun() int64
	DiscrepanciesFound() int64
}

type IntegrityService struct {
	snapshots storage.SnapshotStoreInterface
	logger    providers.Logger

	snapshotsBuilt     atomic.Int64
	comparisonsRun     atomic.Int64
	discrepanciesFound atomic.Int64
}

func NewIntegrityService(snapshots storage.SnapshotStoreInterface, logger providers.Logger) IntegrityServiceInterface {
	return &IntegrityService{
		snapshots: snapshots,
		logger:    logger,
	}
}

// BuildSnapshot validates the incoming records, computes the checksum over
// them and persists both the snapshot and its checksum record. The returned
// bool reports whether persistence succeeded; on a degraded store the
// snapshot is still returned so the caller can hold it in memory.
func (is *IntegrityService) BuildSnapshot(profileID string, collection []models.PersistenceCard, wishlist []models.PersistenceWishlistCard, achievements []models.PersistenceAchievement) (*models.DataSnapshot, bool, models.SnapshotValidationResult) {
	// Normalize nil arrays so the stored envelope always carries JSON arrays
	if collection == nil {
		collection = []models.PersistenceCard{}
	}
	if wishlist == nil {
		wishlist = []models.PersistenceWishlistCard{}
	}
	if achievements == nil {
		achievements = []models.PersistenceAchievement{}
	}

	validation := models.SnapshotValidationResult{IsValid: true}
	for i, card := range collection {
		if result := integrity.ValidateCard(card); !result.IsValid {
			validation.IsValid = false
			for _, e := range result.Errors {
				validation.Errors = append(validation.Errors, fmt.Sprintf("collection[%d]: %s", i, e))
			}
		}
	}
	if !validation.IsValid {
		return nil, false, validation
	}

	result := integrity.ComputeFullChecksum(collection, wishlist, achievements)
	snapshot := &models.DataSnapshot{
		Version:      models.IntegrityVersion,
		CreatedAt:    result.ComputedAt.UnixMilli(),
		Checksum:     result.Checksum,
		Collection:   collection,
		Wishlist:     wishlist,
		Achievements: achievements,
		Stats:        result.Stats,
	}

	persisted := is.snapshots.SaveLocalSnapshot(profileID, snapshot)
	is.snapshots.SaveLocalChecksum(profileID, result.Checksum, result.Stats)
	is.snapshotsBuilt.Inc()

	is.logger.Debugf(providers.TypeApp, "Built snapshot for profile %s: checksum=%d, %d cards", profileID, result.Checksum, result.Stats.CollectionCards)
	return snapshot, persisted, validation
}

func (is *IntegrityService) GetChecksum(profileID string) *models.LocalChecksum {
	return is.snapshots.GetLocalChecksum(profileID)
}

func (is *IntegrityService) GetSnapshot(profileID string) *models.DataSnapshot {
	return is.snapshots.GetLocalSnapshot(profileID)
}

// Compare checks the stored local checksum record against server-reported
// values. A profile with no local record is reported as invalid with a
// suggestion to perform an initial sync.
func (is *IntegrityService) Compare(profileID string, serverChecksum int64, serverStats models.DataStats) models.ComparisonResult {
	is.comparisonsRun.Inc()

	local := is.snapshots.GetLocalChecksum(profileID)
	if local == nil {
		return models.ComparisonResult{
			IsValid:       false,
			Discrepancies: []string{"No local snapshot recorded for this profile"},
			Suggestions:   []string{"Perform an initial sync to establish a local baseline"},
		}
	}

	result := integrity.CompareChecksums(local.Checksum, serverChecksum, local.Stats, serverStats)
	if !result.IsValid {
		is.discrepanciesFound.Add(int64(len(result.Discrepancies)))
	}
	return result
}

func (is *IntegrityService) Diff(local []models.PersistenceCard, server []models.PersistenceCard) models.CollectionDiff {
	return integrity.DiffCollections(local, server)
}

// Status summarizes the health of a profile's local data. A stored snapshot
// whose recomputed checksum does not match its recorded checksum is reported
// as an error state.
func (is *IntegrityService) Status(profileID string) models.SyncStatusReport {
	snapshot := is.snapshots.GetLocalSnapshot(profileID)
	checksum := is.snapshots.GetLocalChecksum(profileID)

	health := models.HealthUnknown
	lastSync := time.Time{}
	stats := models.DataStats{}

	if checksum != nil {
		lastSync = checksum.SavedAt
		stats = checksum.Stats
	}

	switch {
	case snapshot == nil:
		health = models.HealthUnknown
	case snapshot.Stats.IsZero():
		health = models.HealthEmpty
	default:
		recomputed := integrity.ComputeFullChecksum(snapshot.Collection, snapshot.Wishlist, snapshot.Achievements)
		if recomputed.Checksum != snapshot.Checksum {
			is.logger.Warnf(providers.TypeApp, "Checksum mismatch for profile %s: stored=%d recomputed=%d", profileID, snapshot.Checksum, recomputed.Checksum)
			health = models.HealthError
		} else if !lastSync.IsZero() && time.Since(lastSync) > staleAfter {
			health = models.HealthWarning
		} else {
			health = models.HealthHealthy
		}
		if stats.IsZero() {
			stats = snapshot.Stats
		}
	}

	return models.SyncStatusReport{
		ProfileID:    profileID,
		Health:       health,
		Message:      integrity.GetDataHealthMessage(health),
		Color:        integrity.GetDataHealthColor(health),
		LastSync:     integrity.FormatSyncTime(lastSync),
		SyncStatus:   integrity.GetSyncStatusMessage(lastSync),
		StatsSummary: integrity.FormatDataStats(stats),
	}
}

func (is *IntegrityService) Clear(profileID string) {
	is.snapshots.Clear(profileID)
	is.logger.Infof(providers.TypeApp, "Cleared local data for profile %s", profileID)
}

func (is *IntegrityService) TrackedProfiles() int {
	return is.snapshots.TrackedProfiles()
}

func (is *IntegrityService) Profiles() []string {
	return is.snapshots.Profiles()
}

func (is *IntegrityService) SnapshotsBuilt() int64 {
	return is.snapshotsBuilt.Load()
}

func (is *IntegrityService) ComparisonsRun() int64 {
	return is.comparisonsRun.Load()
}

func (is *IntegrityService) DiscrepanciesFound() int64 {
	return is.discrepanciesFound.Load()
}
