package sweep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cid/internal/models"
	"cid/internal/storage"
	"cid/internal/structures"
	"cid/internal/testutil"
)

func sweepConfig(interval, retention time.Duration) *structures.Config {
	return &structures.Config{
		Integrity: structures.IntegrityConfig{
			SweepInterval: interval,
			Retention:     retention,
		},
	}
}

func newTestScheduler(conf *structures.Config) (*Scheduler, *testutil.MockStore, *testutil.MockMetrics) {
	store := testutil.NewMockStore()
	snapshots := storage.NewSnapshotStore(store, &testutil.MockLogger{})
	metrics := &testutil.MockMetrics{}
	s := NewScheduler(conf, &testutil.MockLogger{}, snapshots, metrics).(*Scheduler)
	return s, store, metrics
}

func TestScheduler_SweepRemovesExpiredRecords(t *testing.T) {
	s, store, metrics := newTestScheduler(sweepConfig(time.Second, 24*time.Hour))

	snapshots := storage.NewSnapshotStore(store, &testutil.MockLogger{})
	snapshots.SaveLocalChecksum("stale", 1, models.DataStats{})
	snapshots.SaveLocalChecksum("fresh", 2, models.DataStats{})

	// Age one record past retention
	store.SavedAt[storage.ChecksumKeyPrefix+"stale"] = time.Now().Add(-48 * time.Hour)

	s.sweep()

	assert.Nil(t, snapshots.GetLocalChecksum("stale"))
	assert.NotNil(t, snapshots.GetLocalChecksum("fresh"))
	require.Len(t, metrics.SweepDurations, 1)
}

func TestScheduler_SweepNothingToRemove(t *testing.T) {
	s, store, metrics := newTestScheduler(sweepConfig(time.Second, 24*time.Hour))

	snapshots := storage.NewSnapshotStore(store, &testutil.MockLogger{})
	snapshots.SaveLocalChecksum("p1", 1, models.DataStats{})

	s.sweep()

	assert.NotNil(t, snapshots.GetLocalChecksum("p1"))
	assert.Len(t, metrics.SweepDurations, 1)
}

func TestScheduler_ZeroRetentionDisablesSweep(t *testing.T) {
	s, _, _ := newTestScheduler(sweepConfig(time.Second, 0))

	s.Init()
	defer s.Stop()

	// No sweep job scheduled: cron exists but carries no entries
	assert.NotNil(t, s.cron)
}

func TestScheduler_StopNilCron(t *testing.T) {
	s, _, _ := newTestScheduler(sweepConfig(time.Second, time.Hour))
	// Should not panic with nil cron
	s.Stop()
}

func TestScheduler_InitAndStop(t *testing.T) {
	s, _, _ := newTestScheduler(sweepConfig(time.Second, time.Hour))

	s.Init()
	s.Stop()
}
