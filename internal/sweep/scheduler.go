package sweep

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"cid/internal/providers"
	"cid/internal/storage"
	"cid/internal/structures"
	"cid/internal/sweep/interfaces"
)

// Scheduler periodically prunes stored records older than the configured
// retention. A non-positive retention disables pruning entirely.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	snapshots storage.SnapshotStoreInterface
	metrics   providers.MetricsProviderInterface
	cron      *gron.Cron
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	if s.config.Integrity.Retention <= 0 {
		s.logger.Infof(providers.TypeApp, "Retention sweep disabled")
		return
	}

	s.cron.AddFunc(gron.Every(s.config.Integrity.SweepInterval), func() {
		s.sweep()
	})
	s.cron.Start()
}

func (s *Scheduler) sweep() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	cutoff := start.Add(-s.config.Integrity.Retention)
	removed := s.snapshots.PruneOlderThan(cutoff)
	s.metrics.ObserveSweepDuration(time.Since(start))

	if removed > 0 {
		s.logger.Infof(providers.TypeApp, "Retention sweep removed %d records older than %s", removed, s.config.Integrity.Retention)
	} else {
		s.logger.Debugf(providers.TypeApp, "Retention sweep removed nothing")
	}
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, snapshots storage.SnapshotStoreInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:    config,
		logger:    logger,
		snapshots: snapshots,
		metrics:   metrics,
	}
}
