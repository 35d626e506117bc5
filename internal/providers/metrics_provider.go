package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cid/internal/structures"
)

// OpsSource exposes the live operational counters the gauge functions read.
// Declared here so the metrics layer does not depend on the service package.
type OpsSource interface {
	TrackedProfiles() int
	SnapshotsBuilt() int64
	ComparisonsRun() int64
	DiscrepanciesFound() int64
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveSweepDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	sweepDuration   prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveSweepDuration(duration time.Duration) {
	m.sweepDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, ops OpsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cid_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cid_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cid_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cid_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		sweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cid_sweep_duration_seconds",
			Help:    "Duration of retention sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cid_profiles_tracked",
		Help: "Number of profiles with a stored checksum record",
	}, func() float64 {
		return float64(ops.TrackedProfiles())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cid_snapshots_built",
		Help: "Total number of snapshots built since start",
	}, func() float64 {
		return float64(ops.SnapshotsBuilt())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cid_comparisons_run",
		Help: "Total number of checksum comparisons since start",
	}, func() float64 {
		return float64(ops.ComparisonsRun())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "cid_discrepancies_found",
		Help: "Total number of discrepancies reported since start",
	}, func() float64 {
		return float64(ops.DiscrepanciesFound())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveSweepDuration(_ time.Duration)             {}
