package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records catalog filtering and session store activity.
type StorefrontMetrics struct {
	filterDuration *prometheus.HistogramVec
	storeOps       *prometheus.CounterVec
	snapshotErrors prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	filterDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_filter_duration_seconds",
		Help:    "Duration of catalog filter evaluations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})
	storeOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "session_store_operations_total",
		Help: "Session state store mutations by operation.",
	}, []string{"op"})
	snapshotErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "session_snapshot_write_failures_total",
		Help: "Snapshot persistence failures tolerated in memory.",
	})
	reg.MustRegister(filterDuration, storeOps, snapshotErrors)
	return &StorefrontMetrics{
		filterDuration: filterDuration,
		storeOps:       storeOps,
		snapshotErrors: snapshotErrors,
	}
}

// ObserveFilterDuration records how long a filter evaluation took.
func (m *StorefrontMetrics) ObserveFilterDuration(sort string, duration time.Duration) {
	if m == nil || m.filterDuration == nil {
		return
	}
	m.filterDuration.WithLabelValues(normalizeLabel(sort)).Observe(duration.Seconds())
}

// IncStoreOp increments the mutation counter for the named operation.
func (m *StorefrontMetrics) IncStoreOp(op string) {
	if m == nil || m.storeOps == nil {
		return
	}
	m.storeOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncSnapshotError counts a swallowed snapshot write failure.
func (m *StorefrontMetrics) IncSnapshotError() {
	if m == nil || m.snapshotErrors == nil {
		return
	}
	m.snapshotErrors.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
