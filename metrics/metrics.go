// Package metrics holds the Prometheus collectors for the synchronizer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Asset outcomes recorded by SyncAssets.
const (
	OutcomeSynced       = "synced"
	OutcomeSkipped      = "skipped"
	OutcomeExcluded     = "excluded"
	OutcomeLookupError  = "lookup_error"
	OutcomePersistError = "persist_error"
	OutcomeDuplicate    = "duplicate"
)

var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_sync_runs_total",
			Help: "Total number of photo sync runs by result",
		},
		[]string{"result"}, // success, configuration_error, transport_error, canceled, error
	)

	SyncAssets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_sync_assets_total",
			Help: "Remote assets processed by outcome",
		},
		[]string{"outcome"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photo_sync_duration_seconds",
			Help:    "Duration of a complete sync run in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	RemoteListDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_sync_remote_list_duration_seconds",
			Help:    "Duration of remote asset listing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "photo_sync_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_sync_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	PreviewCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_preview_cache_lookups_total",
			Help: "Preview cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)
)

// RecordSyncRun records the result and duration of one run.
func RecordSyncRun(result string, d time.Duration) {
	SyncRuns.WithLabelValues(result).Inc()
	SyncDuration.Observe(d.Seconds())
}

// RecordAsset increments the per-asset outcome counter.
func RecordAsset(outcome string) {
	SyncAssets.WithLabelValues(outcome).Inc()
}

// RecordRemoteList observes a listing call.
func RecordRemoteList(provider string, d time.Duration) {
	RemoteListDuration.WithLabelValues(provider).Observe(d.Seconds())
}
