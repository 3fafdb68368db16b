package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "atmosphere"

// Metrics holds the Prometheus collectors for the weather service.
type Metrics struct {
	// Provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider

	// Snapshot metrics.
	Snapshots        *prometheus.CounterVec // labels: outcome={success,data_sync,not_found,error}
	StaleDiscarded   prometheus.Counter
	CacheWrites      *prometheus.CounterVec // labels: outcome={success,error}
	InsightRequests  *prometheus.CounterVec // labels: outcome={success,fallback}
	FavoritesRefresh prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		Snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Snapshot builds by outcome.",
		}, []string{"outcome"}),
		StaleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_snapshots_discarded_total",
			Help:      "Snapshots not retained because a newer request had been issued.",
		}),
		CacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Snapshot cache writes by outcome.",
		}, []string{"outcome"}),
		InsightRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_requests_total",
			Help:      "AI insight generations by outcome.",
		}, []string{"outcome"}),
		FavoritesRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_refresh_runs_total",
			Help:      "Completed scheduled refreshes of favorite locations.",
		}),
	}

	prometheus.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.Snapshots,
		m.StaleDiscarded,
		m.CacheWrites,
		m.InsightRequests,
		m.FavoritesRefresh,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many instances as they need.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "provider_requests_total"}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "provider_request_duration_seconds"}, []string{"provider"}),
		Snapshots:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "snapshots_total"}, []string{"outcome"}),
		StaleDiscarded:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "stale_snapshots_discarded_total"}),
		CacheWrites:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "cache_writes_total"}, []string{"outcome"}),
		InsightRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "insight_requests_total"}, []string{"outcome"}),
		FavoritesRefresh: prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "favorites_refresh_runs_total"}),
	}
}
