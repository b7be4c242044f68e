package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// tiered data-sourcing pipeline.
type Metrics struct {
	// Tier resolution metrics.
	TierAttempts     *prometheus.CounterVec // labels: tier={live,reference,pattern}, outcome={success,failure}
	TierFallthroughs prometheus.Counter
	ResolveDuration  prometheus.Histogram

	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec // labels: resource, outcome={success,error,empty}
	UpstreamDuration prometheus.Histogram
	LiveDataEnabled  prometheus.Gauge

	// Cache metrics.
	CacheLookups *prometheus.CounterVec // labels: entry={districts,district}, result={hit,miss}

	// Refresh metrics.
	RefreshRuns     prometheus.Counter
	RefreshDuration prometheus.Histogram
	RecordsExported prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		TierAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mgnrega",
			Name:      "tier_attempts_total",
			Help:      "Data-sourcing tier attempts by tier and outcome.",
		}, []string{"tier", "outcome"}),
		TierFallthroughs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mgnrega",
			Name:      "tier_fallthroughs_total",
			Help:      "Times a tier failed and resolution fell through to the next tier.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mgnrega",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a complete tiered resolution.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mgnrega",
			Name:      "upstream_requests_total",
			Help:      "data.gov.in requests by resource identifier and outcome.",
		}, []string{"resource", "outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mgnrega",
			Name:      "upstream_request_duration_seconds",
			Help:      "data.gov.in request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		LiveDataEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mgnrega",
			Name:      "live_data_enabled",
			Help:      "1 when the live government API tier is enabled, 0 otherwise.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mgnrega",
			Name:      "cache_lookups_total",
			Help:      "Resolver cache lookups by entry kind and result.",
		}, []string{"entry", "result"}),
		RefreshRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mgnrega",
			Name:      "refresh_runs_total",
			Help:      "Completed full-region refresh cycles.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mgnrega",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a full-region refresh cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}),
		RecordsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mgnrega",
			Name:      "records_exported_total",
			Help:      "Normalized records published to the export topic.",
		}),
	}

	prometheus.MustRegister(
		m.TierAttempts,
		m.TierFallthroughs,
		m.ResolveDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.LiveDataEnabled,
		m.CacheLookups,
		m.RefreshRuns,
		m.RefreshDuration,
		m.RecordsExported,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		TierAttempts:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mgnrega", Name: "tier_attempts_total"}, []string{"tier", "outcome"}),
		TierFallthroughs: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mgnrega", Name: "tier_fallthroughs_total"}),
		ResolveDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mgnrega", Name: "resolve_duration_seconds"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mgnrega", Name: "upstream_requests_total"}, []string{"resource", "outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mgnrega", Name: "upstream_request_duration_seconds"}),
		LiveDataEnabled:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "mgnrega", Name: "live_data_enabled"}),
		CacheLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "mgnrega", Name: "cache_lookups_total"}, []string{"entry", "result"}),
		RefreshRuns:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mgnrega", Name: "refresh_runs_total"}),
		RefreshDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "mgnrega", Name: "refresh_duration_seconds"}),
		RecordsExported:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "mgnrega", Name: "records_exported_total"}),
	}
}
