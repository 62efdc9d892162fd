// Package metrics defines the Prometheus collectors exported in watch mode.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuditDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "locaudit_audit_duration_seconds",
		Help:    "Time spent on one locale pass, from navigation to enriched issues.",
		Buckets: prometheus.DefBuckets,
	}, []string{"locale"})

	IssuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locaudit_issues_total",
		Help: "Overflow issues reported, by locale and severity.",
	}, []string{"locale", "severity"})

	LocaleFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locaudit_locale_failures_total",
		Help: "Locale passes that could not load or snapshot the page.",
	}, []string{"locale"})

	TransformFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locaudit_transform_failures_total",
		Help: "Locale transformations skipped after an in-page error.",
	}, []string{"locale"})

	AttributionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locaudit_attribution_total",
		Help: "Issues attributed to source, by attribution kind.",
	}, []string{"kind"})

	IndexFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "locaudit_index_files",
		Help: "Source files in the static text index.",
	})

	IndexEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "locaudit_index_entries",
		Help: "Distinct normalized strings in the static text index, by tier.",
	}, []string{"tier"})

	IndexBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "locaudit_index_build_seconds",
		Help:    "Time spent building the static text index.",
		Buckets: prometheus.DefBuckets,
	})

	IndexCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locaudit_index_cache_hits_total",
		Help: "Source files whose candidates were reused from the index cache.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locaudit_watcher_events_total",
		Help: "File system events received by the watcher.",
	})

	WatchNewIssuesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "locaudit_watch_new_issues_total",
		Help: "Issues first seen during a watch session.",
	})
)
