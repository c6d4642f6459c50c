package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompaniesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_companies_scored_total",
			Help: "Total number of company scoring passes completed",
		},
		[]string{"persona", "mode"},
	)

	SourceFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_source_fetch_failures_total",
			Help: "Total number of source document reads that failed and degraded to missing data",
		},
		[]string{"source"},
	)

	NarrativeCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_narrative_calls_total",
			Help: "Total number of narrative analysis calls by outcome",
		},
		[]string{"status"},
	)

	RankingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_ranking_cache_total",
			Help: "Ranking cache lookups by result",
		},
		[]string{"persona", "result"},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_ranking_duration_seconds",
			Help:    "Duration of a whole-universe ranking pass in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"persona"},
	)

	CompaniesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_companies_in_flight",
			Help: "Number of companies currently being scored",
		},
	)
)
