// Package metrics provides Prometheus metrics for the sentiment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sentiment"

var (
	// SourceFetchTotal counts content source fetches by outcome.
	SourceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetch_total",
			Help:      "Total number of content source fetches",
		},
		[]string{"source", "status"},
	)

	// SourceFetchDuration measures content source fetch latency.
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of content source fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// ItemsScoredTotal counts items scored by the pipeline.
	ItemsScoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_scored_total",
			Help:      "Total number of content items scored",
		},
		[]string{"model"},
	)

	// ClassificationDuration measures one classification chunk.
	ClassificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Duration of sentiment classification calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	// ReportsTotal counts generated reports by signal.
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Total number of sentiment reports generated",
		},
		[]string{"signal"},
	)

	// ScoreCacheTotal counts score cache lookups.
	ScoreCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_cache_total",
			Help:      "Total number of score cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordSourceFetch records one source fetch.
func RecordSourceFetch(source, status string, duration float64) {
	SourceFetchTotal.WithLabelValues(source, status).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(duration)
}

// RecordClassification records a classification chunk of n items.
func RecordClassification(model string, n int, duration float64) {
	ItemsScoredTotal.WithLabelValues(model).Add(float64(n))
	ClassificationDuration.WithLabelValues(model).Observe(duration)
}

// RecordReport records a generated report.
func RecordReport(signal string) {
	ReportsTotal.WithLabelValues(signal).Inc()
}

// RecordScoreCache records cache hits and misses.
func RecordScoreCache(hits, misses int) {
	ScoreCacheTotal.WithLabelValues("hit").Add(float64(hits))
	ScoreCacheTotal.WithLabelValues("miss").Add(float64(misses))
}
