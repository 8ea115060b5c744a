// Package metrics provides the centralized Prometheus registry for the predictor.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "champ_predictor"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of win probabilities produced, by combination rule",
	}, []string{"rule"})
	LookupFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_failures_total",
		Help:      "Total number of pair lookups that found no statistics, by relation",
	}, []string{"relation"})
	MatchesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_skipped_total",
		Help:      "Total number of matches that could not be scored, by reason",
	}, []string{"reason"})
	SnapshotsBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_built_total",
		Help:      "Total number of champion stats snapshots persisted",
	})
)

// Gauge metrics
var (
	EvaluationAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_accuracy",
		Help:      "Accuracy of the latest evaluation, by combination rule",
	}, []string{"rule"})
	EvaluationROCAUC = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_roc_auc",
		Help:      "ROC-AUC of the latest evaluation, by combination rule",
	}, []string{"rule"})
	SnapshotMatchCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_match_count",
		Help:      "Number of matches aggregated into the latest snapshot",
	})
)

// Histogram metrics
var (
	PredictionBatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_batch_duration_seconds",
		Help:      "Duration of prediction batches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	SnapshotBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_build_duration_seconds",
		Help:      "Duration of snapshot builds in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(LookupFailuresTotal)
		registry.MustRegister(MatchesSkippedTotal)
		registry.MustRegister(SnapshotsBuiltTotal)

		registry.MustRegister(EvaluationAccuracy)
		registry.MustRegister(EvaluationROCAUC)
		registry.MustRegister(SnapshotMatchCount)

		registry.MustRegister(PredictionBatchDuration)
		registry.MustRegister(SnapshotBuildDuration)

		// Ingestion metrics
		registry.MustRegister(RiotRequestsTotal)
		registry.MustRegister(RiotRequestDuration)
		registry.MustRegister(MatchesIngestedTotal)
		registry.MustRegister(CacheLookupsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records one combined probability for a rule.
func RecordPrediction(rule string) {
	PredictionsTotal.WithLabelValues(rule).Inc()
}

// RecordLookupFailure records a missing pair statistic.
func RecordLookupFailure(relation string) {
	LookupFailuresTotal.WithLabelValues(relation).Inc()
}

// RecordMatchSkipped records a match dropped from a batch.
// reason should be one of: "lookup_failure", "malformed_roster", "undecided", "other"
func RecordMatchSkipped(reason string) {
	MatchesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordBatchDuration records prediction batch duration.
func RecordBatchDuration(durationSeconds float64) {
	PredictionBatchDuration.Observe(durationSeconds)
}

// RecordEvaluation updates the latest evaluation gauges for a rule.
func RecordEvaluation(rule string, accuracy, rocAUC float64) {
	EvaluationAccuracy.WithLabelValues(rule).Set(accuracy)
	EvaluationROCAUC.WithLabelValues(rule).Set(rocAUC)
}

// RecordSnapshotBuilt records a persisted snapshot.
func RecordSnapshotBuilt(matchCount int, durationSeconds float64) {
	SnapshotsBuiltTotal.Inc()
	SnapshotMatchCount.Set(float64(matchCount))
	SnapshotBuildDuration.Observe(durationSeconds)
}
