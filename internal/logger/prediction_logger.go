// Package logger provides prediction-specific logging.
package logger

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/stats"
)

// PredictionLogger provides dedicated logging for prediction and evaluation runs.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogMatchSkipped logs a match that could not be scored. Lookup failures
// carry the relation and pair that were missing.
func (pl *PredictionLogger) LogMatchSkipped(matchID string, err error) {
	fields := logrus.Fields{
		"match_id": matchID,
	}

	var lookupErr *stats.LookupError
	if errors.As(err, &lookupErr) {
		fields["relation"] = string(lookupErr.Relation)
		fields["first_champion"] = int32(lookupErr.First)
		fields["second_champion"] = int32(lookupErr.Second)
	}

	pl.WithFields(fields).WithError(err).Warn("Match skipped")
}

// LogBatchSummary logs the outcome of a prediction batch.
func (pl *PredictionLogger) LogBatchSummary(total, scored, skipped int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"matches_total":     total,
		"matches_scored":    scored,
		"matches_skipped":   skipped,
		"batch_duration_ms": durationMs,
	}).Info("Prediction batch completed")
}

// LogEvaluationReport logs the metrics computed for one combination rule.
func (pl *PredictionLogger) LogEvaluationReport(snapshotID, rule string, samples int, accuracy, precision, recall, rocAUC float64) {
	pl.WithFields(logrus.Fields{
		"snapshot_id": snapshotID,
		"rule":        rule,
		"samples":     samples,
		"accuracy":    accuracy,
		"precision":   precision,
		"recall":      recall,
		"roc_auc":     rocAUC,
	}).Info("Evaluation report")
}

// LogSnapshotBuilt logs a newly persisted champion stats snapshot.
func (pl *PredictionLogger) LogSnapshotBuilt(snapshotID string, lastMatchID int64, matchCount, championCount int) {
	pl.WithFields(logrus.Fields{
		"snapshot_id":    snapshotID,
		"last_match_id":  lastMatchID,
		"match_count":    matchCount,
		"champion_count": championCount,
	}).Info("Champion stats snapshot built")
}
