package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/stats"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "debug", "production")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = newLogger(buf, "debug", "development")
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "chatty", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestPredictionLoggerLookupFailure(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	err := fmt.Errorf("aggregate: %w", &stats.LookupError{
		Relation: stats.RelationMatchup,
		First:    models.ChampionID(266),
		Second:   models.ChampionID(1),
		MatchID:  "EUW1_42",
		Reason:   "pair not recorded",
	})
	predictionLogger.LogMatchSkipped("EUW1_42", err)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "prediction", logEntry["component"])
	assert.Equal(t, "EUW1_42", logEntry["match_id"])
	assert.Equal(t, "matchups", logEntry["relation"])
	assert.Equal(t, float64(266), logEntry["first_champion"])
	assert.Equal(t, float64(1), logEntry["second_champion"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestPredictionLoggerOtherError(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogMatchSkipped("EUW1_7", models.ErrUndecidedMatch)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.NotContains(t, logEntry, "relation")
	assert.Contains(t, logEntry["error"], "no recorded winner")
}

func TestPredictionLoggerEvaluationReport(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogEvaluationReport("snap-1", "weighted", 120, 0.61, 0.6, 0.7, 0.65)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "weighted", logEntry["rule"])
	assert.Equal(t, float64(120), logEntry["samples"])
	assert.Equal(t, 0.65, logEntry["roc_auc"])
}

func TestPredictionLoggerSnapshotBuilt(t *testing.T) {
	log, buf := setupTestLogger()
	NewPredictionLogger(log).LogSnapshotBuilt("snap-1", 700, 700, 160)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(700), logEntry["last_match_id"])
	assert.Equal(t, "Champion stats snapshot built", logEntry["msg"])
}

func TestIngestionLoggerPlayerCrawled(t *testing.T) {
	log, buf := setupTestLogger()
	NewIngestionLogger(log).LogPlayerCrawled("puuid-1", 20, 17, 3)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "ingestion", logEntry["component"])
	assert.Equal(t, float64(17), logEntry["stored"])
}

func TestIngestionLoggerDebugSuppressedAtInfo(t *testing.T) {
	log, buf := setupTestLogger()
	log.SetLevel(logrus.InfoLevel)
	NewIngestionLogger(log).LogMatchIgnored("EUW1_1", "arena queue")

	assert.Empty(t, buf.String())
}
