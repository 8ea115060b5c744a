// Package logger provides ingestion audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// IngestionLogger records what the crawler stored and why it skipped matches.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithField("component", "ingestion"),
	}
}

// LogMatchStored logs a match written to storage.
func (il *IngestionLogger) LogMatchStored(matchID string, queueID int32, winningTeam string) {
	il.WithFields(logrus.Fields{
		"match_id":     matchID,
		"queue_id":     queueID,
		"winning_team": winningTeam,
	}).Debug("Match stored")
}

// LogMatchIgnored logs a match the crawler did not store.
func (il *IngestionLogger) LogMatchIgnored(matchID, reason string) {
	il.WithFields(logrus.Fields{
		"match_id": matchID,
		"reason":   reason,
	}).Debug("Match ignored")
}

// LogPlayerCrawled logs the result of crawling one player's history.
func (il *IngestionLogger) LogPlayerCrawled(puuid string, fetched, stored, ignored int) {
	il.WithFields(logrus.Fields{
		"puuid":   puuid,
		"fetched": fetched,
		"stored":  stored,
		"ignored": ignored,
	}).Info("Player match history crawled")
}
