package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChampionStatsSnapshot is a persisted, immutable aggregate of pair statistics.
// Data holds the JSON encoded statistics table; LastMatchID is the highest match
// id that contributed to it, so matches above it form the hold-out set.
type ChampionStatsSnapshot struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Data        json.RawMessage `db:"data" json:"data"`
	LastMatchID int64           `db:"last_match_id" json:"last_match_id"`
	MatchCount  int             `db:"match_count" json:"match_count"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// EvaluationResult stores the accuracy report of one combination rule over a hold-out set
type EvaluationResult struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SnapshotID   uuid.UUID `db:"snapshot_id" json:"snapshot_id"`
	Rule         string    `db:"rule" json:"rule" validate:"required,oneof=average weighted"`
	MatchCount   int       `db:"match_count" json:"match_count"`
	SkippedCount int       `db:"skipped_count" json:"skipped_count"`
	Accuracy     float64   `db:"accuracy" json:"accuracy" validate:"gte=0,lte=1"`
	Precision    float64   `db:"precision" json:"precision" validate:"gte=0,lte=1"`
	Recall       float64   `db:"recall" json:"recall" validate:"gte=0,lte=1"`
	ROCAUC       float64   `db:"roc_auc" json:"roc_auc" validate:"gte=0,lte=1"`
	EvaluatedAt  time.Time `db:"evaluated_at" json:"evaluated_at"`
}
