package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/champ-predictor/internal/models"
)

// MatchRepository defines the interface for match data access.
// Matches are ordered by their surrogate ID, which grows with ingestion order.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	Exists(ctx context.Context, matchID string) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Match, error)
	GetUpToID(ctx context.Context, lastID int64) ([]*models.Match, error)
	GetAboveID(ctx context.Context, lastID int64) ([]*models.Match, error)
	IDAtPercentile(ctx context.Context, percentile int) (int64, error)
}

// ChampionStatsRepository defines the interface for snapshot data access
type ChampionStatsRepository interface {
	Create(ctx context.Context, snapshot *models.ChampionStatsSnapshot) error
	GetLatest(ctx context.Context) (*models.ChampionStatsSnapshot, error)
}

// EvaluationRepository defines the interface for evaluation result data access
type EvaluationRepository interface {
	Save(ctx context.Context, result *models.EvaluationResult) error
	GetBySnapshot(ctx context.Context, snapshotID uuid.UUID) ([]*models.EvaluationResult, error)
}
