package service

import (
	"context"

	"github.com/yourusername/champ-predictor/internal/cache"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/repository"
)

// PredictionService predicts single drafts against the latest snapshot
type PredictionService struct {
	snapshotRepo repository.ChampionStatsRepository
	snapshots    *cache.SnapshotCache
	aggregator   *prediction.Aggregator
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	snapshotRepo repository.ChampionStatsRepository,
	snapshots *cache.SnapshotCache,
	aggregator *prediction.Aggregator,
) *PredictionService {
	return &PredictionService{
		snapshotRepo: snapshotRepo,
		snapshots:    snapshots,
		aggregator:   aggregator,
	}
}

// PredictDraft returns the blue side win probability for a draft under every rule
func (s *PredictionService) PredictDraft(ctx context.Context, blue, red models.Roster) (prediction.Prediction, error) {
	_, table, err := latestTable(ctx, s.snapshotRepo, s.snapshots)
	if err != nil {
		return prediction.Prediction{}, err
	}

	match := &models.Match{MatchID: "draft", Blue: blue, Red: red}
	return prediction.NewPredictor(s.aggregator, table, 1).Predict(match)
}
