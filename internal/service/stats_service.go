package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/logger"
	"github.com/yourusername/champ-predictor/internal/metrics"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/repository"
	"github.com/yourusername/champ-predictor/internal/stats"
)

// ErrNoTrainingMatches is returned when no stored match can seed a snapshot
var ErrNoTrainingMatches = errors.New("no decided matches available to build statistics")

// StatsService builds champion stats snapshots from stored matches
type StatsService struct {
	matchRepo    repository.MatchRepository
	snapshotRepo repository.ChampionStatsRepository
	logger       *logger.PredictionLogger
	percentile   int
	champions    []models.ChampionID
}

// NewStatsService creates a new stats service. Matches up to the given
// percentile of match IDs form the training window; the rest are held out.
func NewStatsService(
	matchRepo repository.MatchRepository,
	snapshotRepo repository.ChampionStatsRepository,
	log *logrus.Logger,
	percentile int,
) *StatsService {
	if percentile <= 0 || percentile > 100 {
		percentile = 70
	}
	return &StatsService{
		matchRepo:    matchRepo,
		snapshotRepo: snapshotRepo,
		logger:       logger.NewPredictionLogger(log),
		percentile:   percentile,
	}
}

// WithChampions adds champions that may not appear in the training window.
// Build always fills unplayed pairs between observed champions with zero
// counts; these champions join that set.
func (s *StatsService) WithChampions(ids []models.ChampionID) *StatsService {
	s.champions = ids
	return s
}

// Build aggregates the training window into a new snapshot and persists it
func (s *StatsService) Build(ctx context.Context) (*models.ChampionStatsSnapshot, error) {
	start := time.Now()

	cut, err := s.matchRepo.IDAtPercentile(ctx, s.percentile)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNoTrainingMatches
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find training cut-off: %w", err)
	}

	matches, err := s.matchRepo.GetUpToID(ctx, cut)
	if err != nil {
		return nil, fmt.Errorf("failed to load training matches: %w", err)
	}

	builder := stats.NewBuilder()
	for _, match := range matches {
		if err := builder.Add(match); err != nil {
			s.logger.LogMatchSkipped(match.Label(), err)
			metrics.RecordMatchSkipped(skipReason(err))
		}
	}
	if builder.Matches() == 0 {
		return nil, ErrNoTrainingMatches
	}
	// every pair among observed and configured champions gets an entry
	builder.Seed(s.champions)

	table := builder.Table()
	data, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("failed to encode statistics table: %w", err)
	}

	snapshot := &models.ChampionStatsSnapshot{
		ID:          uuid.New(),
		Data:        data,
		LastMatchID: cut,
		MatchCount:  builder.Matches(),
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}

	metrics.RecordSnapshotBuilt(snapshot.MatchCount, time.Since(start).Seconds())
	s.logger.LogSnapshotBuilt(snapshot.ID.String(), snapshot.LastMatchID, snapshot.MatchCount, table.Len())

	return snapshot, nil
}
