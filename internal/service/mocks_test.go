package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/riot"
)

// MockMatchRepository mocks the match repository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	args := m.Called(ctx, matchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetUpToID(ctx context.Context, lastID int64) ([]*models.Match, error) {
	args := m.Called(ctx, lastID)
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetAboveID(ctx context.Context, lastID int64) ([]*models.Match, error) {
	args := m.Called(ctx, lastID)
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) IDAtPercentile(ctx context.Context, percentile int) (int64, error) {
	args := m.Called(ctx, percentile)
	return args.Get(0).(int64), args.Error(1)
}

// MockChampionStatsRepository mocks the snapshot repository
type MockChampionStatsRepository struct {
	mock.Mock
}

func (m *MockChampionStatsRepository) Create(ctx context.Context, snapshot *models.ChampionStatsSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockChampionStatsRepository) GetLatest(ctx context.Context) (*models.ChampionStatsSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChampionStatsSnapshot), args.Error(1)
}

// MockEvaluationRepository mocks the evaluation repository
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) Save(ctx context.Context, result *models.EvaluationResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockEvaluationRepository) GetBySnapshot(ctx context.Context, snapshotID uuid.UUID) ([]*models.EvaluationResult, error) {
	args := m.Called(ctx, snapshotID)
	return args.Get(0).([]*models.EvaluationResult), args.Error(1)
}

// MockMatchSource mocks the Riot client
type MockMatchSource struct {
	mock.Mock
}

func (m *MockMatchSource) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	args := m.Called(ctx, puuid, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMatchSource) GetMatch(ctx context.Context, matchID string) (*riot.MatchDTO, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*riot.MatchDTO), args.Error(1)
}
