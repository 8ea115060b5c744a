package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/stats"
)

func TestStatsServiceBuild(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	snapshotRepo := new(MockChampionStatsRepository)

	training := []*models.Match{
		newMatch(1, blueRoster, redRoster, models.TeamBlue),
		newMatch(2, blueRoster, redRoster, models.TeamRed),
		newMatch(3, blueRoster, models.Roster{6, 6, 8, 9, 10}, models.TeamRed),
	}
	matchRepo.On("IDAtPercentile", mock.Anything, 70).Return(int64(3), nil)
	matchRepo.On("GetUpToID", mock.Anything, int64(3)).Return(training, nil)
	snapshotRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ChampionStatsSnapshot")).Return(nil)

	svc := NewStatsService(matchRepo, snapshotRepo, quietLogger(), 70)
	snapshot, err := svc.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), snapshot.LastMatchID)
	assert.Equal(t, 2, snapshot.MatchCount)

	table, err := stats.Decode(snapshot.Data)
	require.NoError(t, err)
	assert.Equal(t, 10, table.Len())

	ws, err := table.Synergy(1, 2)
	require.NoError(t, err)
	assert.Equal(t, stats.WinStats{Wins: 1, Games: 2}, ws)

	ws, err = table.Matchup(6, 1)
	require.NoError(t, err)
	assert.Equal(t, stats.WinStats{Wins: 1, Games: 2}, ws)

	matchRepo.AssertExpectations(t)
	snapshotRepo.AssertExpectations(t)
}

func TestStatsServiceBuildSeedsChampions(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	snapshotRepo := new(MockChampionStatsRepository)

	matchRepo.On("IDAtPercentile", mock.Anything, 70).Return(int64(1), nil)
	matchRepo.On("GetUpToID", mock.Anything, int64(1)).
		Return([]*models.Match{newMatch(1, blueRoster, redRoster, models.TeamBlue)}, nil)
	snapshotRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewStatsService(matchRepo, snapshotRepo, quietLogger(), 0).
		WithChampions([]models.ChampionID{1, 99})
	snapshot, err := svc.Build(context.Background())
	require.NoError(t, err)

	table, err := stats.Decode(snapshot.Data)
	require.NoError(t, err)

	ws, err := table.Synergy(1, 99)
	require.NoError(t, err)
	assert.Equal(t, stats.WinStats{}, ws)
}

func TestStatsServiceBuildWithoutMatches(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	snapshotRepo := new(MockChampionStatsRepository)
	matchRepo.On("IDAtPercentile", mock.Anything, 70).Return(int64(0), models.ErrNotFound)

	svc := NewStatsService(matchRepo, snapshotRepo, quietLogger(), 70)
	_, err := svc.Build(context.Background())

	assert.ErrorIs(t, err, ErrNoTrainingMatches)
	snapshotRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStatsServiceBuildAllMatchesRejected(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	snapshotRepo := new(MockChampionStatsRepository)
	matchRepo.On("IDAtPercentile", mock.Anything, 70).Return(int64(1), nil)
	matchRepo.On("GetUpToID", mock.Anything, int64(1)).
		Return([]*models.Match{newMatch(1, blueRoster, redRoster, models.TeamNone)}, nil)

	svc := NewStatsService(matchRepo, snapshotRepo, quietLogger(), 70)
	_, err := svc.Build(context.Background())

	assert.ErrorIs(t, err, ErrNoTrainingMatches)
}

func TestStatsServiceBuildSeedsObservedPairs(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	snapshotRepo := new(MockChampionStatsRepository)

	matchRepo.On("IDAtPercentile", mock.Anything, 70).Return(int64(2), nil)
	matchRepo.On("GetUpToID", mock.Anything, int64(2)).Return([]*models.Match{
		newMatch(1, blueRoster, redRoster, models.TeamBlue),
		newMatch(2, models.Roster{11, 12, 13, 14, 15}, models.Roster{16, 17, 18, 19, 20}, models.TeamRed),
	}, nil)
	snapshotRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewStatsService(matchRepo, snapshotRepo, quietLogger(), 70)
	snapshot, err := svc.Build(context.Background())
	require.NoError(t, err)

	table, err := stats.Decode(snapshot.Data)
	require.NoError(t, err)
	assert.Equal(t, 20, table.Len())

	ws, err := table.Synergy(1, 11)
	require.NoError(t, err)
	assert.Equal(t, stats.WinStats{}, ws)

	ws, err = table.Matchup(1, 16)
	require.NoError(t, err)
	assert.Equal(t, stats.WinStats{}, ws)

	// observed counts are untouched by seeding
	ws, err = table.Synergy(1, 2)
	require.NoError(t, err)
	assert.Equal(t, stats.WinStats{Wins: 1, Games: 1}, ws)

	mixed := newMatch(3, models.Roster{1, 2, 3, 4, 11}, models.Roster{6, 7, 8, 9, 16}, models.TeamBlue)
	_, err = prediction.NewAggregator(nil).Aggregate(mixed, table)
	assert.NoError(t, err)
}
