package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/champ-predictor/internal/cache"
	"github.com/yourusername/champ-predictor/internal/evaluation"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/repository"
	"github.com/yourusername/champ-predictor/internal/stats"
)

// evenSnapshot has every pair between the two rosters at one win in two games,
// so every draft between them predicts exactly 0.5
func evenSnapshot(t *testing.T) *models.ChampionStatsSnapshot {
	t.Helper()
	builder := stats.NewBuilder()
	require.NoError(t, builder.Add(newMatch(1, blueRoster, redRoster, models.TeamBlue)))
	require.NoError(t, builder.Add(newMatch(2, blueRoster, redRoster, models.TeamRed)))

	data, err := json.Marshal(builder.Table())
	require.NoError(t, err)

	return &models.ChampionStatsSnapshot{
		ID:          uuid.New(),
		Data:        data,
		LastMatchID: 2,
		MatchCount:  2,
	}
}

type evaluationFixture struct {
	matchRepo      *MockMatchRepository
	snapshotRepo   *MockChampionStatsRepository
	evaluationRepo *MockEvaluationRepository
	svc            *EvaluationService
}

func newEvaluationFixture() *evaluationFixture {
	f := &evaluationFixture{
		matchRepo:      new(MockMatchRepository),
		snapshotRepo:   new(MockChampionStatsRepository),
		evaluationRepo: new(MockEvaluationRepository),
	}
	repos := &repository.Repositories{
		Match:         f.matchRepo,
		ChampionStats: f.snapshotRepo,
		Evaluation:    f.evaluationRepo,
	}
	f.svc = NewEvaluationService(repos, cache.NewSnapshotCache(time.Minute),
		prediction.NewAggregator(nil), 2, quietLogger())
	return f
}

func TestEvaluationServiceEvaluate(t *testing.T) {
	f := newEvaluationFixture()
	snapshot := evenSnapshot(t)

	holdout := []*models.Match{
		newMatch(3, blueRoster, redRoster, models.TeamBlue),
		newMatch(4, blueRoster, redRoster, models.TeamRed),
		newMatch(5, models.Roster{1, 2, 3, 4, 99}, redRoster, models.TeamBlue),
	}
	f.snapshotRepo.On("GetLatest", mock.Anything).Return(snapshot, nil)
	f.matchRepo.On("GetAboveID", mock.Anything, int64(2)).Return(holdout, nil)
	f.evaluationRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.EvaluationResult")).Return(nil).Twice()

	run, err := f.svc.Evaluate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, run.Scored)
	assert.Equal(t, 1, run.Skipped)
	assert.Equal(t, []string{"average", "weighted"}, run.RuleNames())

	for _, rule := range prediction.Rules {
		report := run.Reports[rule]
		require.NotNil(t, report, rule)
		// 0.5 is not above the threshold, so both matches are predicted as red wins
		assert.Equal(t, 0.5, report.Accuracy)
		assert.Equal(t, 0.0, report.Precision)
		assert.Equal(t, 0.0, report.Recall)
		assert.Equal(t, 0.5, report.ROCAUC)
		assert.Equal(t, 1.0, report.Extras["skipped_matches"])
	}

	for _, res := range run.Results {
		assert.Equal(t, snapshot.ID, res.SnapshotID)
		assert.Equal(t, 2, res.MatchCount)
		assert.Equal(t, 1, res.SkippedCount)
	}

	assert.Contains(t, evaluation.GenerateConsoleReport(run.RuleNames(), run.ReportsByName()), "weighted")
	f.evaluationRepo.AssertExpectations(t)
}

func TestEvaluationServiceScoresUnplayedPairs(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	snapshotRepo := new(MockChampionStatsRepository)
	matchRepo.On("IDAtPercentile", mock.Anything, 70).Return(int64(2), nil)
	matchRepo.On("GetUpToID", mock.Anything, int64(2)).Return([]*models.Match{
		newMatch(1, blueRoster, redRoster, models.TeamBlue),
		newMatch(2, models.Roster{11, 12, 13, 14, 15}, models.Roster{16, 17, 18, 19, 20}, models.TeamRed),
	}, nil)
	var built *models.ChampionStatsSnapshot
	snapshotRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		built = args.Get(1).(*models.ChampionStatsSnapshot)
	}).Return(nil)

	_, err := NewStatsService(matchRepo, snapshotRepo, quietLogger(), 70).Build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, built)

	f := newEvaluationFixture()
	f.snapshotRepo.On("GetLatest", mock.Anything).Return(built, nil)
	f.matchRepo.On("GetAboveID", mock.Anything, int64(2)).Return([]*models.Match{
		newMatch(3, models.Roster{1, 2, 3, 4, 11}, models.Roster{6, 7, 8, 9, 16}, models.TeamBlue),
		newMatch(4, models.Roster{11, 12, 13, 14, 1}, models.Roster{16, 17, 18, 19, 6}, models.TeamRed),
	}, nil)
	f.evaluationRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	run, err := f.svc.Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Scored)
	assert.Equal(t, 0, run.Skipped)
}

func TestEvaluationServiceSingleRule(t *testing.T) {
	f := newEvaluationFixture()
	f.snapshotRepo.On("GetLatest", mock.Anything).Return(evenSnapshot(t), nil)
	f.matchRepo.On("GetAboveID", mock.Anything, int64(2)).Return([]*models.Match{
		newMatch(3, blueRoster, redRoster, models.TeamBlue),
		newMatch(4, blueRoster, redRoster, models.TeamRed),
	}, nil)
	f.evaluationRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	run, err := f.svc.Evaluate(context.Background(), []prediction.Rule{prediction.RuleWeighted})
	require.NoError(t, err)

	assert.Len(t, run.Reports, 1)
	assert.Equal(t, []string{"weighted"}, run.RuleNames())
	f.evaluationRepo.AssertExpectations(t)
}

func TestEvaluationServiceUndefinedMetric(t *testing.T) {
	f := newEvaluationFixture()
	f.snapshotRepo.On("GetLatest", mock.Anything).Return(evenSnapshot(t), nil)
	f.matchRepo.On("GetAboveID", mock.Anything, int64(2)).Return([]*models.Match{
		newMatch(3, blueRoster, redRoster, models.TeamBlue),
		newMatch(4, blueRoster, redRoster, models.TeamBlue),
	}, nil)

	_, err := f.svc.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, evaluation.ErrUndefinedMetric)
	f.evaluationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEvaluationServiceNoHoldout(t *testing.T) {
	f := newEvaluationFixture()
	f.snapshotRepo.On("GetLatest", mock.Anything).Return(evenSnapshot(t), nil)
	f.matchRepo.On("GetAboveID", mock.Anything, int64(2)).Return([]*models.Match{}, nil)

	_, err := f.svc.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoHoldoutMatches)
}

func TestEvaluationServiceMissingSnapshot(t *testing.T) {
	f := newEvaluationFixture()
	f.snapshotRepo.On("GetLatest", mock.Anything).Return(nil, models.ErrNotFound)

	_, err := f.svc.Evaluate(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSkipReason(t *testing.T) {
	assert.Equal(t, "undecided", skipReason(models.ErrUndecidedMatch))
	assert.Equal(t, "lookup_failure", skipReason(&stats.LookupError{Relation: stats.RelationSynergy}))
	assert.Equal(t, "other", skipReason(assert.AnError))
}
