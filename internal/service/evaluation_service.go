package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/cache"
	"github.com/yourusername/champ-predictor/internal/draft"
	"github.com/yourusername/champ-predictor/internal/evaluation"
	"github.com/yourusername/champ-predictor/internal/logger"
	"github.com/yourusername/champ-predictor/internal/metrics"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/repository"
	"github.com/yourusername/champ-predictor/internal/stats"
)

// ErrNoHoldoutMatches is returned when nothing was stored after the snapshot's cut-off
var ErrNoHoldoutMatches = errors.New("no hold-out matches to evaluate")

// EvaluationRun is the outcome of scoring every rule against one snapshot
type EvaluationRun struct {
	Snapshot *models.ChampionStatsSnapshot
	Reports  map[prediction.Rule]*evaluation.Report
	Results  []*models.EvaluationResult
	Scored   int
	Skipped  int
}

// RuleNames returns the evaluated rules in the order given to Evaluate
func (r *EvaluationRun) RuleNames() []string {
	names := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		names = append(names, res.Rule)
	}
	return names
}

// ReportsByName keys the reports by rule name for the console reporter
func (r *EvaluationRun) ReportsByName() map[string]*evaluation.Report {
	out := make(map[string]*evaluation.Report, len(r.Reports))
	for rule, report := range r.Reports {
		out[string(rule)] = report
	}
	return out
}

// EvaluationService scores the latest snapshot against the matches held out from it
type EvaluationService struct {
	matchRepo      repository.MatchRepository
	snapshotRepo   repository.ChampionStatsRepository
	evaluationRepo repository.EvaluationRepository
	snapshots      *cache.SnapshotCache
	aggregator     *prediction.Aggregator
	workers        int
	logger         *logger.PredictionLogger
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	repos *repository.Repositories,
	snapshots *cache.SnapshotCache,
	aggregator *prediction.Aggregator,
	workers int,
	log *logrus.Logger,
) *EvaluationService {
	return &EvaluationService{
		matchRepo:      repos.Match,
		snapshotRepo:   repos.ChampionStats,
		evaluationRepo: repos.Evaluation,
		snapshots:      snapshots,
		aggregator:     aggregator,
		workers:        workers,
		logger:         logger.NewPredictionLogger(log),
	}
}

// Evaluate predicts every hold-out match with each rule, computes the
// accuracy metrics and persists one result per rule. Matches that cannot be
// scored are skipped and counted.
func (s *EvaluationService) Evaluate(ctx context.Context, rules []prediction.Rule) (*EvaluationRun, error) {
	if len(rules) == 0 {
		rules = prediction.Rules
	}

	snapshot, table, err := latestTable(ctx, s.snapshotRepo, s.snapshots)
	if err != nil {
		return nil, err
	}

	holdout, err := s.matchRepo.GetAboveID(ctx, snapshot.LastMatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hold-out matches: %w", err)
	}
	if len(holdout) == 0 {
		return nil, ErrNoHoldoutMatches
	}

	start := time.Now()
	predictor := prediction.NewPredictor(s.aggregator, table, s.workers)
	results, err := predictor.PredictBatch(ctx, holdout)
	if err != nil {
		return nil, err
	}
	metrics.RecordBatchDuration(time.Since(start).Seconds())

	run := &EvaluationRun{
		Snapshot: snapshot,
		Reports:  make(map[prediction.Rule]*evaluation.Report, len(rules)),
	}

	var outcomes []int
	probabilities := make(map[prediction.Rule][]float64, len(rules))
	for _, res := range results {
		if res.Err != nil {
			run.Skipped++
			s.recordSkip(res.Match, res.Err)
			continue
		}
		outcome, err := res.Match.Outcome()
		if err != nil {
			run.Skipped++
			s.recordSkip(res.Match, err)
			continue
		}

		outcomes = append(outcomes, outcome)
		for _, rule := range rules {
			probabilities[rule] = append(probabilities[rule], res.Prediction.Probability(rule))
			metrics.RecordPrediction(string(rule))
		}
	}
	run.Scored = len(outcomes)
	s.logger.LogBatchSummary(len(holdout), run.Scored, run.Skipped, float64(time.Since(start).Milliseconds()))

	if run.Scored == 0 {
		return nil, fmt.Errorf("all %d hold-out matches were skipped: %w", len(holdout), ErrNoHoldoutMatches)
	}

	for _, rule := range rules {
		report, err := evaluation.Evaluate(outcomes, probabilities[rule])
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate rule %s: %w", rule, err)
		}
		report.WithExtra("skipped_matches", float64(run.Skipped))
		run.Reports[rule] = report

		result := &models.EvaluationResult{
			SnapshotID:   snapshot.ID,
			Rule:         string(rule),
			MatchCount:   report.Samples,
			SkippedCount: run.Skipped,
			Accuracy:     report.Accuracy,
			Precision:    report.Precision,
			Recall:       report.Recall,
			ROCAUC:       report.ROCAUC,
		}
		if err := s.evaluationRepo.Save(ctx, result); err != nil {
			return nil, err
		}
		run.Results = append(run.Results, result)

		metrics.RecordEvaluation(string(rule), report.Accuracy, report.ROCAUC)
		s.logger.LogEvaluationReport(snapshot.ID.String(), string(rule), report.Samples,
			report.Accuracy, report.Precision, report.Recall, report.ROCAUC)
	}

	return run, nil
}

func (s *EvaluationService) recordSkip(match *models.Match, err error) {
	var lookupErr *stats.LookupError
	if errors.As(err, &lookupErr) {
		metrics.RecordLookupFailure(string(lookupErr.Relation))
	}
	metrics.RecordMatchSkipped(skipReason(err))
	s.logger.LogMatchSkipped(match.Label(), err)
}

// skipReason maps an error to the matches_skipped_total reason label
func skipReason(err error) string {
	switch {
	case errors.Is(err, stats.ErrLookupFailure):
		return "lookup_failure"
	case errors.Is(err, draft.ErrMalformedRoster):
		return "malformed_roster"
	case errors.Is(err, models.ErrUndecidedMatch):
		return "undecided"
	default:
		return "other"
	}
}

// latestTable loads the newest snapshot and its decoded table
func latestTable(ctx context.Context, repo repository.ChampionStatsRepository, snapshots *cache.SnapshotCache) (*models.ChampionStatsSnapshot, *stats.Table, error) {
	snapshot, err := repo.GetLatest(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	table, err := snapshots.Decode(snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot %s: %w", snapshot.ID, err)
	}

	return snapshot, table, nil
}
