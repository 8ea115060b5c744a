package prediction

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/stats"
)

// Prediction is the outcome of scoring one match
type Prediction struct {
	MatchID       string           `json:"match_id"`
	Summary       Summary          `json:"summary"`
	Probabilities map[Rule]float64 `json:"probabilities"`
}

// Probability returns the blue win probability under the given rule
func (p Prediction) Probability(rule Rule) float64 {
	return p.Probabilities[rule]
}

// Predictor scores matches against one immutable snapshot
type Predictor struct {
	aggregator *Aggregator
	table      *stats.Table
	workers    int
}

// NewPredictor binds an aggregator to a snapshot. workers <= 0 uses GOMAXPROCS.
func NewPredictor(aggregator *Aggregator, table *stats.Table, workers int) *Predictor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if aggregator == nil {
		aggregator = NewAggregator(nil)
	}
	return &Predictor{aggregator: aggregator, table: table, workers: workers}
}

// Predict scores one match under every rule
func (p *Predictor) Predict(match *models.Match) (Prediction, error) {
	summary, err := p.aggregator.Aggregate(match, p.table)
	if err != nil {
		return Prediction{}, err
	}
	pred := Prediction{
		MatchID:       match.Label(),
		Summary:       summary,
		Probabilities: make(map[Rule]float64, len(Rules)),
	}
	for _, rule := range Rules {
		prob, err := Combine(rule, summary)
		if err != nil {
			return Prediction{}, err
		}
		pred.Probabilities[rule] = prob
	}
	return pred, nil
}

// BatchResult pairs a match with its prediction or the error that abandoned it
type BatchResult struct {
	Match      *models.Match
	Prediction Prediction
	Err        error
}

// PredictBatch scores matches in parallel. Results keep input order; a failed
// match carries its error and does not stop the others. The batch itself only
// fails when ctx is cancelled.
func (p *Predictor) PredictBatch(ctx context.Context, matches []*models.Match) ([]BatchResult, error) {
	results := make([]BatchResult, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, match := range matches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pred, err := p.Predict(match)
			results[i] = BatchResult{Match: match, Prediction: pred, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("prediction batch cancelled: %w", err)
	}
	return results, nil
}
