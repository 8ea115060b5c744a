// Package prediction combines pair statistics into a blue-side win probability.
package prediction

import (
	"errors"

	"github.com/yourusername/champ-predictor/internal/draft"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/stats"
	"github.com/yourusername/champ-predictor/internal/winrate"
)

// Summary holds the three per-match signals
type Summary struct {
	BlueSynergy float64 `json:"blue_synergy"`
	RedSynergy  float64 `json:"red_synergy"`
	BlueMatchup float64 `json:"blue_matchup"`
}

// Aggregator resolves every pair of a match against a snapshot
type Aggregator struct {
	estimator *winrate.Estimator
}

// NewAggregator creates an aggregator; a nil estimator uses winrate.Default()
func NewAggregator(estimator *winrate.Estimator) *Aggregator {
	if estimator == nil {
		estimator = winrate.Default()
	}
	return &Aggregator{estimator: estimator}
}

// Aggregate computes blue synergy, red synergy and blue matchup strength.
// Any missing pair aborts the match with a *stats.LookupError carrying the match id.
func (a *Aggregator) Aggregate(match *models.Match, table *stats.Table) (Summary, error) {
	if err := draft.ValidateMatch(match); err != nil {
		return Summary{}, err
	}

	blueSynergy, err := a.synergy(match, match.Blue, table)
	if err != nil {
		return Summary{}, err
	}
	redSynergy, err := a.synergy(match, match.Red, table)
	if err != nil {
		return Summary{}, err
	}

	cross, err := draft.CrossPairs(match.Blue, match.Red)
	if err != nil {
		return Summary{}, err
	}
	rates := make([]float64, 0, len(cross))
	for _, p := range cross {
		ws, err := table.Matchup(p.First, p.Second)
		if err != nil {
			return Summary{}, withMatch(err, match)
		}
		rates = append(rates, a.estimator.Estimate(ws))
	}

	return Summary{
		BlueSynergy: blueSynergy,
		RedSynergy:  redSynergy,
		BlueMatchup: mean(rates),
	}, nil
}

func (a *Aggregator) synergy(match *models.Match, roster models.Roster, table *stats.Table) (float64, error) {
	pairs, err := draft.UnorderedPairs(roster)
	if err != nil {
		return 0, err
	}
	rates := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		ws, err := table.Synergy(p.First, p.Second)
		if err != nil {
			return 0, withMatch(err, match)
		}
		rates = append(rates, a.estimator.Estimate(ws))
	}
	return mean(rates), nil
}

func withMatch(err error, match *models.Match) error {
	var lookupErr *stats.LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.WithMatch(match.Label())
	}
	return err
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
