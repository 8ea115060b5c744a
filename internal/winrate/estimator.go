// Package winrate turns raw pair counts into smoothed win probabilities.
package winrate

import (
	"errors"
	"fmt"

	"github.com/yourusername/champ-predictor/internal/stats"
)

const (
	// DefaultPriorWins and DefaultPriorGames are the pseudo-counts blended into
	// every estimate; their ratio (0.5) is the prior mean.
	DefaultPriorWins  = 5.0
	DefaultPriorGames = 10.0

	// NeutralRate is returned for pairs with no games under PolicyNeutral
	NeutralRate = 0.5
)

// ErrInvalidPrior is returned when the prior cannot produce a probability
var ErrInvalidPrior = errors.New("invalid smoothing prior")

// ZeroGamesPolicy selects how a pair with no recorded games is estimated
type ZeroGamesPolicy string

const (
	// PolicySmoothed applies the additive formula unchanged, giving the prior mean
	PolicySmoothed ZeroGamesPolicy = "smoothed"
	// PolicyNeutral returns exactly NeutralRate
	PolicyNeutral ZeroGamesPolicy = "neutral"
)

// ParsePolicy converts a configuration value into a policy
func ParsePolicy(s string) (ZeroGamesPolicy, error) {
	switch ZeroGamesPolicy(s) {
	case PolicySmoothed, PolicyNeutral:
		return ZeroGamesPolicy(s), nil
	case "":
		return PolicySmoothed, nil
	default:
		return "", fmt.Errorf("unknown zero games policy %q", s)
	}
}

// Estimator computes (wins + priorWins) / (games + priorGames)
type Estimator struct {
	priorWins  float64
	priorGames float64
	policy     ZeroGamesPolicy
}

// NewEstimator validates the prior: priorGames > 0 and 0 <= priorWins <= priorGames
func NewEstimator(priorWins, priorGames float64, policy ZeroGamesPolicy) (*Estimator, error) {
	if priorGames <= 0 {
		return nil, fmt.Errorf("%w: prior games must be positive, got %v", ErrInvalidPrior, priorGames)
	}
	if priorWins < 0 || priorWins > priorGames {
		return nil, fmt.Errorf("%w: prior wins %v outside [0, %v]", ErrInvalidPrior, priorWins, priorGames)
	}
	if policy == "" {
		policy = PolicySmoothed
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, err
	}
	return &Estimator{priorWins: priorWins, priorGames: priorGames, policy: policy}, nil
}

// Default returns the reference estimator: prior 5/10, smoothed zero-game policy
func Default() *Estimator {
	return &Estimator{priorWins: DefaultPriorWins, priorGames: DefaultPriorGames, policy: PolicySmoothed}
}

// Policy returns the zero-game policy in use
func (e *Estimator) Policy() ZeroGamesPolicy {
	return e.policy
}

// PriorMean is the estimate for a pair without data under PolicySmoothed
func (e *Estimator) PriorMean() float64 {
	return e.priorWins / e.priorGames
}

// Estimate returns the smoothed win rate in [0, 1]
func (e *Estimator) Estimate(ws stats.WinStats) float64 {
	if ws.Games == 0 && e.policy == PolicyNeutral {
		return NeutralRate
	}
	rate := (float64(ws.Wins) + e.priorWins) / (float64(ws.Games) + e.priorGames)
	switch {
	case rate < 0:
		return 0
	case rate > 1:
		return 1
	}
	return rate
}
