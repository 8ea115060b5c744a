package winrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/champ-predictor/internal/stats"
)

func TestEstimateReferenceValues(t *testing.T) {
	e := Default()

	tests := []struct {
		name     string
		ws       stats.WinStats
		expected float64
	}{
		{"prior mean", stats.WinStats{Wins: 5, Games: 10}, 0.5},
		{"above average", stats.WinStats{Wins: 7, Games: 10}, 0.6},
		{"all losses", stats.WinStats{Wins: 0, Games: 10}, 0.25},
		{"all wins", stats.WinStats{Wins: 10, Games: 10}, 0.75},
		{"large sample dominates", stats.WinStats{Wins: 900, Games: 1000}, 905.0 / 1010.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, e.Estimate(tt.ws), 1e-12)
		})
	}
}

func TestEstimateZeroGamesPolicies(t *testing.T) {
	smoothed, err := NewEstimator(5, 10, PolicySmoothed)
	require.NoError(t, err)
	assert.Equal(t, smoothed.PriorMean(), smoothed.Estimate(stats.WinStats{}))
	assert.Equal(t, 0.5, smoothed.Estimate(stats.WinStats{}))

	neutral, err := NewEstimator(5, 10, PolicyNeutral)
	require.NoError(t, err)
	assert.Equal(t, NeutralRate, neutral.Estimate(stats.WinStats{}))

	// the policies only differ when the prior mean is not 0.5
	skewedSmoothed, err := NewEstimator(3, 10, PolicySmoothed)
	require.NoError(t, err)
	skewedNeutral, err := NewEstimator(3, 10, PolicyNeutral)
	require.NoError(t, err)
	assert.Equal(t, 0.3, skewedSmoothed.Estimate(stats.WinStats{}))
	assert.Equal(t, 0.5, skewedNeutral.Estimate(stats.WinStats{}))

	// policies agree once games exist
	ws := stats.WinStats{Wins: 2, Games: 4}
	assert.Equal(t, skewedSmoothed.Estimate(ws), skewedNeutral.Estimate(ws))
}

func TestEstimateBoundsAndMonotonicity(t *testing.T) {
	e := Default()
	for games := 1; games <= 60; games++ {
		prev := -1.0
		for wins := 0; wins <= games; wins++ {
			rate := e.Estimate(stats.WinStats{Wins: wins, Games: games})
			require.False(t, math.IsNaN(rate))
			require.Greater(t, rate, 0.0)
			require.Less(t, rate, 1.0)
			require.GreaterOrEqual(t, rate, prev, "wins=%d games=%d", wins, games)
			prev = rate
		}
	}
}

func TestNewEstimatorValidation(t *testing.T) {
	_, err := NewEstimator(5, 0, PolicySmoothed)
	assert.ErrorIs(t, err, ErrInvalidPrior)

	_, err = NewEstimator(11, 10, PolicySmoothed)
	assert.ErrorIs(t, err, ErrInvalidPrior)

	_, err = NewEstimator(5, 10, "sometimes")
	assert.Error(t, err)

	e, err := NewEstimator(5, 10, "")
	require.NoError(t, err)
	assert.Equal(t, PolicySmoothed, e.Policy())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("neutral")
	require.NoError(t, err)
	assert.Equal(t, PolicyNeutral, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicySmoothed, p)

	_, err = ParsePolicy("zero")
	assert.Error(t, err)
}
