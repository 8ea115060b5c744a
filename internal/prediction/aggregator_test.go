package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/champ-predictor/internal/draft"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/stats"
)

func TestAggregateFixture(t *testing.T) {
	summary, err := NewAggregator(nil).Aggregate(fixtureMatch("EUW1_1"), fixtureTable())
	require.NoError(t, err)

	assert.InDelta(t, 0.5, summary.BlueSynergy, 1e-12)
	assert.InDelta(t, 0.6, summary.RedSynergy, 1e-12)
	assert.InDelta(t, 0.5, summary.BlueMatchup, 1e-12)

	assert.InDelta(t, 0.4667, Average(summary), 1e-4)
	assert.InDelta(t, 0.475, Weighted(summary), 1e-12)
}

func TestAggregateMissingPairCarriesMatch(t *testing.T) {
	match := fixtureMatch("KR_77")
	// swapping two blue picks asks for synergies in the ordering the table lacks
	match.Blue[0], match.Blue[1] = match.Blue[1], match.Blue[0]

	_, err := NewAggregator(nil).Aggregate(match, fixtureTable())
	require.ErrorIs(t, err, stats.ErrLookupFailure)

	var lookupErr *stats.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "KR_77", lookupErr.MatchID)
	assert.Equal(t, stats.RelationSynergy, lookupErr.Relation)
	assert.Equal(t, models.ChampionID(103), lookupErr.First)
	assert.Equal(t, models.ChampionID(266), lookupErr.Second)
}

func TestAggregateMissingMatchup(t *testing.T) {
	match := fixtureMatch("KR_78")
	match.Red[4] = 999

	_, err := NewAggregator(nil).Aggregate(match, fixtureTable())
	var lookupErr *stats.LookupError
	require.ErrorAs(t, err, &lookupErr)
	// red synergies fail before matchups are resolved
	assert.Equal(t, stats.RelationSynergy, lookupErr.Relation)

	table := fixtureTable()
	entries := map[models.ChampionID]stats.ChampionStats{}
	for _, id := range table.Champions() {
		cs := stats.ChampionStats{Synergies: map[models.ChampionID]stats.WinStats{}, Matchups: map[models.ChampionID]stats.WinStats{}}
		for _, other := range table.Champions() {
			if ws, err := table.Synergy(id, other); err == nil {
				cs.Synergies[other] = ws
			}
			if ws, err := table.Matchup(id, other); err == nil && other != redRoster[2] {
				cs.Matchups[other] = ws
			}
		}
		entries[id] = cs
	}
	_, err = NewAggregator(nil).Aggregate(fixtureMatch("KR_79"), stats.NewTable(entries))
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, stats.RelationMatchup, lookupErr.Relation)
	assert.Equal(t, blueRoster[0], lookupErr.First)
	assert.Equal(t, redRoster[2], lookupErr.Second)
	assert.Equal(t, "KR_79", lookupErr.MatchID)
}

func TestAggregateMalformedRoster(t *testing.T) {
	match := fixtureMatch("NA1_5")
	match.Red = match.Red[:4]

	_, err := NewAggregator(nil).Aggregate(match, fixtureTable())
	assert.ErrorIs(t, err, draft.ErrMalformedRoster)
}
