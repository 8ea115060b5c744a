package stats

import (
	"fmt"

	"github.com/yourusername/champ-predictor/internal/draft"
	"github.com/yourusername/champ-predictor/internal/models"
)

// Builder accumulates decided matches into a statistics table.
// Every champion records its teammates and opponents, so synergies exist in
// both orderings and matchups exist from both sides.
type Builder struct {
	champions map[models.ChampionID]ChampionStats
	matches   int
	lastID    int64
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{champions: make(map[models.ChampionID]ChampionStats)}
}

// Seed registers known champions and fills every pair between them with zero
// counts, so a pair that was never observed resolves to {0, 0} instead of
// failing the lookup.
func (b *Builder) Seed(ids []models.ChampionID) {
	for _, id := range ids {
		b.entry(id)
	}
	for id, cs := range b.champions {
		for other := range b.champions {
			if other == id {
				continue
			}
			if _, ok := cs.Synergies[other]; !ok {
				cs.Synergies[other] = WinStats{}
			}
			if _, ok := cs.Matchups[other]; !ok {
				cs.Matchups[other] = WinStats{}
			}
		}
	}
}

func (b *Builder) entry(id models.ChampionID) ChampionStats {
	cs, ok := b.champions[id]
	if !ok {
		cs = ChampionStats{
			Synergies: make(map[models.ChampionID]WinStats),
			Matchups:  make(map[models.ChampionID]WinStats),
		}
		b.champions[id] = cs
	}
	return cs
}

// Add records one decided match
func (b *Builder) Add(match *models.Match) error {
	if err := draft.ValidateMatch(match); err != nil {
		return err
	}
	if !match.IsDecided() {
		return fmt.Errorf("match %s: %w", match.Label(), models.ErrUndecidedMatch)
	}
	blueWon := match.BlueWon()
	b.addSide(match.Blue, match.Red, blueWon)
	b.addSide(match.Red, match.Blue, !blueWon)

	b.matches++
	if match.ID > b.lastID {
		b.lastID = match.ID
	}
	return nil
}

func (b *Builder) addSide(team, opponents models.Roster, won bool) {
	for _, id := range team {
		cs := b.entry(id)
		for _, mate := range team {
			if mate == id {
				continue
			}
			ws := cs.Synergies[mate]
			ws.Record(won)
			cs.Synergies[mate] = ws
		}
		for _, opp := range opponents {
			ws := cs.Matchups[opp]
			ws.Record(won)
			cs.Matchups[opp] = ws
		}
		cs.Winrate.Record(won)
		b.champions[id] = cs
	}
}

// Matches returns how many matches were added
func (b *Builder) Matches() int {
	return b.matches
}

// LastMatchID returns the highest database id seen
func (b *Builder) LastMatchID() int64 {
	return b.lastID
}

// Table returns a snapshot of the current counts. The builder can keep adding
// matches without affecting returned tables.
func (b *Builder) Table() *Table {
	return NewTable(b.champions)
}
