package stats

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yourusername/champ-predictor/internal/models"
)

// ChampionStats is one champion's entry in the snapshot.
// Synergies are keyed by teammate, Matchups by opponent.
type ChampionStats struct {
	Winrate   WinStats                       `json:"winrate"`
	Synergies map[models.ChampionID]WinStats `json:"synergies"`
	Matchups  map[models.ChampionID]WinStats `json:"matchups"`
}

func (c ChampionStats) clone() ChampionStats {
	out := ChampionStats{
		Winrate:   c.Winrate,
		Synergies: make(map[models.ChampionID]WinStats, len(c.Synergies)),
		Matchups:  make(map[models.ChampionID]WinStats, len(c.Matchups)),
	}
	for id, ws := range c.Synergies {
		out.Synergies[id] = ws
	}
	for id, ws := range c.Matchups {
		out.Matchups[id] = ws
	}
	return out
}

// Table is an immutable statistics snapshot: champion -> relation -> champion -> WinStats.
// A Table is safe for concurrent reads; nothing mutates it after construction.
type Table struct {
	champions map[models.ChampionID]ChampionStats
}

// NewTable copies the given entries into a new snapshot
func NewTable(entries map[models.ChampionID]ChampionStats) *Table {
	champions := make(map[models.ChampionID]ChampionStats, len(entries))
	for id, cs := range entries {
		champions[id] = cs.clone()
	}
	return &Table{champions: champions}
}

// Len returns the number of champions in the snapshot
func (t *Table) Len() int {
	return len(t.champions)
}

// Champions returns the champion ids in ascending order
func (t *Table) Champions() []models.ChampionID {
	ids := make([]models.ChampionID, 0, len(t.champions))
	for id := range t.champions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Winrate returns a champion's overall record
func (t *Table) Winrate(id models.ChampionID) (WinStats, error) {
	cs, ok := t.champions[id]
	if !ok {
		return WinStats{}, &LookupError{Relation: RelationWinrate, First: id, Second: id, Reason: "champion not in snapshot"}
	}
	return cs.Winrate, nil
}

// Synergy returns the record of a and b playing on the same team, read from a's entry
func (t *Table) Synergy(a, b models.ChampionID) (WinStats, error) {
	return t.lookup(RelationSynergy, a, b)
}

// Matchup returns blue's record against red. Only the (blue, red) direction is
// stored for a query; the reverse entry is never consulted.
func (t *Table) Matchup(blue, red models.ChampionID) (WinStats, error) {
	return t.lookup(RelationMatchup, blue, red)
}

func (t *Table) lookup(rel Relation, first, second models.ChampionID) (WinStats, error) {
	cs, ok := t.champions[first]
	if !ok {
		return WinStats{}, &LookupError{Relation: rel, First: first, Second: second, Reason: "champion not in snapshot"}
	}
	var m map[models.ChampionID]WinStats
	if rel == RelationSynergy {
		m = cs.Synergies
	} else {
		m = cs.Matchups
	}
	ws, ok := m[second]
	if !ok {
		return WinStats{}, &LookupError{Relation: rel, First: first, Second: second, Reason: "pair not in snapshot"}
	}
	return ws, nil
}

// MarshalJSON encodes the table in the champion_stats.data layout
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.champions)
}

// UnmarshalJSON decodes the champion_stats.data layout and validates every record
func (t *Table) UnmarshalJSON(data []byte) error {
	var champions map[models.ChampionID]ChampionStats
	if err := json.Unmarshal(data, &champions); err != nil {
		return fmt.Errorf("failed to decode statistics table: %w", err)
	}
	for id, cs := range champions {
		if err := cs.Winrate.Validate(); err != nil {
			return fmt.Errorf("champion %d winrate: %w", id, err)
		}
		for other, ws := range cs.Synergies {
			if err := ws.Validate(); err != nil {
				return fmt.Errorf("synergy %d/%d: %w", id, other, err)
			}
		}
		for other, ws := range cs.Matchups {
			if err := ws.Validate(); err != nil {
				return fmt.Errorf("matchup %d/%d: %w", id, other, err)
			}
		}
	}
	t.champions = champions
	return nil
}

// Decode parses a persisted snapshot payload
func Decode(data []byte) (*Table, error) {
	t := &Table{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}
