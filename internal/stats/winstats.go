// Package stats holds the pair-statistics snapshot used to predict drafts.
package stats

import (
	"errors"
	"fmt"
)

// ErrInvalidStats is returned for counts that cannot describe observed games
var ErrInvalidStats = errors.New("invalid win stats")

// WinStats counts observed games and wins for one champion pair
type WinStats struct {
	Wins  int `json:"wins"`
	Games int `json:"games"`
}

// Validate checks 0 <= wins <= games
func (w WinStats) Validate() error {
	if w.Wins < 0 || w.Games < 0 {
		return fmt.Errorf("%w: negative count (wins=%d, games=%d)", ErrInvalidStats, w.Wins, w.Games)
	}
	if w.Wins > w.Games {
		return fmt.Errorf("%w: wins %d exceed games %d", ErrInvalidStats, w.Wins, w.Games)
	}
	return nil
}

// Losses returns games - wins
func (w WinStats) Losses() int {
	return w.Games - w.Wins
}

// Record adds one game to the counts
func (w *WinStats) Record(won bool) {
	w.Games++
	if won {
		w.Wins++
	}
}

// Relation names which map of a champion's entry a pair is read from
type Relation string

const (
	RelationSynergy Relation = "synergies"
	RelationMatchup Relation = "matchups"
	RelationWinrate Relation = "winrate"
)
