package models

import (
	"time"
)

// ChampionID identifies a draftable champion by its Riot champion key.
type ChampionID int32

// Team is one side of a match.
type Team string

const (
	TeamBlue Team = "blue"
	TeamRed  Team = "red"
	// TeamNone marks a match whose outcome has not been recorded yet
	TeamNone Team = ""
)

// RosterSize is the number of champions on each side of a match
const RosterSize = 5

// Roster is the ordered list of champions picked by one side.
type Roster []ChampionID

// Contains reports whether the champion was picked in this roster
func (r Roster) Contains(id ChampionID) bool {
	for _, c := range r {
		if c == id {
			return true
		}
	}
	return false
}

// Match represents a recorded 5v5 match
type Match struct {
	ID          int64     `db:"id" json:"id"`
	MatchID     string    `db:"match_id" json:"match_id" validate:"required"`
	GameStart   time.Time `db:"game_start" json:"game_start"`
	GameVersion string    `db:"game_version" json:"game_version"`
	QueueID     int32     `db:"queue_id" json:"queue_id"`
	ServerID    string    `db:"server_id" json:"server_id"`
	Blue        Roster    `db:"-" json:"blue" validate:"len=5"`
	Red         Roster    `db:"-" json:"red" validate:"len=5"`
	WinningTeam Team      `db:"winning_team" json:"winning_team" validate:"omitempty,oneof=blue red"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// IsDecided reports whether the match has a recorded winner
func (m *Match) IsDecided() bool {
	return m.WinningTeam == TeamBlue || m.WinningTeam == TeamRed
}

// BlueWon reports whether the blue side won the match
func (m *Match) BlueWon() bool {
	return m.WinningTeam == TeamBlue
}

// Outcome returns the ground-truth label used for evaluation: 1 when blue won, 0 otherwise.
func (m *Match) Outcome() (int, error) {
	if !m.IsDecided() {
		return 0, ErrUndecidedMatch
	}
	if m.BlueWon() {
		return 1, nil
	}
	return 0, nil
}

// Label returns a human readable identifier for logs and errors
func (m *Match) Label() string {
	if m.MatchID != "" {
		return m.MatchID
	}
	return "unsaved"
}
