// Package draft enumerates the champion pairs of a 5v5 draft.
//
// Enumeration order is part of the contract: pairs follow roster order so that
// fixtures built from the same draft are reproducible.
package draft

import (
	"errors"
	"fmt"

	"github.com/yourusername/champ-predictor/internal/models"
)

// ErrMalformedRoster is wrapped by every roster validation failure
var ErrMalformedRoster = errors.New("malformed roster")

// RosterError describes why a roster was rejected
type RosterError struct {
	Side   models.Team
	Size   int
	Reason string
}

func (e *RosterError) Error() string {
	side := string(e.Side)
	if side == "" {
		side = "roster"
	}
	return fmt.Sprintf("%s: %s (size %d)", side, e.Reason, e.Size)
}

func (e *RosterError) Unwrap() error {
	return ErrMalformedRoster
}

// Pair is two champions. For cross pairs First is the blue champion.
type Pair struct {
	First  models.ChampionID
	Second models.ChampionID
}

// ValidateRoster checks that a roster holds exactly five distinct champions
func ValidateRoster(side models.Team, roster models.Roster) error {
	if len(roster) != models.RosterSize {
		return &RosterError{Side: side, Size: len(roster), Reason: fmt.Sprintf("expected %d champions", models.RosterSize)}
	}
	seen := make(map[models.ChampionID]struct{}, len(roster))
	for _, id := range roster {
		if _, dup := seen[id]; dup {
			return &RosterError{Side: side, Size: len(roster), Reason: fmt.Sprintf("champion %d picked twice", id)}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ValidateMatch checks both rosters and that no champion is on both sides
func ValidateMatch(match *models.Match) error {
	if err := ValidateRoster(models.TeamBlue, match.Blue); err != nil {
		return fmt.Errorf("match %s: %w", match.Label(), err)
	}
	if err := ValidateRoster(models.TeamRed, match.Red); err != nil {
		return fmt.Errorf("match %s: %w", match.Label(), err)
	}
	for _, id := range match.Blue {
		if match.Red.Contains(id) {
			err := &RosterError{Side: models.TeamRed, Size: len(match.Red), Reason: fmt.Sprintf("champion %d on both teams", id)}
			return fmt.Errorf("match %s: %w", match.Label(), err)
		}
	}
	return nil
}

// UnorderedPairs returns the 10 same-team pairs of a roster: (0,1), (0,2), ..., (3,4)
func UnorderedPairs(roster models.Roster) ([]Pair, error) {
	if err := ValidateRoster(models.TeamNone, roster); err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(roster)*(len(roster)-1)/2)
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			pairs = append(pairs, Pair{First: roster[i], Second: roster[j]})
		}
	}
	return pairs, nil
}

// CrossPairs returns the 25 (blue, red) pairs, blue outer and red inner
func CrossPairs(blue, red models.Roster) ([]Pair, error) {
	if err := ValidateRoster(models.TeamBlue, blue); err != nil {
		return nil, err
	}
	if err := ValidateRoster(models.TeamRed, red); err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(blue)*len(red))
	for _, b := range blue {
		for _, r := range red {
			pairs = append(pairs, Pair{First: b, Second: r})
		}
	}
	return pairs, nil
}
