package stats

import (
	"errors"
	"fmt"

	"github.com/yourusername/champ-predictor/internal/models"
)

// ErrLookupFailure is wrapped by every missing-pair error
var ErrLookupFailure = errors.New("statistics lookup failed")

// LookupError reports a pair that could not be resolved from the snapshot.
// MatchID is empty until the caller attaches the match context.
type LookupError struct {
	Relation Relation
	First    models.ChampionID
	Second   models.ChampionID
	MatchID  string
	Reason   string
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s lookup (%d, %d): %s", e.Relation, e.First, e.Second, e.Reason)
	if e.MatchID != "" {
		msg += " in match " + e.MatchID
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return ErrLookupFailure
}

// WithMatch returns a copy of the error carrying the match identifier
func (e *LookupError) WithMatch(matchID string) *LookupError {
	out := *e
	out.MatchID = matchID
	return &out
}
