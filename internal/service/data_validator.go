package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/champ-predictor/internal/draft"
	"github.com/yourusername/champ-predictor/internal/models"
)

// MatchValidator checks crawled matches before they are stored
type MatchValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewMatchValidator creates a new match validator
func NewMatchValidator() *MatchValidator {
	return &MatchValidator{
		validate: validator.New(),
		now:      time.Now,
	}
}

// Validate returns the reasons a match cannot be stored, or nil when it is usable
func (v *MatchValidator) Validate(match *models.Match) []string {
	var problems []string

	if err := v.validate.Struct(match); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrors {
				problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if err := draft.ValidateMatch(match); err != nil {
		problems = append(problems, err.Error())
	}

	if !match.IsDecided() {
		problems = append(problems, "winning team is not recorded")
	}

	if match.GameStart.IsZero() {
		problems = append(problems, "game start is required")
	} else if match.GameStart.After(v.now().Add(24 * time.Hour)) {
		problems = append(problems, "game start is in the future")
	}

	return problems
}
