// Package repository implements PostgreSQL persistence for matches, snapshots and evaluations.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/champ-predictor/internal/database"
	"github.com/yourusername/champ-predictor/internal/models"
)

const uniqueViolation = "23505"

// Repositories holds all repository implementations
type Repositories struct {
	Match         MatchRepository
	ChampionStats ChampionStatsRepository
	Evaluation    EvaluationRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Match:         NewPostgresMatchRepository(db),
		ChampionStats: NewPostgresChampionStatsRepository(db),
		Evaluation:    NewPostgresEvaluationRepository(db),
	}, nil
}

// translateError maps driver errors onto the model sentinels
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", models.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return err
}
