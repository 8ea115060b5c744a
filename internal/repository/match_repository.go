package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/champ-predictor/internal/database"
	"github.com/yourusername/champ-predictor/internal/models"
)

const (
	errScanMatch = "failed to scan match: %w"

	matchColumns = `id, match_id, game_start, game_version, queue_id, server_id,
		blue_champions, red_champions, winning_team, created_at`
)

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Create inserts a new match and fills in its generated ID and creation time
func (r *PostgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (match_id, game_start, game_version, queue_id, server_id,
		                     blue_champions, red_champions, winning_team)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	var winner *string
	if match.IsDecided() {
		w := string(match.WinningTeam)
		winner = &w
	}

	row := r.queryRow(ctx, query,
		match.MatchID, match.GameStart, match.GameVersion, match.QueueID, match.ServerID,
		toInt32s(match.Blue), toInt32s(match.Red), winner,
	)
	if err := row.Scan(&match.ID, &match.CreatedAt); err != nil {
		return fmt.Errorf("failed to create match %s: %w", match.MatchID, translateError(err))
	}

	return nil
}

// Exists reports whether a match with the given Riot match ID is stored
func (r *PostgresMatchRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	var exists bool
	err := r.queryRow(ctx, "SELECT EXISTS (SELECT 1 FROM matches WHERE match_id = $1)", matchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match %s: %w", matchID, err)
	}
	return exists, nil
}

// GetByID retrieves a match by its surrogate ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.queryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetUpToID retrieves the decided matches with id <= lastID, the training window
func (r *PostgresMatchRepository) GetUpToID(ctx context.Context, lastID int64) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE id <= $1 AND winning_team IS NOT NULL
		ORDER BY id ASC
	`
	return r.list(ctx, query, lastID)
}

// GetAboveID retrieves the decided matches with id > lastID, the hold-out window
func (r *PostgresMatchRepository) GetAboveID(ctx context.Context, lastID int64) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE id > $1 AND winning_team IS NOT NULL
		ORDER BY id ASC
	`
	return r.list(ctx, query, lastID)
}

// percentileQuery ranks decided matches only, the same population the split reads
const percentileQuery = `
	SELECT percentile_disc($1::float8 / 100) WITHIN GROUP (ORDER BY id)
	FROM matches
	WHERE winning_team IS NOT NULL
`

// IDAtPercentile returns the match ID at the given percentile of decided match IDs
func (r *PostgresMatchRepository) IDAtPercentile(ctx context.Context, percentile int) (int64, error) {
	if percentile <= 0 || percentile > 100 {
		return 0, fmt.Errorf("percentile %d out of range (0, 100]", percentile)
	}

	var id *int64
	if err := r.queryRow(ctx, percentileQuery, percentile).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get match at percentile %d: %w", percentile, err)
	}
	if id == nil {
		return 0, models.ErrNotFound
	}

	return *id, nil
}

func (r *PostgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanMatch, err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

// queryRow runs inside the caller's transaction when one is open
func (r *PostgresMatchRepository) queryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx.QueryRow(ctx, query, args...)
	}
	return r.db.GetPool().QueryRow(ctx, query, args...)
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var (
		match      models.Match
		blue, red  []int32
		winnerText *string
	)

	err := row.Scan(
		&match.ID, &match.MatchID, &match.GameStart, &match.GameVersion, &match.QueueID,
		&match.ServerID, &blue, &red, &winnerText, &match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	match.Blue = toRoster(blue)
	match.Red = toRoster(red)
	if winnerText != nil {
		match.WinningTeam = models.Team(*winnerText)
	}

	return &match, nil
}

func toInt32s(r models.Roster) []int32 {
	out := make([]int32, len(r))
	for i, id := range r {
		out[i] = int32(id)
	}
	return out
}

func toRoster(ids []int32) models.Roster {
	out := make(models.Roster, len(ids))
	for i, id := range ids {
		out[i] = models.ChampionID(id)
	}
	return out
}
