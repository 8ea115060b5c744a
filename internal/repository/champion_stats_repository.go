package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/champ-predictor/internal/database"
	"github.com/yourusername/champ-predictor/internal/models"
)

// PostgresChampionStatsRepository implements ChampionStatsRepository for PostgreSQL
type PostgresChampionStatsRepository struct {
	db *database.DB
}

// NewPostgresChampionStatsRepository creates a new snapshot repository
func NewPostgresChampionStatsRepository(db *database.DB) ChampionStatsRepository {
	return &PostgresChampionStatsRepository{db: db}
}

// Create inserts a new snapshot
func (r *PostgresChampionStatsRepository) Create(ctx context.Context, snapshot *models.ChampionStatsSnapshot) error {
	query := `
		INSERT INTO champion_stats (id, data, last_match_id, match_count)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		snapshot.ID, []byte(snapshot.Data), snapshot.LastMatchID, snapshot.MatchCount,
	).Scan(&snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create champion stats snapshot: %w", translateError(err))
	}

	return nil
}

// GetLatest retrieves the most recently created snapshot
func (r *PostgresChampionStatsRepository) GetLatest(ctx context.Context) (*models.ChampionStatsSnapshot, error) {
	query := `
		SELECT id, data, last_match_id, match_count, created_at
		FROM champion_stats
		ORDER BY created_at DESC
		LIMIT 1
	`

	snapshot := &models.ChampionStatsSnapshot{}
	var data []byte
	err := r.db.GetPool().QueryRow(ctx, query).Scan(
		&snapshot.ID, &data, &snapshot.LastMatchID, &snapshot.MatchCount, &snapshot.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest champion stats snapshot: %w", err)
	}
	snapshot.Data = data

	return snapshot, nil
}
