package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/champ-predictor/internal/database"
	"github.com/yourusername/champ-predictor/internal/models"
)

// PostgresEvaluationRepository implements EvaluationRepository for PostgreSQL
type PostgresEvaluationRepository struct {
	db *database.DB
}

// NewPostgresEvaluationRepository creates a new evaluation repository
func NewPostgresEvaluationRepository(db *database.DB) EvaluationRepository {
	return &PostgresEvaluationRepository{db: db}
}

// Save inserts an evaluation result, assigning an ID when it has none
func (r *PostgresEvaluationRepository) Save(ctx context.Context, result *models.EvaluationResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}

	query := `
		INSERT INTO evaluation_results (id, snapshot_id, rule, match_count, skipped_count,
		                                accuracy, "precision", recall, roc_auc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING evaluated_at
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		result.ID, result.SnapshotID, result.Rule, result.MatchCount, result.SkippedCount,
		result.Accuracy, result.Precision, result.Recall, result.ROCAUC,
	).Scan(&result.EvaluatedAt)
	if err != nil {
		return fmt.Errorf("failed to save evaluation result: %w", translateError(err))
	}

	return nil
}

// GetBySnapshot retrieves every evaluation run against a snapshot, newest first
func (r *PostgresEvaluationRepository) GetBySnapshot(ctx context.Context, snapshotID uuid.UUID) ([]*models.EvaluationResult, error) {
	query := `
		SELECT id, snapshot_id, rule, match_count, skipped_count,
		       accuracy, "precision", recall, roc_auc, evaluated_at
		FROM evaluation_results
		WHERE snapshot_id = $1
		ORDER BY evaluated_at DESC, rule ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation results: %w", err)
	}
	defer rows.Close()

	var results []*models.EvaluationResult
	for rows.Next() {
		res := &models.EvaluationResult{}
		err := rows.Scan(
			&res.ID, &res.SnapshotID, &res.Rule, &res.MatchCount, &res.SkippedCount,
			&res.Accuracy, &res.Precision, &res.Recall, &res.ROCAUC, &res.EvaluatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
