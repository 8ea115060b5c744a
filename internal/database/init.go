package database

import (
	"context"
	"fmt"

	"github.com/yourusername/champ-predictor/internal/config"
)

// requiredTables must exist before the predictor can run
var requiredTables = []string{"matches", "champion_stats", "evaluation_results"}

// Initialize creates a database connection pool and verifies the schema is migrated
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range requiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to inspect schema: %w", err)
		}
		if !exists {
			db.Close()
			return nil, missingTableError(table)
		}
	}

	return db, nil
}

func missingTableError(table string) error {
	return fmt.Errorf("table %q not found, run `migrate up` first", table)
}
