package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDSNEnv names the variable holding the integration test database DSN
const TestDSNEnv = "CHAMP_PREDICTOR_TEST_DSN"

// SetupTestDB connects to the integration test database, skipping the test
// when no DSN is configured
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("Integration test - set %s to run", TestDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("failed to ping test database: %v", err)
	}

	db := &DB{pool: pool}
	t.Cleanup(db.Close)
	return db
}

// TruncateTestDB empties every predictor table between integration tests
func TruncateTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.pool.Exec(ctx, "TRUNCATE evaluation_results, champion_stats, matches RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("failed to truncate test database: %v", err)
	}
}
