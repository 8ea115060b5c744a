package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/champ-predictor/internal/config"
)

func TestMigrationURL(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		Name:     "champ_predictor",
		User:     "predictor",
		Password: "p@ss",
		SSLMode:  "disable",
	}

	assert.Equal(t, "pgx5://predictor:p%40ss@db:5432/champ_predictor?sslmode=disable", MigrationURL(cfg))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
	assert.Contains(t, ups, "migrations/0001_init.up.sql")
}

func TestMissingTableError(t *testing.T) {
	err := missingTableError("matches")
	assert.EqualError(t, err, "table \"matches\" not found, run `migrate up` first")
}
