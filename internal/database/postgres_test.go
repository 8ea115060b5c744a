package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/champ-predictor/internal/config"
)

func TestConnString(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		Name:     "champ_predictor",
		User:     "predictor",
		Password: "secret",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=predictor password=secret dbname=champ_predictor sslmode=require", ConnString(cfg))
}

func TestTxFromContextWithoutTransaction(t *testing.T) {
	tx, ok := TxFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, tx)
}

func TestWithTransactionRollsBack(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	sentinel := errors.New("boom")

	err := db.WithTransaction(ctx, func(txCtx context.Context) error {
		tx, ok := TxFromContext(txCtx)
		require.True(t, ok)
		_, execErr := tx.Exec(txCtx, "SELECT 1")
		require.NoError(t, execErr)
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestHealthCheck(t *testing.T) {
	db := SetupTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background()))
}
