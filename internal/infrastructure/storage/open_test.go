package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-dashboard-api/internal/infrastructure/storage"
	"github.com/jhoicas/sales-dashboard-api/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	repo, closeFn, err := storage.Open(ctx, config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "salesdata.db"),
	})
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, repo.EnsureSchema(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, _, err := storage.Open(context.Background(), config.DBConfig{Driver: "mongo"})
	assert.Error(t, err)
}
