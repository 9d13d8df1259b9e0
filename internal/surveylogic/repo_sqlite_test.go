package surveylogic

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-backend/internal/shared/storage/db"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	database, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "logic.db"), db.SQLiteOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(ctx, database, db.DialectSQLite))
	return database
}

func TestSQLiteRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &SQLiteRepo{DB: openSQLite(t)}

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Rules)

	require.NoError(t, repo.Save(ctx, sampleLogic()))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleLogic(), loaded)

	next := sampleLogic()
	next.Rules = next.Rules[:1]
	require.NoError(t, repo.Save(ctx, next))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Rules, 1)
}

func TestServiceOnSQLite(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&SQLiteRepo{DB: openSQLite(t)})

	_, err := svc.Replace(ctx, sampleLogic())
	require.NoError(t, err)
	cascade, err := svc.RemoveSubgoal(ctx, "s-pro")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, cascade.RemovedRules)

	logic, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, logic.Rules, 2)
}
