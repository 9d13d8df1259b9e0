package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-backend/internal/shared/storage/db"
)

func TestSQLiteRepo(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "users.db"), db.SQLiteOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(ctx, database, db.DialectSQLite))

	svc := NewService(&SQLiteRepo{DB: database})
	require.NoError(t, svc.EnsureDefaultAdmin(ctx, "admin1"))

	user, err := svc.Register(ctx, "sari")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	err = (&SQLiteRepo{DB: database}).Create(ctx, User{ID: "user-x", Username: "sari", Role: RoleUser})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	role, err := svc.RoleOf(ctx, DefaultAdminID)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	_, err = svc.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
