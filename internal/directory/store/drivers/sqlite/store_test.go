package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/salesaholics/dealsdir/internal/directory/store"
	"github.com/salesaholics/dealsdir/internal/directory/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestSqliteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Get(ctx, "roles")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "roles", []byte(`[{"id":"role_admin"}]`)))

	got, err := s.Get(ctx, "roles")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"role_admin"}]`, string(got))

	t.Run("put replaces the previous value", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "roles", []byte(`[]`)))
		got, err := s.Get(ctx, "roles")
		require.NoError(t, err)
		require.Equal(t, `[]`, string(got))
	})

	t.Run("delete removes the key", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "roles"))
		_, err := s.Get(ctx, "roles")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting an absent key is not an error", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "never-written"))
	})
}

func TestSqliteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "directory.db")

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Put(ctx, "currentUser", []byte(`{"id":"1"}`)))
	require.NoError(t, s.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.NoError(t, reopened.ApplyMigrations())

	got, err := reopened.Get(ctx, "currentUser")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1"}`, string(got))
}
