package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/salesaholics/dealsdir/internal/directory/store"
	"github.com/salesaholics/dealsdir/internal/directory/store/drivers/bolt"
	"github.com/stretchr/testify/require"
)

func TestBoltStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	s, err := bolt.NewStore(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Get(ctx, "users")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "users", []byte(`[{"id":"1"}]`)))

	got, err := s.Get(ctx, "users")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, s.Put(ctx, "users", []byte(`[]`)))
	got, err = s.Get(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(got))

	require.NoError(t, s.Delete(ctx, "users"))
	_, err = s.Get(ctx, "users")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "users")) // absent key is fine
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "directory.db")

	s, err := bolt.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "currentUser", []byte(`{"id":"4"}`)))
	require.NoError(t, s.Close())

	reopened, err := bolt.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, "currentUser")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"4"}`, string(got))
}
