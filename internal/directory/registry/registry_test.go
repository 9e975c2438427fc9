package registry_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/salesaholics/dealsdir/internal/directory/domain"
	"github.com/salesaholics/dealsdir/internal/directory/registry"
	"github.com/salesaholics/dealsdir/internal/directory/store/drivers/memory"
	"github.com/stretchr/testify/require"
)

// newTestRegistry loads a registry over a fresh in-memory store, seeded
// with the default roles and demo accounts.
func newTestRegistry(t *testing.T) (*registry.Registry, *memory.Store) {
	t.Helper()

	st := memory.NewStore()
	r := registry.New(registry.Options{
		Store: st,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	r.Load(context.Background())
	return r, st
}

func findUser(t *testing.T, r *registry.Registry, id string) domain.Account {
	t.Helper()
	for _, a := range r.Users() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("account %s not found", id)
	return domain.Account{}
}

func findUserByEmail(t *testing.T, r *registry.Registry, email string) domain.Account {
	t.Helper()
	for _, a := range r.Users() {
		if a.Email == email {
			return a
		}
	}
	t.Fatalf("account %s not found", email)
	return domain.Account{}
}

func TestLoadSeedsDefaults(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)

	require.Len(t, r.Roles(), 6)
	require.Len(t, r.Users(), 4)

	_, ok := r.CurrentUser()
	require.False(t, ok, "cold start begins logged out")
}

func TestLoadTreatsMalformedBlobsAsAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memory.NewStore()
	require.NoError(t, st.Put(ctx, "roles", []byte(`{definitely not an array`)))
	require.NoError(t, st.Put(ctx, "users", []byte(`42`)))
	require.NoError(t, st.Put(ctx, "currentUser", []byte(`null`)))

	r := registry.New(registry.Options{
		Store: st,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	r.Load(ctx)

	require.Len(t, r.Roles(), 6)
	require.Len(t, r.Users(), 4)
	_, ok := r.CurrentUser()
	require.False(t, ok)
}

func TestStateSurvivesReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, st := newTestRegistry(t)
	require.True(t, r.Register(ctx, "a@x.com", "pw1", "Alice"))

	// A second registry over the same store picks up where we left off.
	reloaded := registry.New(registry.Options{
		Store: st,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	reloaded.Load(ctx)

	require.Len(t, reloaded.Users(), 5)
	current, ok := reloaded.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "a@x.com", current.Email)
}
