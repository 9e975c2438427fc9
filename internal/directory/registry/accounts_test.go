package registry_test

import (
	"context"
	"testing"

	"github.com/salesaholics/dealsdir/internal/directory/domain"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)

	require.True(t, r.Register(ctx, "a@x.com", "pw1", "Alice"))

	alice, ok := r.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "a@x.com", alice.Email)
	require.Equal(t, "Alice", alice.DisplayName)
	require.Equal(t, domain.RoleSubscriber, alice.RoleID)
	require.Empty(t, alice.Permissions)
	require.False(t, alice.IsAdmin)
	require.False(t, alice.TwoFactor.Enabled)
	require.Contains(t, alice.PhotoURL, "ui-avatars.com")

	t.Run("duplicate email fails and leaves everything unchanged", func(t *testing.T) {
		before := len(r.Users())
		require.False(t, r.Register(ctx, "a@x.com", "pw2", "Bob"))
		require.Len(t, r.Users(), before)

		current, ok := r.CurrentUser()
		require.True(t, ok)
		require.Equal(t, "Alice", current.DisplayName)
	})

	t.Run("email matching is exact and case-sensitive", func(t *testing.T) {
		require.True(t, r.Register(ctx, "A@x.com", "pw3", "Alicia"))
	})
}

func TestLoginWithoutTwoFactor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)

	t.Run("wrong password fails", func(t *testing.T) {
		res := r.Login(ctx, "admin@salesaholicsdeals.com", "nope")
		require.False(t, res.Success)
		_, ok := r.CurrentUser()
		require.False(t, ok)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		res := r.Login(ctx, "ghost@example.com", "password")
		require.False(t, res.Success)
	})

	t.Run("matching credentials sign in and stamp last login", func(t *testing.T) {
		res := r.Login(ctx, "admin@salesaholicsdeals.com", "admin123")
		require.True(t, res.Success)
		require.False(t, res.RequiresTwoFactor)

		current, ok := r.CurrentUser()
		require.True(t, ok)
		require.Equal(t, "admin@salesaholicsdeals.com", current.Email)
		require.NotNil(t, current.LastLogin)

		// The collection record was stamped too, not just the session.
		require.NotNil(t, findUser(t, r, current.ID).LastLogin)
	})

	t.Run("logout clears the session", func(t *testing.T) {
		r.Logout(ctx)
		_, ok := r.CurrentUser()
		require.False(t, ok)
	})
}

func TestUniqueEmails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	require.True(t, r.Register(ctx, "a@x.com", "pw", "A"))
	require.True(t, r.Register(ctx, "b@x.com", "pw", "B"))

	seen := make(map[string]bool)
	for _, a := range r.Users() {
		require.False(t, seen[a.Email], "duplicate email %q", a.Email)
		seen[a.Email] = true
	}
}

func TestAddUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)

	created, ok := r.AddUser(ctx, domain.Account{
		Email:       "new@example.com",
		Password:    "hunter2",
		DisplayName: "New User",
		RoleID:      domain.RoleAuthor,
		Permissions: []domain.Permission{domain.PermEditPages},
		Status:      domain.StatusPending,
		TwoFactor:   domain.DisabledTwoFactor(),
	})
	require.True(t, ok)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, domain.StatusPending, created.Status)

	_, ok = r.AddUser(ctx, domain.Account{Email: "new@example.com"})
	require.False(t, ok, "duplicate email rejected")

	// AddUser does not touch the session.
	_, ok = r.CurrentUser()
	require.False(t, ok)
}

func TestUpdateUserSyncsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	require.True(t, r.Login(ctx, "editor@example.com", "password").Success)

	editor, _ := r.CurrentUser()
	editor.DisplayName = "Chief Editor"
	editor.Preferences.DarkMode = false
	require.True(t, r.UpdateUser(ctx, editor))

	current, ok := r.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "Chief Editor", current.DisplayName)
	require.Equal(t, "Chief Editor", findUser(t, r, editor.ID).DisplayName)

	t.Run("unknown id fails", func(t *testing.T) {
		require.False(t, r.UpdateUser(ctx, domain.Account{ID: "missing"}))
	})

	t.Run("created at is immutable", func(t *testing.T) {
		edited := findUser(t, r, editor.ID)
		original := edited.CreatedAt
		edited.CreatedAt = edited.CreatedAt.AddDate(1, 0, 0)
		require.True(t, r.UpdateUser(ctx, edited))
		require.Equal(t, original, findUser(t, r, editor.ID).CreatedAt)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)

	t.Run("deleting the current account logs out", func(t *testing.T) {
		require.True(t, r.Register(ctx, "gone@x.com", "pw", "Goner"))
		current, _ := r.CurrentUser()
		require.True(t, r.DeleteUser(ctx, current.ID))
		_, ok := r.CurrentUser()
		require.False(t, ok)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		require.False(t, r.DeleteUser(ctx, "missing"))
	})

	t.Run("the last account can never be deleted", func(t *testing.T) {
		users := r.Users()
		for _, a := range users[1:] {
			require.True(t, r.DeleteUser(ctx, a.ID))
		}
		require.Len(t, r.Users(), 1)
		require.False(t, r.DeleteUser(ctx, users[0].ID))
		require.Len(t, r.Users(), 1)
	})
}

func TestUpdateUserPermissionsAndRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	author := findUserByEmail(t, r, "user@example.com")

	t.Run("permission override diverges from the role default", func(t *testing.T) {
		require.True(t, r.UpdateUserPermissions(ctx, author.ID, []domain.Permission{domain.PermViewAnalytics}))

		got := findUser(t, r, author.ID)
		require.Equal(t, []domain.Permission{domain.PermViewAnalytics}, got.Permissions)
		require.Equal(t, domain.RoleSubscriber, got.RoleID, "role reference untouched")
	})

	t.Run("role change resets the override", func(t *testing.T) {
		require.True(t, r.UpdateUserRole(ctx, author.ID, domain.RoleAdmin))

		got := findUser(t, r, author.ID)
		require.Equal(t, domain.RoleAdmin, got.RoleID)
		require.True(t, got.IsAdmin)
		require.Len(t, got.Permissions, len(domain.Permissions())-2)
	})

	t.Run("demotion clears the admin flag", func(t *testing.T) {
		require.True(t, r.UpdateUserRole(ctx, author.ID, domain.RoleModerator))

		got := findUser(t, r, author.ID)
		require.False(t, got.IsAdmin)
		require.Len(t, got.Permissions, 2)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		require.False(t, r.UpdateUserRole(ctx, author.ID, "role_missing"))
	})
}

func TestHasPermissionAndHasRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)

	t.Run("always false without a session", func(t *testing.T) {
		require.False(t, r.HasPermission(domain.PermViewAnalytics))
		require.False(t, r.HasRole(domain.RoleSuperAdmin))
	})

	require.True(t, r.Login(ctx, "moderator@example.com", "password").Success)

	require.True(t, r.HasRole(domain.RoleModerator))
	require.False(t, r.HasRole(domain.RoleAdmin))
	require.True(t, r.HasPermission(domain.PermModerateComments))
	require.True(t, r.HasPermission(domain.PermViewAnalytics))
	require.False(t, r.HasPermission(domain.PermSystemSettings))
}
