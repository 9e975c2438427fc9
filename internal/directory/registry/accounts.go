package registry

import (
	"context"
	"log/slog"

	"github.com/salesaholics/dealsdir/internal/directory/domain"
	"github.com/salesaholics/dealsdir/pkg/idx"
)

// LoginResult is returned by Login. When RequiresTwoFactor is set the
// credentials matched but no session was established; the caller must
// complete the login with VerifyTwoFactorCode using AccountID.
type LoginResult struct {
	Success           bool
	RequiresTwoFactor bool
	AccountID         string
}

// Register creates a new subscriber account and signs it in. It fails when
// the email is already taken (exact, case-sensitive match).
func (r *Registry) Register(ctx context.Context, email, password, displayName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].Email == email {
			return false
		}
	}

	stored, err := r.credentials.Hash(password)
	if err != nil {
		r.log.Error("failed to encode credential", slog.Any("error", err))
		return false
	}

	account := domain.Account{
		ID:          idx.New().String(),
		Email:       email,
		Password:    stored,
		DisplayName: displayName,
		PhotoURL:    domain.AvatarURL(displayName, "718096"),
		IsAdmin:     false,
		RoleID:      domain.RoleSubscriber,
		Permissions: []domain.Permission{},
		CreatedAt:   r.now().UTC(),
		Status:      domain.StatusActive,
		Preferences: domain.DefaultPreferences(),
		TwoFactor:   domain.DisabledTwoFactor(),
	}

	r.accounts = append(append([]domain.Account{}, r.accounts...), account)
	r.persistAccounts(ctx)
	r.setSession(ctx, account)

	r.track("register", map[string]any{"account_id": account.ID})
	return true
}

// Login authenticates an email/password pair. Accounts with two-factor
// enabled get a pending result instead of a session; everyone else is
// signed in directly with a fresh LastLogin stamp.
func (r *Registry) Login(ctx context.Context, email, password string) LoginResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := -1
	for j := range r.accounts {
		if r.accounts[j].Email == email {
			i = j
			break
		}
	}
	if i < 0 || r.credentials.Verify(password, r.accounts[i].Password) != nil {
		r.track("login_failed", map[string]any{"email": email})
		return LoginResult{}
	}

	account := r.accounts[i]
	if account.TwoFactor.Enabled {
		return LoginResult{Success: true, RequiresTwoFactor: true, AccountID: account.ID}
	}

	now := r.now().UTC()
	r.updateAccount(ctx, account.ID, func(a *domain.Account) {
		a.LastLogin = &now
	})
	r.setSession(ctx, r.accounts[r.findAccount(account.ID)])

	r.track("login", map[string]any{"account_id": account.ID})
	return LoginResult{Success: true}
}

// Logout clears the session.
func (r *Registry) Logout(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.track("logout", map[string]any{"account_id": r.session.ID})
	}
	r.session = nil
	r.persistSession(ctx)
}

// CurrentUser returns a snapshot of the signed-in account, if any.
func (r *Registry) CurrentUser() (domain.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return domain.Account{}, false
	}
	return cloneAccount(*r.session), true
}

// Users returns a snapshot of every account.
func (r *Registry) Users() []domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Account, len(r.accounts))
	for i := range r.accounts {
		out[i] = cloneAccount(r.accounts[i])
	}
	return out
}

// AddUser inserts an account directly (admin surface). The ID and creation
// time are assigned here; the password is stored as given after encoding.
// Fails on a duplicate email.
func (r *Registry) AddUser(ctx context.Context, account domain.Account) (domain.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].Email == account.Email {
			return domain.Account{}, false
		}
	}

	stored, err := r.credentials.Hash(account.Password)
	if err != nil {
		r.log.Error("failed to encode credential", slog.Any("error", err))
		return domain.Account{}, false
	}

	created := cloneAccount(account)
	created.ID = idx.New().String()
	created.Password = stored
	created.CreatedAt = r.now().UTC()
	if created.TwoFactor.BackupCodes == nil {
		created.TwoFactor.BackupCodes = []string{}
	}
	if created.Permissions == nil {
		created.Permissions = []domain.Permission{}
	}

	r.accounts = append(append([]domain.Account{}, r.accounts...), created)
	r.persistAccounts(ctx)

	return cloneAccount(created), true
}

// UpdateUser replaces an account record. ID and CreatedAt are immutable and
// kept from the existing record. When the edited account is the current
// session, the session mirror is refreshed in the same step.
func (r *Registry) UpdateUser(ctx context.Context, account domain.Account) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateAccount(ctx, account.ID, func(a *domain.Account) {
		createdAt := a.CreatedAt
		*a = cloneAccount(account)
		a.CreatedAt = createdAt
	})
}

// DeleteUser removes an account. The registry never becomes empty: removing
// the sole remaining account fails. Deleting the signed-in account logs out.
func (r *Registry) DeleteUser(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.accounts) <= 1 {
		return false
	}
	i := r.findAccount(id)
	if i < 0 {
		return false
	}

	next := make([]domain.Account, 0, len(r.accounts)-1)
	next = append(next, r.accounts[:i]...)
	next = append(next, r.accounts[i+1:]...)
	r.accounts = next
	r.persistAccounts(ctx)

	if r.session != nil && r.session.ID == id {
		r.session = nil
		r.persistSession(ctx)
	}

	return true
}

// UpdateUserPermissions overwrites the effective permission set without
// touching the role reference. The override holds until the next role
// change or role-permission cascade.
func (r *Registry) UpdateUserPermissions(ctx context.Context, id string, perms []domain.Permission) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateAccount(ctx, id, func(a *domain.Account) {
		a.Permissions = append([]domain.Permission{}, perms...)
	})
}

// UpdateUserRole reassigns the role reference, resets the effective
// permissions to the role's defaults, and recomputes the admin flag.
func (r *Registry) UpdateUserRole(ctx context.Context, id string, roleID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	var role *domain.Role
	for i := range r.roles {
		if r.roles[i].ID == roleID {
			role = &r.roles[i]
			break
		}
	}
	if role == nil {
		return false
	}

	perms := append([]domain.Permission{}, role.Permissions...)
	isAdmin := roleID == domain.RoleSuperAdmin || roleID == domain.RoleAdmin

	return r.updateAccount(ctx, id, func(a *domain.Account) {
		a.RoleID = roleID
		a.Permissions = perms
		a.IsAdmin = isAdmin
	})
}

// HasPermission reports whether the signed-in account's effective set
// contains tag. Without a session it is always false.
func (r *Registry) HasPermission(tag domain.Permission) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	return r.session.HasPermission(tag)
}

// HasRole reports whether the signed-in account references roleID.
func (r *Registry) HasRole(roleID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	return r.session.RoleID == roleID
}
