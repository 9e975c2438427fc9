// Package registry implements the account and access directory: an
// in-memory catalog of accounts and roles with authentication,
// authorization, and two-factor enrollment, mirrored to a durable
// key-value store.
//
// The store is a passive mirror. It is read once at cold start (Load) and
// rewritten wholesale after every mutation; write failures are logged and
// never surfaced to the caller, and the in-memory state stays
// authoritative. Two processes sharing one store race last-writer-wins.
package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/salesaholics/dealsdir/internal/directory/domain"
	"github.com/salesaholics/dealsdir/internal/directory/store"
	"github.com/salesaholics/dealsdir/internal/directory/telemetry"
	"github.com/salesaholics/dealsdir/pkg/cryptox"
)

// Durable store keys.
const (
	keyRoles       = "roles"
	keyUsers       = "users"
	keyCurrentUser = "currentUser"
)

const defaultIssuer = "SalesAholicsDeals"

type Options struct {
	Store       store.Store
	Log         *slog.Logger
	Telemetry   telemetry.Sink
	Credentials cryptox.CredentialVerifier
	Issuer      string           // issuer on TOTP provisioning URIs
	Now         func() time.Time // clock override for tests
}

// Registry owns the account and role collections and the single session
// pointer. All operations run to completion under one lock; collections are
// replaced copy-then-swap so no caller ever observes a half-applied
// mutation.
type Registry struct {
	mu          sync.Mutex
	store       store.Store
	log         *slog.Logger
	telemetry   telemetry.Sink
	credentials cryptox.CredentialVerifier
	issuer      string
	now         func() time.Time

	roles    []domain.Role
	accounts []domain.Account
	session  *domain.Account
}

func New(opts Options) *Registry {
	r := &Registry{
		store:       opts.Store,
		log:         opts.Log,
		telemetry:   opts.Telemetry,
		credentials: opts.Credentials,
		issuer:      opts.Issuer,
		now:         opts.Now,
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	if r.telemetry == nil {
		r.telemetry = telemetry.Noop{}
	}
	if r.credentials == nil {
		r.credentials = cryptox.PlaintextVerifier{}
	}
	if r.issuer == "" {
		r.issuer = defaultIssuer
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Load performs the cold-start bridge: roles, accounts, and the session are
// read from the store under their fixed keys. An absent or malformed blob
// falls back to the seeded defaults (or, for the session, to logged out);
// it is never an error.
func (r *Registry) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loadRoles(ctx)
	r.loadAccounts(ctx)
	r.loadSession(ctx)

	r.log.Info("directory loaded",
		slog.Int("roles", len(r.roles)),
		slog.Int("accounts", len(r.accounts)),
		slog.Bool("session", r.session != nil),
	)
}

func (r *Registry) loadRoles(ctx context.Context) {
	if blob, err := r.store.Get(ctx, keyRoles); err == nil {
		var roles []domain.Role
		if err := json.Unmarshal(blob, &roles); err == nil && len(roles) > 0 {
			r.roles = roles
			return
		}
		r.log.Warn("stored roles unreadable, reseeding defaults")
	}

	r.roles = domain.DefaultRoles()
	r.persistRoles(ctx)
}

func (r *Registry) loadAccounts(ctx context.Context) {
	if blob, err := r.store.Get(ctx, keyUsers); err == nil {
		var accounts []domain.Account
		if err := json.Unmarshal(blob, &accounts); err == nil && len(accounts) > 0 {
			r.accounts = accounts
			return
		}
		r.log.Warn("stored users unreadable, reseeding demo accounts")
	}

	seeds := domain.DemoAccounts()
	for i := range seeds {
		stored, err := r.credentials.Hash(seeds[i].Password)
		if err != nil {
			r.log.Error("failed to encode seed credential",
				slog.String("account_id", seeds[i].ID),
				slog.Any("error", err),
			)
			continue
		}
		seeds[i].Password = stored
	}
	r.accounts = seeds
	r.persistAccounts(ctx)
}

func (r *Registry) loadSession(ctx context.Context) {
	blob, err := r.store.Get(ctx, keyCurrentUser)
	if err != nil {
		r.session = nil // absent means logged out
		return
	}

	var account domain.Account
	if err := json.Unmarshal(blob, &account); err != nil || account.ID == "" {
		r.log.Warn("stored session unreadable, starting logged out")
		r.session = nil
		return
	}
	r.session = &account
}

// persistRoles mirrors the role collection to the store. Callers hold the
// lock. Failures are logged, not returned: the store is fire-and-forget.
func (r *Registry) persistRoles(ctx context.Context) {
	blob, err := json.Marshal(r.roles)
	if err != nil {
		r.log.Error("failed to serialize roles", slog.Any("error", err))
		return
	}
	if err := r.store.Put(ctx, keyRoles, blob); err != nil {
		r.log.Warn("failed to persist roles", slog.Any("error", err))
	}
}

func (r *Registry) persistAccounts(ctx context.Context) {
	blob, err := json.Marshal(r.accounts)
	if err != nil {
		r.log.Error("failed to serialize accounts", slog.Any("error", err))
		return
	}
	if err := r.store.Put(ctx, keyUsers, blob); err != nil {
		r.log.Warn("failed to persist accounts", slog.Any("error", err))
	}
}

func (r *Registry) persistSession(ctx context.Context) {
	if r.session == nil {
		if err := r.store.Delete(ctx, keyCurrentUser); err != nil {
			r.log.Warn("failed to clear stored session", slog.Any("error", err))
		}
		return
	}

	blob, err := json.Marshal(r.session)
	if err != nil {
		r.log.Error("failed to serialize session", slog.Any("error", err))
		return
	}
	if err := r.store.Put(ctx, keyCurrentUser, blob); err != nil {
		r.log.Warn("failed to persist session", slog.Any("error", err))
	}
}

// findAccount returns the index of the account with the given id, or -1.
// Callers hold the lock.
func (r *Registry) findAccount(id string) int {
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// updateAccount applies mutate to a copy of the account, swaps the copy
// into a fresh collection, keeps the session mirror in sync when the edited
// account is the current one, and persists. Callers hold the lock.
func (r *Registry) updateAccount(ctx context.Context, id string, mutate func(*domain.Account)) bool {
	i := r.findAccount(id)
	if i < 0 {
		return false
	}

	updated := cloneAccount(r.accounts[i])
	mutate(&updated)

	next := make([]domain.Account, len(r.accounts))
	copy(next, r.accounts)
	next[i] = updated
	r.accounts = next
	r.persistAccounts(ctx)

	if r.session != nil && r.session.ID == id {
		mirror := cloneAccount(updated)
		r.session = &mirror
		r.persistSession(ctx)
	}

	return true
}

// setSession points the session at an account snapshot and persists it.
// Callers hold the lock.
func (r *Registry) setSession(ctx context.Context, account domain.Account) {
	mirror := cloneAccount(account)
	r.session = &mirror
	r.persistSession(ctx)
}

func cloneAccount(a domain.Account) domain.Account {
	out := a
	out.Permissions = append([]domain.Permission(nil), a.Permissions...)
	out.TwoFactor.BackupCodes = append([]string(nil), a.TwoFactor.BackupCodes...)
	out.LastLogin = cloneTime(a.LastLogin)
	out.TwoFactor.VerifiedOn = cloneTime(a.TwoFactor.VerifiedOn)
	out.TwoFactor.LastUsed = cloneTime(a.TwoFactor.LastUsed)
	return out
}

func cloneRole(role domain.Role) domain.Role {
	out := role
	out.Permissions = append([]domain.Permission(nil), role.Permissions...)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (r *Registry) track(event string, props map[string]any) {
	r.telemetry.Track(event, props)
}
