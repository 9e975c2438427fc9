package registry

import (
	"context"

	"github.com/salesaholics/dealsdir/internal/directory/domain"
	"github.com/salesaholics/dealsdir/pkg/idx"
)

// Roles returns a snapshot of the role catalog.
func (r *Registry) Roles() []domain.Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Role, len(r.roles))
	for i := range r.roles {
		out[i] = cloneRole(r.roles[i])
	}
	return out
}

// CreateRole appends a custom role. Fails when another role already carries
// the same name. Permission tags are not validated against the catalog;
// unknown tags are allowed.
func (r *Registry) CreateRole(ctx context.Context, role domain.Role) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.roles {
		if r.roles[i].Name == role.Name {
			return false
		}
	}

	created := cloneRole(role)
	if created.ID == "" {
		created.ID = idx.New().String()
	}

	r.roles = append(append([]domain.Role{}, r.roles...), created)
	r.persistRoles(ctx)
	return true
}

// UpdateRole modifies a role by ID. System roles only accept a new
// permission set; name, description and the system flag stay fixed. Custom
// roles are replaced wholesale. Either way, every account referencing the
// role has its effective permissions forcibly resynced to the new set —
// this cascade overrides any earlier explicit permission edits.
func (r *Registry) UpdateRole(ctx context.Context, role domain.Role) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := -1
	for j := range r.roles {
		if r.roles[j].ID == role.ID {
			i = j
			break
		}
	}
	if i < 0 {
		return false
	}

	updated := cloneRole(role)
	if r.roles[i].IsSystem {
		updated = cloneRole(r.roles[i])
		updated.Permissions = append([]domain.Permission{}, role.Permissions...)
	}

	next := make([]domain.Role, len(r.roles))
	copy(next, r.roles)
	next[i] = updated
	r.roles = next
	r.persistRoles(ctx)

	r.cascadePermissions(ctx, updated.ID, updated.Permissions)
	return true
}

// DeleteRole removes a custom role. System roles and unknown IDs fail.
// Accounts still referencing the role are reassigned to the role named
// "Subscriber" (looked up by name) with its permission set.
func (r *Registry) DeleteRole(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := -1
	for j := range r.roles {
		if r.roles[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 || r.roles[i].IsSystem {
		return false
	}

	var fallback *domain.Role
	for j := range r.roles {
		if r.roles[j].Name == domain.SubscriberRoleName {
			fallback = &r.roles[j]
			break
		}
	}
	if fallback != nil {
		fallbackPerms := append([]domain.Permission{}, fallback.Permissions...)
		for _, a := range r.accounts {
			if a.RoleID != id {
				continue
			}
			r.updateAccount(ctx, a.ID, func(acc *domain.Account) {
				acc.RoleID = fallback.ID
				acc.Permissions = append([]domain.Permission{}, fallbackPerms...)
			})
		}
	}

	next := make([]domain.Role, 0, len(r.roles)-1)
	next = append(next, r.roles[:i]...)
	next = append(next, r.roles[i+1:]...)
	r.roles = next
	r.persistRoles(ctx)
	return true
}

// cascadePermissions resyncs the effective permissions of every account
// referencing roleID. Callers hold the lock.
func (r *Registry) cascadePermissions(ctx context.Context, roleID string, perms []domain.Permission) {
	for _, a := range r.accounts {
		if a.RoleID != roleID {
			continue
		}
		r.updateAccount(ctx, a.ID, func(acc *domain.Account) {
			acc.Permissions = append([]domain.Permission{}, perms...)
		})
	}
}
