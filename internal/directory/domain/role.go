package domain

// Role is a named bundle of permissions assignable to accounts. System roles
// are seeded at first run; their name, description and system flag are
// immutable, only their permission set may change.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	Description string       `json:"description"`
	IsSystem    bool         `json:"isSystem"`
}

// Seeded system role IDs.
const (
	RoleSuperAdmin = "role_super_admin"
	RoleAdmin      = "role_admin"
	RoleEditor     = "role_editor"
	RoleAuthor     = "role_author"
	RoleModerator  = "role_moderator"
	RoleSubscriber = "role_subscriber"
)

// SubscriberRoleName is the display name accounts fall back to when their
// role is deleted. Lookup is by name, not ID.
const SubscriberRoleName = "Subscriber"

// AdminRoleIDs lists the roles whose holders count as administrators.
func AdminRoleIDs() []string {
	return []string{RoleSuperAdmin, RoleAdmin}
}

// DefaultRoles returns the seeded system role catalog.
func DefaultRoles() []Role {
	return []Role{
		{
			ID:          RoleSuperAdmin,
			Name:        "Super Administrator",
			Permissions: Permissions(),
			Description: "Full access to all system features and settings",
			IsSystem:    true,
		},
		{
			ID:   RoleAdmin,
			Name: "Administrator",
			// Everything except the two system-only tags.
			Permissions: []Permission{
				PermManagePages, PermEditPages, PermPublishPages,
				PermManageMedia, PermUploadMedia, PermDeleteMedia,
				PermManageDeals, PermEditDeals, PermPublishDeals,
				PermManageStores, PermManageUsers, PermEditUsers,
				PermManageSettings, PermManageSEO, PermManageDesign,
				PermViewAnalytics, PermExportAnalytics,
				PermModerateComments, PermManageAPIIntegrations,
				PermViewAPIIntegrations,
			},
			Description: "Can manage most aspects of the site, but cannot change system settings",
			IsSystem:    true,
		},
		{
			ID:   RoleEditor,
			Name: "Editor",
			Permissions: []Permission{
				PermEditPages, PermPublishPages,
				PermUploadMedia, PermManageMedia,
				PermEditDeals, PermPublishDeals,
				PermViewAnalytics,
			},
			Description: "Can create, edit, and publish content",
			IsSystem:    true,
		},
		{
			ID:   RoleAuthor,
			Name: "Author",
			Permissions: []Permission{
				PermEditPages,
				PermUploadMedia,
				PermEditDeals,
				PermViewAnalytics,
			},
			Description: "Can create and edit content, but not publish it",
			IsSystem:    true,
		},
		{
			ID:   RoleModerator,
			Name: "Moderator",
			Permissions: []Permission{
				PermModerateComments,
				PermViewAnalytics,
			},
			Description: "Can moderate user comments and discussions",
			IsSystem:    true,
		},
		{
			ID:          RoleSubscriber,
			Name:        SubscriberRoleName,
			Permissions: []Permission{},
			Description: "Basic user with no administrative privileges",
			IsSystem:    true,
		},
	}
}
