package domain

// Permission is an opaque capability tag. The catalog below is the union of
// every tag granted by a default role; unknown tags are tolerated anywhere a
// permission set is accepted.
type Permission string

const (
	// Content management
	PermManagePages  Permission = "manage_pages"
	PermEditPages    Permission = "edit_pages"
	PermPublishPages Permission = "publish_pages"

	// Media management
	PermManageMedia Permission = "manage_media"
	PermUploadMedia Permission = "upload_media"
	PermDeleteMedia Permission = "delete_media"

	// Deal management
	PermManageDeals  Permission = "manage_deals"
	PermEditDeals    Permission = "edit_deals"
	PermPublishDeals Permission = "publish_deals"

	// Store management
	PermManageStores Permission = "manage_stores"

	// User management
	PermManageUsers Permission = "manage_users"
	PermEditUsers   Permission = "edit_users"

	// Site settings
	PermManageSettings Permission = "manage_settings"
	PermManageSEO      Permission = "manage_seo"
	PermManageDesign   Permission = "manage_design"

	// Analytics
	PermViewAnalytics   Permission = "view_analytics"
	PermExportAnalytics Permission = "export_analytics"

	// Comments/chat moderation
	PermModerateComments Permission = "moderate_comments"

	// API integrations
	PermManageAPIIntegrations Permission = "manage_api_integrations"
	PermViewAPIIntegrations   Permission = "view_api_integrations"

	// System
	PermSystemSettings Permission = "system_settings"
	PermAccessLogs     Permission = "access_logs"
)

// Permissions returns the full catalog in declaration order.
func Permissions() []Permission {
	return []Permission{
		PermManagePages, PermEditPages, PermPublishPages,
		PermManageMedia, PermUploadMedia, PermDeleteMedia,
		PermManageDeals, PermEditDeals, PermPublishDeals,
		PermManageStores,
		PermManageUsers, PermEditUsers,
		PermManageSettings, PermManageSEO, PermManageDesign,
		PermViewAnalytics, PermExportAnalytics,
		PermModerateComments,
		PermManageAPIIntegrations, PermViewAPIIntegrations,
		PermSystemSettings, PermAccessLogs,
	}
}
