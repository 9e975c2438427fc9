package domain

import "time"

// DemoAccounts returns the fixed demo account set seeded on a cold start
// when the durable store holds no users. Passwords are plaintext here; the
// registry runs them through its CredentialVerifier before storing.
func DemoAccounts() []Account {
	return []Account{
		{
			ID:          "1",
			Email:       "admin@salesaholicsdeals.com",
			Password:    "admin123",
			DisplayName: "Admin User",
			PhotoURL:    AvatarURL("Admin User", "982a4a"),
			IsAdmin:     true,
			RoleID:      RoleSuperAdmin,
			Permissions: Permissions(),
			CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:      StatusActive,
			Preferences: Preferences{
				DarkMode: false,
				Language: "en",
				Notifications: Notifications{
					Email: true,
					Push:  true,
				},
			},
			TwoFactor: DisabledTwoFactor(),
		},
		{
			ID:          "2",
			Email:       "editor@example.com",
			Password:    "password",
			DisplayName: "Editor User",
			PhotoURL:    AvatarURL("Editor User", "3182ce"),
			IsAdmin:     false,
			RoleID:      RoleEditor,
			Permissions: rolePermissions(RoleEditor),
			CreatedAt:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Status:      StatusActive,
			Preferences: Preferences{
				DarkMode: true,
				Language: "en",
				Notifications: Notifications{
					Email: true,
					Push:  false,
				},
			},
			TwoFactor: DisabledTwoFactor(),
		},
		{
			ID:          "3",
			Email:       "moderator@example.com",
			Password:    "password",
			DisplayName: "Moderator User",
			PhotoURL:    AvatarURL("Moderator User", "38a169"),
			IsAdmin:     false,
			RoleID:      RoleModerator,
			Permissions: rolePermissions(RoleModerator),
			CreatedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Status:      StatusActive,
			Preferences: Preferences{
				DarkMode: false,
				Language: "en",
				Notifications: Notifications{
					Email: false,
					Push:  true,
				},
			},
			TwoFactor: DisabledTwoFactor(),
		},
		{
			ID:          "4",
			Email:       "user@example.com",
			Password:    "password",
			DisplayName: "Regular User",
			PhotoURL:    AvatarURL("Regular User", "718096"),
			IsAdmin:     false,
			RoleID:      RoleSubscriber,
			Permissions: rolePermissions(RoleSubscriber),
			CreatedAt:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Status:      StatusActive,
			Preferences: Preferences{
				DarkMode: false,
				Language: "en",
				Notifications: Notifications{
					Email: true,
					Push:  true,
				},
			},
			TwoFactor: DisabledTwoFactor(),
		},
	}
}

// rolePermissions returns the default permission set of a seeded role.
func rolePermissions(roleID string) []Permission {
	for _, r := range DefaultRoles() {
		if r.ID == roleID {
			return r.Permissions
		}
	}
	return []Permission{}
}
