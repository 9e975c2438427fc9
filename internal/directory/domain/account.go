package domain

import (
	"net/url"
	"time"
)

// Status describes an account's standing.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
	StatusBanned   Status = "banned"
)

// Account represents one user identity. Permissions is the denormalized
// effective set: it tracks the referenced role's defaults except after an
// explicit permission override, which holds until the next role change.
type Account struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Password    string       `json:"password"` // stored form per the configured CredentialVerifier
	DisplayName string       `json:"displayName"`
	PhotoURL    string       `json:"photoURL"`
	IsAdmin     bool         `json:"isAdmin"`
	RoleID      string       `json:"role"`
	Permissions []Permission `json:"permissions"`
	LastLogin   *time.Time   `json:"lastLogin,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Status      Status       `json:"status"`
	Preferences Preferences  `json:"preferences"`
	TwoFactor   TwoFactor    `json:"twoFactor"`
}

type Preferences struct {
	DarkMode      bool          `json:"darkMode"`
	Language      string        `json:"language"`
	Notifications Notifications `json:"notifications"`
}

type Notifications struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// DefaultPreferences are applied to self-registered accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode: false,
		Language: "en",
		Notifications: Notifications{
			Email: true,
			Push:  true,
		},
	}
}

// HasPermission reports whether the account's effective set contains tag.
func (a Account) HasPermission(tag Permission) bool {
	for _, p := range a.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}

// AvatarURL derives a ui-avatars.com image URL from a display name.
func AvatarURL(displayName, background string) string {
	q := url.Values{}
	q.Set("name", displayName)
	q.Set("background", background)
	q.Set("color", "fff")
	return "https://ui-avatars.com/api/?" + q.Encode()
}
