package domain

import "time"

// TwoFactor holds an account's two-factor authentication state.
//
// Lifecycle: disabled -> (setup populates Secret, still disabled) ->
// (verified setup enables and issues backup codes) -> (disable resets
// everything, discarding the secret and codes).
type TwoFactor struct {
	Enabled       bool       `json:"enabled"`
	Secret        string     `json:"secret,omitempty"` // base32 TOTP secret
	BackupCodes   []string   `json:"backupCodes"`      // ordered, each single-use
	VerifiedOn    *time.Time `json:"verifiedOn,omitempty"`
	LastUsed      *time.Time `json:"lastUsed,omitempty"`
	SetupComplete bool       `json:"setupComplete"`
}

// DisabledTwoFactor is the initial (and post-disable) state.
func DisabledTwoFactor() TwoFactor {
	return TwoFactor{
		Enabled:       false,
		SetupComplete: false,
		BackupCodes:   []string{},
	}
}
