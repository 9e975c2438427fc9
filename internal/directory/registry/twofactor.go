package registry

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"log/slog"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/salesaholics/dealsdir/internal/directory/domain"
	"github.com/salesaholics/dealsdir/pkg/cryptox"
)

const (
	backupCodeCount  = 10 // number of backup codes issued per enrollment
	backupCodeDigits = 6

	totpPeriod = 30 // seconds per time step
	totpSkew   = 1  // accepted drift: current step plus/minus one

	qrImageSize = 200 // pixels, square
)

// TwoFactorEnrollment is returned by SetupTwoFactor: the raw shared secret,
// the otpauth:// provisioning URI, and the same URI rendered as a PNG data
// URL for display as a scannable QR code. All fields are empty when
// enrollment could not start.
type TwoFactorEnrollment struct {
	Secret          string
	ProvisioningURI string
	QRCode          string
}

// SetupTwoFactor generates a fresh TOTP secret for the account and stores
// it in the pending (not yet enabled) state. When the account is unknown or
// the QR payload cannot be rendered, the result is empty and nothing is
// persisted.
func (r *Registry) SetupTwoFactor(ctx context.Context, accountID string) TwoFactorEnrollment {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findAccount(accountID)
	if i < 0 {
		return TwoFactorEnrollment{}
	}
	account := r.accounts[i]

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      r.issuer,
		AccountName: account.Email,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		r.log.Error("failed to generate TOTP key", slog.Any("error", err))
		return TwoFactorEnrollment{}
	}

	qr, err := renderQRCode(key)
	if err != nil {
		// No partial state: the secret is only stored once the payload
		// rendered, so a failed setup leaves the account untouched.
		r.log.Error("failed to render QR code", slog.Any("error", err))
		return TwoFactorEnrollment{}
	}

	r.updateAccount(ctx, accountID, func(a *domain.Account) {
		a.TwoFactor.Secret = key.Secret()
		a.TwoFactor.Enabled = false
		a.TwoFactor.SetupComplete = false
	})

	return TwoFactorEnrollment{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		QRCode:          qr,
	}
}

// VerifyTwoFactorSetup checks a live code against the pending secret; on
// success the account's two-factor state becomes enabled with exactly ten
// fresh single-use backup codes.
func (r *Registry) VerifyTwoFactorSetup(ctx context.Context, accountID, code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findAccount(accountID)
	if i < 0 || r.accounts[i].TwoFactor.Secret == "" {
		return false
	}

	if !r.validateCode(code, r.accounts[i].TwoFactor.Secret) {
		return false
	}

	codes, err := newBackupCodes()
	if err != nil {
		r.log.Error("failed to generate backup codes", slog.Any("error", err))
		return false
	}

	now := r.now().UTC()
	r.updateAccount(ctx, accountID, func(a *domain.Account) {
		a.TwoFactor.Enabled = true
		a.TwoFactor.SetupComplete = true
		a.TwoFactor.VerifiedOn = &now
		a.TwoFactor.BackupCodes = codes
	})

	r.track("two_factor_enabled", map[string]any{"account_id": accountID})
	return true
}

// VerifyTwoFactorCode completes a pending login. The code is first checked
// as a live TOTP code; failing that, as one of the account's unused backup
// codes. A matched backup code is consumed, preserving the order of the
// remaining codes.
func (r *Registry) VerifyTwoFactorCode(ctx context.Context, accountID, code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findAccount(accountID)
	if i < 0 {
		return false
	}
	account := r.accounts[i]
	if !account.TwoFactor.Enabled || account.TwoFactor.Secret == "" {
		return false
	}

	if r.validateCode(code, account.TwoFactor.Secret) {
		r.completeLogin(ctx, accountID, "totp", nil)
		return true
	}

	for j, backup := range account.TwoFactor.BackupCodes {
		if backup != code {
			continue
		}
		remaining := make([]string, 0, len(account.TwoFactor.BackupCodes)-1)
		remaining = append(remaining, account.TwoFactor.BackupCodes[:j]...)
		remaining = append(remaining, account.TwoFactor.BackupCodes[j+1:]...)
		r.completeLogin(ctx, accountID, "backup_code", remaining)
		return true
	}

	return false
}

// DisableTwoFactor resets the account's two-factor state after checking the
// account password. The secret and any unused backup codes are discarded
// irrecoverably.
func (r *Registry) DisableTwoFactor(ctx context.Context, accountID, password string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findAccount(accountID)
	if i < 0 || r.credentials.Verify(password, r.accounts[i].Password) != nil {
		return false
	}

	r.updateAccount(ctx, accountID, func(a *domain.Account) {
		a.TwoFactor = domain.DisabledTwoFactor()
	})

	r.track("two_factor_disabled", map[string]any{"account_id": accountID})
	return true
}

// GenerateBackupCodes replaces the account's backup codes with ten fresh
// ones, discarding any unconsumed codes. Returns the new codes, or nil when
// the account is unknown or two-factor is not enabled.
func (r *Registry) GenerateBackupCodes(ctx context.Context, accountID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.findAccount(accountID)
	if i < 0 || !r.accounts[i].TwoFactor.Enabled {
		return nil
	}

	codes, err := newBackupCodes()
	if err != nil {
		r.log.Error("failed to generate backup codes", slog.Any("error", err))
		return nil
	}

	r.updateAccount(ctx, accountID, func(a *domain.Account) {
		a.TwoFactor.BackupCodes = codes
	})

	return append([]string{}, codes...)
}

// completeLogin stamps LastLogin and TwoFactor.LastUsed, optionally swaps
// in a reduced backup-code sequence, and establishes the session. Callers
// hold the lock.
func (r *Registry) completeLogin(ctx context.Context, accountID, method string, backupCodes []string) {
	now := r.now().UTC()
	r.updateAccount(ctx, accountID, func(a *domain.Account) {
		a.LastLogin = &now
		a.TwoFactor.LastUsed = &now
		if backupCodes != nil {
			a.TwoFactor.BackupCodes = backupCodes
		}
	})
	r.setSession(ctx, r.accounts[r.findAccount(accountID)])
	r.track("login", map[string]any{"account_id": accountID, "method": method})
}

// validateCode checks a 6-digit code against a base32 secret over the
// current time step plus/minus totpSkew steps of drift.
func (r *Registry) validateCode(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, r.now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// newBackupCodes issues backupCodeCount random 6-digit codes. Within-set
// collisions are not screened; a duplicated code is simply consumable once
// per copy.
func newBackupCodes() ([]string, error) {
	codes := make([]string, backupCodeCount)
	for i := range codes {
		code, err := cryptox.NumericCode(backupCodeDigits)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// renderQRCode encodes the provisioning URI as a PNG data URL.
func renderQRCode(key *otp.Key) (string, error) {
	img, err := key.Image(qrImageSize, qrImageSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
