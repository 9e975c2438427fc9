package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesaholics/dealsdir/internal/directory/app"
)

func newTwoFactorCmd() *cobra.Command {
	twofactor := &cobra.Command{
		Use:   "2fa",
		Short: "Manage two-factor authentication",
	}
	twofactor.AddCommand(
		new2faSetupCmd(),
		new2faVerifyCmd(),
		new2faDisableCmd(),
		new2faCodesCmd(),
	)
	return twofactor
}

func new2faSetupCmd() *cobra.Command {
	var showQR bool

	setup := &cobra.Command{
		Use:   "setup <account-id>",
		Short: "Start two-factor enrollment for an account",
		Long: `Generates a fresh shared secret and prints it with its otpauth://
provisioning URI. Scan or enter it in an authenticator app, then confirm
with "dealsdir 2fa verify". Enrollment is not active until verified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				enrollment := a.Registry.SetupTwoFactor(ctx, args[0])
				if enrollment.Secret == "" {
					return errors.New("enrollment could not start")
				}

				fmt.Printf("secret: %s\n", enrollment.Secret)
				fmt.Printf("uri:    %s\n", enrollment.ProvisioningURI)
				if showQR {
					fmt.Printf("qr:     %s\n", enrollment.QRCode)
				}
				fmt.Printf("\nconfirm with: dealsdir 2fa verify %s <code>\n", args[0])
				return nil
			})
		},
	}

	setup.Flags().BoolVar(&showQR, "qr", false, "also print the QR code as a PNG data URL")
	return setup
}

func new2faVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <account-id> <code>",
		Short: "Confirm enrollment with a live code and print the backup codes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.VerifyTwoFactorSetup(ctx, args[0], args[1]) {
					return errors.New("code rejected")
				}

				fmt.Println("two-factor authentication enabled")
				printBackupCodes(a, args[0])
				return nil
			})
		},
	}
}

func new2faDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <account-id> <password>",
		Short: "Disable two-factor authentication, discarding the secret and backup codes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.DisableTwoFactor(ctx, args[0], args[1]) {
					return errors.New("unknown account or wrong password")
				}
				fmt.Println("two-factor authentication disabled")
				return nil
			})
		},
	}
}

func new2faCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes <account-id>",
		Short: "Replace and print the account's backup codes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				codes := a.Registry.GenerateBackupCodes(ctx, args[0])
				if len(codes) == 0 {
					return errors.New("account unknown or two-factor not enabled")
				}

				fmt.Println("new backup codes (each works once):")
				for _, code := range codes {
					fmt.Printf("  %s\n", code)
				}
				return nil
			})
		},
	}
}

func printBackupCodes(a *app.App, accountID string) {
	for _, u := range a.Registry.Users() {
		if u.ID != accountID {
			continue
		}
		fmt.Println("backup codes (each works once):")
		for _, code := range u.TwoFactor.BackupCodes {
			fmt.Printf("  %s\n", code)
		}
	}
}
