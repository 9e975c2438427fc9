package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesaholics/dealsdir/internal/directory/app"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <email> <password> <display-name>",
		Short: "Create a new subscriber account and sign in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.Register(ctx, args[0], args[1], args[2]) {
					return errors.New("an account with that email already exists")
				}

				current, _ := a.Registry.CurrentUser()
				fmt.Printf("registered %s (%s)\n", current.DisplayName, current.ID)
				return nil
			})
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in with email and password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				res := a.Registry.Login(ctx, args[0], args[1])
				if !res.Success {
					return errors.New("invalid email or password")
				}
				if res.RequiresTwoFactor {
					fmt.Printf("two-factor code required; run: dealsdir verify %s <code>\n", res.AccountID)
					return nil
				}

				current, _ := a.Registry.CurrentUser()
				fmt.Printf("signed in as %s\n", current.DisplayName)
				return nil
			})
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <account-id> <code>",
		Short: "Complete a pending login with a TOTP or backup code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.VerifyTwoFactorCode(ctx, args[0], args[1]) {
					return errors.New("code rejected")
				}

				current, _ := a.Registry.CurrentUser()
				fmt.Printf("signed in as %s\n", current.DisplayName)
				return nil
			})
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				a.Registry.Logout(ctx)
				fmt.Println("signed out")
				return nil
			})
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				current, ok := a.Registry.CurrentUser()
				if !ok {
					return errors.New("not signed in")
				}

				fmt.Printf("%s <%s>\n", current.DisplayName, current.Email)
				fmt.Printf("  id:     %s\n", current.ID)
				fmt.Printf("  role:   %s\n", current.RoleID)
				fmt.Printf("  status: %s\n", current.Status)
				fmt.Printf("  2fa:    %v\n", current.TwoFactor.Enabled)
				return nil
			})
		},
	}
}
