package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salesaholics/dealsdir/internal/directory/app"
	"github.com/salesaholics/dealsdir/internal/directory/domain"
)

func newUsersCmd() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}
	users.AddCommand(
		newUsersListCmd(),
		newUsersDeleteCmd(),
		newUsersSetRoleCmd(),
		newUsersSetPermissionsCmd(),
	)
	return users
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tSTATUS\t2FA")
				for _, u := range a.Registry.Users() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\n",
						u.ID, u.Email, u.DisplayName, u.RoleID, u.Status, u.TwoFactor.Enabled)
				}
				return w.Flush()
			})
		},
	}
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.DeleteUser(ctx, args[0]) {
					return errors.New("account unknown, or it is the last one left")
				}
				fmt.Println("deleted")
				return nil
			})
		},
	}
}

func newUsersSetRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <account-id> <role-id>",
		Short: "Reassign an account's role, resetting its permissions to the role default",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.UpdateUserRole(ctx, args[0], args[1]) {
					return errors.New("unknown account or role")
				}
				fmt.Println("role updated")
				return nil
			})
		},
	}
}

func newUsersSetPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-permissions <account-id> [tag...]",
		Short: "Override an account's effective permissions until its next role change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				perms := make([]domain.Permission, 0, len(args)-1)
				for _, tag := range args[1:] {
					perms = append(perms, domain.Permission(tag))
				}

				if !a.Registry.UpdateUserPermissions(ctx, args[0], perms) {
					return errors.New("unknown account")
				}
				fmt.Println("permissions updated")
				return nil
			})
		},
	}
}
