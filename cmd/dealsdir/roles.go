package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salesaholics/dealsdir/internal/directory/app"
	"github.com/salesaholics/dealsdir/internal/directory/domain"
)

func newRolesCmd() *cobra.Command {
	roles := &cobra.Command{
		Use:   "roles",
		Short: "Manage the role catalog",
	}
	roles.AddCommand(newRolesListCmd(), newRolesCreateCmd(), newRolesDeleteCmd())
	return roles
}

func newRolesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all roles and their permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSYSTEM\tPERMISSIONS")
				for _, role := range a.Registry.Roles() {
					tags := make([]string, len(role.Permissions))
					for i, p := range role.Permissions {
						tags[i] = string(p)
					}
					fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
						role.ID, role.Name, role.IsSystem, strings.Join(tags, ","))
				}
				return w.Flush()
			})
		},
	}
}

func newRolesCreateCmd() *cobra.Command {
	var description string
	var permissions []string

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a custom role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				perms := make([]domain.Permission, 0, len(permissions))
				for _, tag := range permissions {
					perms = append(perms, domain.Permission(tag))
				}

				ok := a.Registry.CreateRole(ctx, domain.Role{
					Name:        args[0],
					Permissions: perms,
					Description: description,
				})
				if !ok {
					return errors.New("a role with that name already exists")
				}
				fmt.Println("role created")
				return nil
			})
		},
	}

	create.Flags().StringVar(&description, "description", "", "role description")
	create.Flags().StringSliceVar(&permissions, "permission", nil, "permission tag (repeatable)")
	return create
}

func newRolesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <role-id>",
		Short: "Delete a custom role, reassigning its accounts to Subscriber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				if !a.Registry.DeleteRole(ctx, args[0]) {
					return errors.New("role unknown or a system role")
				}
				fmt.Println("role deleted")
				return nil
			})
		},
	}
}
