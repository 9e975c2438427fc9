package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salesaholics/dealsdir/internal/directory/app"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dealsdir",
		Short: "Account and access directory for the deals site",
		Long: `dealsdir manages the site's accounts, roles, permissions and
two-factor enrollment. State lives in a local durable store; the session
established by login persists until logout.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newVerifyCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newUsersCmd(),
		newRolesCmd(),
		newTwoFactorCmd(),
	)
	return root
}

// withApp loads the application around fn and tears it down afterwards.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx := context.Background()

	a, err := app.New(ctx, app.LoadConfig())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(ctx, a)
}
