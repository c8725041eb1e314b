package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage login sessions",
	}

	cmd.AddCommand(newSessionsCleanupCmd(app))

	return cmd
}

func newSessionsCleanupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Sessions.CleanupExpiredSessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("cleanup expired sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired session(s)\n", removed)
			return nil
		},
	}
}
