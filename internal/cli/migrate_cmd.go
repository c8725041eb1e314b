package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tempus-hq/tempus-backend-go/internal/cli/formatter"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Migrate == nil {
				return fmt.Errorf("migrations are not configured")
			}
			if err := app.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("applying schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Schema is up to date"))
			return nil
		},
	}
}
