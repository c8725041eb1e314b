package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

// SessionCleaner deletes sessions past their expiry and reports how many.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// App holds what the operator commands need from the storage backend.
type App struct {
	Users    user.UserRepository
	Punches  punch.Repository
	Sessions SessionCleaner
	Calendar ledger.Calendar
	Migrate  func(ctx context.Context) error
}

// NewRootCmd creates the top-level "tempusctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tempusctl",
		Short:         "Operator tools for the Tempus attendance ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(app),
		newStatsCmd(app),
		newSessionsCmd(app),
	)

	return root
}
