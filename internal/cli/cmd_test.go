package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
	"github.com/tempus-hq/tempus-backend-go/internal/repository/sqlite"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

type cleanerFunc func(ctx context.Context) (int64, error)

func (f cleanerFunc) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return f(ctx)
}

// testApp wires an App backed by an in-memory DB.
func testApp(t *testing.T) (*App, user.User) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	name := "Alice A."
	u, err := sqlite.NewUserRepository(db).Create(context.Background(), user.User{
		Username:     "alice",
		PasswordHash: "hash",
		DisplayName:  &name,
	})
	require.NoError(t, err)

	return &App{
		Users:    sqlite.NewUserRepository(db),
		Punches:  sqlite.NewPunchRepository(db),
		Sessions: cleanerFunc(func(context.Context) (int64, error) { return 3, nil }),
		Calendar: ledger.NewCalendar(ledger.DefaultOffset),
		Migrate: func(ctx context.Context) error {
			return database.MigrateSQLite(ctx, db)
		},
	}, u
}

func seedPunch(t *testing.T, app *App, userID int64, ts string, kind punch.Kind) {
	t.Helper()
	at, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	_, err = app.Punches.Create(context.Background(), punch.Punch{
		UserID:    userID,
		Timestamp: at,
		Kind:      kind,
		Source:    punch.SourceWeb,
	})
	require.NoError(t, err)
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatsCmd(t *testing.T) {
	app, u := testApp(t)

	seedPunch(t, app, u.ID, "2024-03-01T09:00:00+09:00", punch.KindWork)
	seedPunch(t, app, u.ID, "2024-03-01T12:00:00+09:00", punch.KindBreak)
	seedPunch(t, app, u.ID, "2024-03-01T12:30:00+09:00", punch.KindBreak)
	seedPunch(t, app, u.ID, "2024-03-01T18:00:00+09:00", punch.KindWork)
	seedPunch(t, app, u.ID, "2024-03-07T09:15:00+09:00", punch.KindWork)

	out, err := execute(t, app, "stats", "--user", fmt.Sprint(u.ID), "--year", "2024", "--month", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Alice A.")
	assert.Contains(t, out, "2024/03")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "18:00")
	assert.Contains(t, out, "0:30")
	assert.Contains(t, out, "9:00")
	assert.Contains(t, out, "missing clock-out")
	assert.Contains(t, out, "Incomplete: 2024-03-07")
	assert.Contains(t, out, "8:30")
}

func TestStatsCmd_EmptyMonth(t *testing.T) {
	app, u := testApp(t)

	out, err := execute(t, app, "stats", "--user", fmt.Sprint(u.ID), "--year", "2024", "--month", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "No punches recorded this month.")
}

func TestStatsCmd_Errors(t *testing.T) {
	app, u := testApp(t)

	_, err := execute(t, app, "stats", "--user", "99", "--year", "2024", "--month", "3")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = execute(t, app, "stats", "--user", fmt.Sprint(u.ID), "--year", "2024", "--month", "13")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = execute(t, app, "stats", "--year", "2024")
	assert.Error(t, err)
}

func TestMigrateCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := execute(t, app, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date")
}

func TestSessionsCleanupCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := execute(t, app, "sessions", "cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 expired session(s)")

	app.Sessions = cleanerFunc(func(context.Context) (int64, error) { return 0, errors.New("db down") })
	_, err = execute(t, app, "sessions", "cleanup")
	assert.ErrorContains(t, err, "db down")
}
