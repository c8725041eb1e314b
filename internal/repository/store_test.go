package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/config"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}}
	ctx := context.Background()

	store, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.Migrate(ctx))

	created, err := store.Users.Create(ctx, user.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)

	got, err := store.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Database: config.DatabaseConfig{Driver: "mysql"}})
	assert.Error(t, err)
}
