package repository

import (
	"context"
	"fmt"

	"github.com/tempus-hq/tempus-backend-go/internal/config"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
	"github.com/tempus-hq/tempus-backend-go/internal/repository/postgresql"
	"github.com/tempus-hq/tempus-backend-go/internal/repository/sqlite"
)

// Store bundles the repositories of one storage backend.
type Store struct {
	Punches    punch.Repository
	Users      user.UserRepository
	Sessions   user.SessionRepository
	Transactor database.Transactor

	migrate func(ctx context.Context) error
	close   func()
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return &Store{
			Punches:    postgresql.NewPunchRepository(db),
			Users:      postgresql.NewUserRepository(db),
			Sessions:   postgresql.NewSessionRepository(db),
			Transactor: postgresql.NewTransactor(db),
			migrate:    db.Migrate,
			close:      db.Close,
		}, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return &Store{
			Punches:    sqlite.NewPunchRepository(db),
			Users:      sqlite.NewUserRepository(db),
			Sessions:   sqlite.NewSessionRepository(db),
			Transactor: sqlite.NewTransactor(db),
			migrate: func(ctx context.Context) error {
				return database.MigrateSQLite(ctx, db)
			},
			close: func() { db.Close() },
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

// Migrate applies the backend's schema.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

func (s *Store) Close() {
	s.close()
}
