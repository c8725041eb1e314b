package user

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session that expired before now and returns how many were removed
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
