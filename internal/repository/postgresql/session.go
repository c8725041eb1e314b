package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) user.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// Create implements user.SessionRepository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, session user.Session) (user.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, expires_at, created_at
	`

	var created user.Session
	err := q.QueryRow(ctx, query, session.ID, session.UserID, session.ExpiresAt.UTC()).Scan(
		&created.ID,
		&created.UserID,
		&created.ExpiresAt,
		&created.CreatedAt,
	)
	if err != nil {
		return user.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return created, nil
}

// GetByID implements user.SessionRepository.
func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (user.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`

	var s user.Session
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Session{}, user.ErrSessionNotFound
		}
		return user.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// Delete implements user.SessionRepository.
func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired implements user.SessionRepository.
func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
