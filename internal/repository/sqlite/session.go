package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
)

// SessionRepo implements user.SessionRepository on SQLite.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, session user.Session) (user.Session, error) {
	createdAt := time.Now()
	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	_, err := querier(ctx, r.db).ExecContext(ctx, query,
		session.ID,
		session.UserID,
		toMillis(session.ExpiresAt),
		toMillis(createdAt),
	)
	if err != nil {
		return user.Session{}, fmt.Errorf("inserting session: %w", err)
	}

	session.ExpiresAt = fromMillis(toMillis(session.ExpiresAt))
	session.CreatedAt = fromMillis(toMillis(createdAt))
	return session, nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (user.Session, error) {
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?`

	var (
		s                    user.Session
		expiresAt, createdAt int64
	)
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.Session{}, user.ErrSessionNotFound
		}
		return user.Session{}, fmt.Errorf("getting session: %w", err)
	}
	s.ExpiresAt = fromMillis(expiresAt)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return res.RowsAffected()
}
