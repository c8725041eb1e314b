package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
)

const userColumns = `id, username, password_hash, display_name, created_at, updated_at`

// UserRepo implements user.UserRepository on SQLite.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row rowScanner) (user.User, error) {
	var (
		u                    user.User
		displayName          sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &displayName, &createdAt, &updatedAt); err != nil {
		return user.User{}, err
	}
	if displayName.Valid {
		u.DisplayName = &displayName.String
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	now := toMillis(time.Now())
	query := `INSERT INTO users (username, password_hash, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + userColumns

	created, err := scanUser(querier(ctx, r.db).QueryRowContext(ctx, query,
		newUser.Username, newUser.PasswordHash, newUser.DisplayName, now, now))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (user.User, error) {
	u, err := scanUser(querier(ctx, r.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
