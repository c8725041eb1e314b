package auth

import (
	"context"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
)

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)

	// Logout deletes the session behind token. Unknown or invalid tokens are not an error.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a verified session token to its user. Expired
	// sessions are deleted and reported as ErrUnauthenticated.
	Authenticate(ctx context.Context, sessionID string, userID int64) (user.User, error)

	// CleanupExpiredSessions removes sessions past their expiry
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
