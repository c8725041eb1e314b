package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx         database.Transactor
	users      user.UserRepository
	sessions   user.SessionRepository
	jwtService jwt.Service
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

type Option func(*AuthServiceImpl)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(a *AuthServiceImpl) { a.now = now }
}

// WithBcryptCost lowers the hashing cost, for tests
func WithBcryptCost(cost int) Option {
	return func(a *AuthServiceImpl) { a.bcryptCost = cost }
}

func NewAuthService(tx database.Transactor, users user.UserRepository, sessions user.SessionRepository, jwtService jwt.Service, sessionTTL time.Duration, opts ...Option) auth.AuthService {
	a := &AuthServiceImpl{
		tx:         tx,
		users:      users,
		sessions:   sessions,
		jwtService: jwtService,
		sessionTTL: sessionTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Signup implements auth.AuthService.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.SessionResponse, error) {
	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var resp auth.SessionResponse
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := a.users.Create(ctx, user.User{
			Username:     req.Username,
			PasswordHash: hash,
			DisplayName:  req.DisplayName,
		})
		if err != nil {
			if errors.Is(err, user.ErrUsernameExists) {
				return auth.ErrUsernameTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		resp, err = a.startSession(ctx, created)
		return err
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}

	slog.Info("user signed up", "user_id", resp.User.ID)
	return resp, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.SessionResponse, error) {
	userData, err := a.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	return a.startSession(ctx, userData)
}

func (a *AuthServiceImpl) startSession(ctx context.Context, u user.User) (auth.SessionResponse, error) {
	now := a.now()
	session, err := a.sessions.Create(ctx, user.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: now.Add(a.sessionTTL).Truncate(time.Second),
		CreatedAt: now,
	})
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := a.jwtService.GenerateSessionToken(session.ID, u.ID, session.ExpiresAt)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return auth.SessionResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user.NewUserResponse(u),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := a.jwtService.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	if err := a.sessions.Delete(ctx, claims.SessionID); err != nil && !errors.Is(err, user.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, sessionID string, userID int64) (user.User, error) {
	session, err := a.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, user.ErrSessionNotFound) {
			return user.User{}, auth.ErrUnauthenticated
		}
		return user.User{}, fmt.Errorf("failed to get session: %w", err)
	}

	if session.UserID != userID {
		return user.User{}, auth.ErrInvalidToken
	}

	if session.IsExpired(a.now()) {
		if err := a.sessions.Delete(ctx, session.ID); err != nil && !errors.Is(err, user.ErrSessionNotFound) {
			slog.Error("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return user.User{}, auth.ErrUnauthenticated
	}

	u, err := a.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrUnauthenticated
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return u, nil
}

// CleanupExpiredSessions implements auth.AuthService.
func (a *AuthServiceImpl) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return a.sessions.DeleteExpired(ctx, a.now())
}
