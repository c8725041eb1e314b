package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/response"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
)

type userContextKey struct{}

// Verifier reads the session token from the session cookie, falling back to
// an "Authorization: Bearer" header for API clients.
func Verifier(jwtService jwt.Service) func(http.Handler) http.Handler {
	return jwtauth.Verify(jwtService.JWTAuth(), jwt.TokenFromCookie(jwtService.CookieName()), jwtauth.TokenFromHeader)
}

// AuthRequired resolves the verified token to a live session and stores the
// session's user in the request context.
func AuthRequired(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			claims, err := jwtService.ClaimsFromToken(token)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			u, err := authService.Authenticate(r.Context(), claims.SessionID, claims.UserID)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) || errors.Is(err, auth.ErrInvalidToken) {
					http.SetCookie(w, jwtService.ClearSessionCookie())
				} else {
					slog.Error("session lookup failed", "error", err)
				}
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		}
		return http.HandlerFunc(hfn)
	}
}

// WithUser returns a copy of ctx carrying u
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext returns the authenticated user set by AuthRequired
func UserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(user.User)
	return u, ok
}
