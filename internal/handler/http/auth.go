package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/middleware"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/response"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Signup implements AuthHandler.
func (a *AuthHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	var signupReq auth.SignupRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&signupReq); err != nil {
		slog.Error("Signup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := signupReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	sessionResponse, err := a.authService.Signup(r.Context(), signupReq)
	if err != nil {
		slog.Error("Signup service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	http.SetCookie(w, a.jwtService.SessionCookie(sessionResponse.Token, sessionResponse.ExpiresAt))
	slog.Info("User signed up successfully", "user_id", sessionResponse.User.ID)
	response.Created(w, "User signed up successfully", sessionResponse)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	sessionResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "username", loginReq.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	http.SetCookie(w, a.jwtService.SessionCookie(sessionResponse.Token, sessionResponse.ExpiresAt))
	slog.Info("User logged in successfully", "user_id", sessionResponse.User.ID)
	response.SuccessWithMessage(w, "User logged in successfully", sessionResponse)
}

// Logout implements AuthHandler. It always clears the cookie, even when the
// session is already gone.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := jwt.TokenFromCookie(a.jwtService.CookieName())(r)

	if err := a.authService.Logout(r.Context(), token); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.ClearSessionCookie())
	response.SuccessWithMessage(w, "Signed out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}
	response.Success(w, user.NewUserResponse(u))
}
