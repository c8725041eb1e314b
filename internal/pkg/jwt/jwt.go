package jwt

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const sessionTokenType = "session"

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims identifies the server-side session a cookie refers to.
type SessionClaims struct {
	SessionID string
	UserID    int64
	ExpiresAt time.Time
}

type Service interface {
	GenerateSessionToken(sessionID string, userID int64, expiresAt time.Time) (string, error)
	ParseSessionToken(tokenString string) (SessionClaims, error)
	ClaimsFromToken(token jwt.Token) (SessionClaims, error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	ClearSessionCookie() *http.Cookie
	CookieName() string
}

type CookieOptions struct {
	Name   string
	Secure bool
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
	cookie    CookieOptions
}

func NewJWTService(secretKey string, cookie CookieOptions) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		cookie:    cookie,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) CookieName() string {
	return j.cookie.Name
}

func (j *JWTService) GenerateSessionToken(sessionID string, userID int64, expiresAt time.Time) (string, error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		jwt.JwtIDKey:      sessionID,
		jwt.SubjectKey:    strconv.FormatInt(userID, 10),
		jwt.ExpirationKey: expiresAt.Unix(),
		"type":            sessionTokenType,
	})
	return tokenString, err
}

// ParseSessionToken verifies the signature and expiry of tokenString.
func (j *JWTService) ParseSessionToken(tokenString string) (SessionClaims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return SessionClaims{}, err
	}
	return j.ClaimsFromToken(token)
}

// ClaimsFromToken reads the session claims of an already verified token.
func (j *JWTService) ClaimsFromToken(token jwt.Token) (SessionClaims, error) {
	if token == nil {
		return SessionClaims{}, ErrInvalidSessionToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != sessionTokenType {
		return SessionClaims{}, ErrInvalidSessionToken
	}

	sessionID := token.JwtID()
	if sessionID == "" {
		return SessionClaims{}, ErrInvalidSessionToken
	}

	userID, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil {
		return SessionClaims{}, ErrInvalidSessionToken
	}

	return SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		ExpiresAt: token.Expiration(),
	}, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     j.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   j.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     j.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromCookie returns a jwtauth token finder for the named cookie.
func TokenFromCookie(name string) func(r *http.Request) string {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}
