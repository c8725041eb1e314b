package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/config"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/sse"
	"github.com/tempus-hq/tempus-backend-go/internal/repository/sqlite"
	authService "github.com/tempus-hq/tempus-backend-go/internal/service/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
	punchService "github.com/tempus-hq/tempus-backend-go/internal/service/punch"
	reportService "github.com/tempus-hq/tempus-backend-go/internal/service/report"
	"golang.org/x/crypto/bcrypt"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	cookieName        = "tempus_session"
)

type testServer struct {
	router *chi.Mux
	hub    *sse.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		App:  config.AppConfig{Name: "tempus-test", Version: "test", Env: "test", LogLevel: "error"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	calendar := ledger.NewCalendar(ledger.DefaultOffset)
	tx := sqlite.NewTransactor(db)
	punches := sqlite.NewPunchRepository(db)
	jwtSvc := jwt.NewJWTService(handlerTestSecret, jwt.CookieOptions{Name: cookieName})
	authSvc := authService.NewAuthService(tx, sqlite.NewUserRepository(db), sqlite.NewSessionRepository(db), jwtSvc, time.Hour,
		authService.WithBcryptCost(bcrypt.MinCost))
	punchSvc := punchService.NewPunchService(tx, punches, calendar)
	m := metrics.New()
	hub := sse.NewHub()

	router := NewRouter(cfg, jwtSvc, authSvc, m, Handlers{
		Auth:   NewAuthHandler(jwtSvc, authSvc),
		Punch:  NewPunchHandler(punchSvc, calendar),
		Report: NewReportHandler(reportService.NewReportService(punches, calendar), calendar),
		Stream: NewStreamHandler(hub, punchSvc, m),
	})
	return &testServer{router: router, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signup registers username and returns its session cookie.
func (s *testServer) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", cookieName)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := decode(t, rec)
	require.True(t, env.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}
