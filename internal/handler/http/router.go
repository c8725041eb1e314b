package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/tempus-hq/tempus-backend-go/internal/config"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/middleware"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
)

type Handlers struct {
	Auth   AuthHandler
	Punch  PunchHandler
	Report ReportHandler
	Stream StreamHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, authService auth.AuthService, m *metrics.Metrics, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(m.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
			r.Post("/signout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Verifier(jwtService))
				r.Use(middleware.AuthRequired(jwtService, authService))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(jwtService))
			r.Use(middleware.AuthRequired(jwtService, authService))

			r.Post("/clock", h.Punch.Clock)

			r.Route("/status", func(r chi.Router) {
				r.Get("/", h.Punch.Status)
				r.Get("/stream", h.Stream.StatusStream)
			})

			r.Route("/records", func(r chi.Router) {
				r.Get("/", h.Punch.ListRecords)
				r.Get("/pdf", h.Report.MonthlyPDF)
				r.Put("/{id}", h.Punch.UpdateRecord)
				r.Delete("/{id}", h.Punch.DeleteRecord)
			})
		})
	})
	return r
}
