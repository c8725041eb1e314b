package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/config"
	appHTTP "github.com/tempus-hq/tempus-backend-go/internal/handler/http"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/cron"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/notifier"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/sse"
	"github.com/tempus-hq/tempus-backend-go/internal/repository"
	serviceAuth "github.com/tempus-hq/tempus-backend-go/internal/service/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
	notificationService "github.com/tempus-hq/tempus-backend-go/internal/service/notification"
	punchService "github.com/tempus-hq/tempus-backend-go/internal/service/punch"
	reportService "github.com/tempus-hq/tempus-backend-go/internal/service/report"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	calendar := ledger.NewCalendar(cfg.Ledger.ReferenceOffset)
	m := metrics.New()
	hub := sse.NewHub()

	JWTService := jwt.NewJWTService(cfg.Session.Secret, jwt.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	})

	sinks, closeSinks, err := notifier.FromConfig(cfg, hub, calendar.Location())
	if err != nil {
		return fmt.Errorf("building notification sinks: %w", err)
	}
	dispatcher := notificationService.NewDispatcher(sinks, m, notificationService.Config{
		WorkerCount: cfg.Notifier.Workers,
		QueueSize:   cfg.Notifier.QueueSize,
		Timeout:     cfg.Notifier.Timeout,
	})

	authService := serviceAuth.NewAuthService(store.Transactor, store.Users, store.Sessions, JWTService, cfg.Session.TTL)
	punchSvc := punchService.NewPunchService(store.Transactor, store.Punches, calendar,
		punchService.WithDispatcher(dispatcher),
		punchService.WithMetrics(m),
	)
	reportSvc := reportService.NewReportService(store.Punches, calendar)

	router := appHTTP.NewRouter(cfg, JWTService, authService, m, appHTTP.Handlers{
		Auth:   appHTTP.NewAuthHandler(JWTService, authService),
		Punch:  appHTTP.NewPunchHandler(punchSvc, calendar),
		Report: appHTTP.NewReportHandler(reportSvc, calendar),
		Stream: appHTTP.NewStreamHandler(hub, punchSvc, m),
	})

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(authService, m).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.App.Env, "utc_offset", cfg.Ledger.ReferenceOffset.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Streams hold their connections open, so Shutdown alone would wait out the timeout.
	server.RegisterOnShutdown(hub.CloseAll)
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", "error", err)
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		slog.Warn("notification dispatcher did not drain", "error", err)
	}
	if err := closeSinks(); err != nil {
		slog.Warn("closing notification sinks", "error", err)
	}
	scheduler.Stop()

	slog.Info("server stopped")
	return nil
}
