package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/cli"
	"github.com/tempus-hq/tempus-backend-go/internal/config"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/jwt"
	"github.com/tempus-hq/tempus-backend-go/internal/repository"
	serviceAuth "github.com/tempus-hq/tempus-backend-go/internal/service/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	JWTService := jwt.NewJWTService(cfg.Session.Secret, jwt.CookieOptions{Name: cfg.Session.CookieName})
	authService := serviceAuth.NewAuthService(store.Transactor, store.Users, store.Sessions, JWTService, cfg.Session.TTL)

	app := &cli.App{
		Users:    store.Users,
		Punches:  store.Punches,
		Sessions: authService,
		Calendar: ledger.NewCalendar(cfg.Ledger.ReferenceOffset),
		Migrate:  store.Migrate,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
