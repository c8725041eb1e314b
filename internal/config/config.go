package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Ledger   LedgerConfig
	Notifier NotifierConfig
	Kafka    KafkaConfig
	CORS     CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32

	// SQLitePath is used when Driver is "sqlite". ":memory:" is accepted.
	SQLitePath string
}

// SessionConfig holds cookie session configuration
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type LedgerConfig struct {
	// ReferenceOffset is the fixed UTC offset business days are computed in.
	ReferenceOffset time.Duration
}

type NotifierConfig struct {
	SlackWebhookURL   string
	DiscordWebhookURL string
	Workers           int
	QueueSize         int
	Timeout           time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	PunchTopic string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "tempus-backend"),
		Version:  getEnv("APP_VERSION", "dev"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		URL:        getEnv("DATABASE_URL", ""),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "tempus"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		MaxConns:   int32(maxConns),
		MinConns:   int32(minConns),
		SQLitePath: getEnv("SQLITE_PATH", "data/tempus.db"),
	}

	// Session configuration
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cookieSecure, err := strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", strconv.FormatBool(config.App.Env == "production")))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_COOKIE_SECURE: %w", err)
	}

	config.Session = SessionConfig{
		Secret:       getEnv("SESSION_SECRET", ""),
		TTL:          sessionTTL,
		CookieName:   getEnv("SESSION_COOKIE_NAME", "tempus_session"),
		CookieSecure: cookieSecure,
	}

	// Ledger configuration
	offset, err := ledger.ParseOffset(getEnv("REFERENCE_UTC_OFFSET", "+09:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFERENCE_UTC_OFFSET: %w", err)
	}
	config.Ledger = LedgerConfig{ReferenceOffset: offset}

	// Notifier configuration
	workers, err := strconv.Atoi(getEnv("NOTIFIER_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_WORKERS: %w", err)
	}
	queueSize, err := strconv.Atoi(getEnv("NOTIFIER_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_QUEUE_SIZE: %w", err)
	}
	notifyTimeout, err := time.ParseDuration(getEnv("NOTIFIER_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_TIMEOUT: %w", err)
	}

	config.Notifier = NotifierConfig{
		SlackWebhookURL:   getEnv("SLACK_WEBHOOK_URL", ""),
		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		Workers:           workers,
		QueueSize:         queueSize,
		Timeout:           notifyTimeout,
	}

	config.Kafka = KafkaConfig{
		Brokers:    getEnvSlice("KAFKA_BROKERS"),
		PunchTopic: getEnv("KAFKA_PUNCH_TOPIC", "tempus.punches"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Notifier.Workers < 1 {
		return fmt.Errorf("NOTIFIER_WORKERS must be at least 1")
	}
	if c.Notifier.QueueSize < 1 {
		return fmt.Errorf("NOTIFIER_QUEUE_SIZE must be at least 1")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.PunchTopic == "" {
		return fmt.Errorf("KAFKA_PUNCH_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
