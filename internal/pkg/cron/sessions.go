package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
)

const JobCleanupExpiredSessions = "cleanup_expired_sessions"

// SessionCleaner deletes sessions past their expiry and reports how many
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type SessionJobs struct {
	cleaner SessionCleaner
	metrics *metrics.Metrics
}

func NewSessionJobs(cleaner SessionCleaner, m *metrics.Metrics) *SessionJobs {
	return &SessionJobs{cleaner: cleaner, metrics: m}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobCleanupExpiredSessions, 1*time.Hour, j.CleanupExpiredSessions)
}

func (j *SessionJobs) CleanupExpiredSessions(ctx context.Context) error {
	removed, err := j.cleaner.CleanupExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("cleanup expired sessions: %w", err)
	}

	j.metrics.SessionsCleaned(removed)
	if removed > 0 {
		slog.Info("Cron: removed expired sessions", "count", removed)
	}
	return nil
}
