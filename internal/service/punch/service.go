package punch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/metrics"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

type PunchServiceImpl struct {
	tx         database.Transactor
	repo       punch.Repository
	calendar   ledger.Calendar
	dispatcher notification.Dispatcher
	metrics    *metrics.Metrics
	now        func() time.Time
}

type Option func(*PunchServiceImpl)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *PunchServiceImpl) { s.now = now }
}

// WithDispatcher publishes every recorded punch
func WithDispatcher(d notification.Dispatcher) Option {
	return func(s *PunchServiceImpl) { s.dispatcher = d }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *PunchServiceImpl) { s.metrics = m }
}

func NewPunchService(tx database.Transactor, repo punch.Repository, calendar ledger.Calendar, opts ...Option) punch.Service {
	s := &PunchServiceImpl{
		tx:       tx,
		repo:     repo,
		calendar: calendar,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage keeps millisecond precision, so every timestamp is truncated before
// it is written or compared.
func (s *PunchServiceImpl) clock() time.Time {
	return s.now().Truncate(time.Millisecond)
}

// classifyWithinDay loads the business day containing t and returns the
// classified form of punch id.
func (s *PunchServiceImpl) classifyWithinDay(ctx context.Context, userID, id int64, t time.Time) (punch.ClassifiedPunch, error) {
	day, err := s.repo.FindInRange(ctx, userID, s.calendar.DayStart(t), s.calendar.DayEnd(t))
	if err != nil {
		return punch.ClassifiedPunch{}, fmt.Errorf("failed to load business day: %w", err)
	}
	return ledger.Find(ledger.Classify(day), id)
}

// Clock implements punch.Service.
func (s *PunchServiceImpl) Clock(ctx context.Context, req punch.ClockRequest) (punch.ClockResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.ClockResponse{}, err
	}

	ts, edited := req.ClockTime(s.clock())
	ts = ts.Truncate(time.Millisecond)

	var classified punch.ClassifiedPunch
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.repo.Create(ctx, punch.Punch{
			UserID:    req.UserID,
			Timestamp: ts,
			Kind:      punch.Kind(req.RecordType),
			Source:    punch.Source(req.Source),
			IsEdited:  edited,
		})
		if err != nil {
			return fmt.Errorf("failed to create record: %w", err)
		}

		classified, err = s.classifyWithinDay(ctx, req.UserID, created.ID, created.Timestamp)
		return err
	})
	if err != nil {
		return punch.ClockResponse{}, err
	}

	s.metrics.PunchRecorded(string(classified.Type), string(classified.Source))
	s.publish(req.DisplayName, classified)

	return punch.ClockResponse{
		Record: punch.NewPunchResponse(classified),
		Type:   classified.Type,
	}, nil
}

// publish hands the punch to the notifier. Failures are logged only.
func (s *PunchServiceImpl) publish(displayName string, p punch.ClassifiedPunch) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Notify(notification.PunchEvent{
		UserID:      p.UserID,
		DisplayName: displayName,
		Punch:       p,
		OccurredAt:  s.now(),
	})
	if err != nil {
		slog.Warn("punch notification not queued", "user_id", p.UserID, "record_id", p.ID, "error", err)
	}
}

// Status implements punch.Service.
func (s *PunchServiceImpl) Status(ctx context.Context, userID int64) (punch.StatusResponse, error) {
	now := s.clock()
	day, err := s.repo.FindInRange(ctx, userID, s.calendar.DayStart(now), s.calendar.DayEnd(now))
	if err != nil {
		return punch.StatusResponse{}, fmt.Errorf("failed to load today's records: %w", err)
	}

	st := ledger.StatusOf(day)
	resp := punch.StatusResponse{
		Status:      string(st.WorkState),
		BreakStatus: string(st.BreakState),
	}
	if st.LastEvent != nil {
		last := punch.NewPunchResponse(*st.LastEvent)
		resp.LastRecord = &last
	}
	return resp, nil
}

// ListMonth implements punch.Service.
func (s *PunchServiceImpl) ListMonth(ctx context.Context, userID int64, q punch.MonthQuery) (punch.RecordsResponse, error) {
	if err := q.Validate(); err != nil {
		return punch.RecordsResponse{}, err
	}

	start, err := s.calendar.MonthStart(q.Year, q.Month)
	if err != nil {
		return punch.RecordsResponse{}, err
	}
	end, err := s.calendar.MonthEnd(q.Year, q.Month)
	if err != nil {
		return punch.RecordsResponse{}, err
	}

	punches, err := s.repo.FindInRange(ctx, userID, start, end)
	if err != nil {
		return punch.RecordsResponse{}, fmt.Errorf("failed to load month records: %w", err)
	}

	classified := s.calendar.ClassifyByDay(punches)
	records := make([]punch.PunchResponse, len(classified))
	for i, c := range classified {
		records[i] = punch.NewPunchResponse(c)
	}

	stats := s.calendar.MonthlyStats(punches)
	return punch.RecordsResponse{
		Year:    q.Year,
		Month:   q.Month,
		Records: records,
		Stats: punch.MonthlyStatsResponse{
			TotalWorkingHours:   ledger.FormatMinutes(stats.TotalWorkingMinutes),
			TotalWorkingMinutes: stats.TotalWorkingMinutes,
			WorkingDays:         stats.WorkingDays,
			MissingClockOuts:    stats.IncompleteDays,
			UnpairedBreaks:      stats.UnpairedBreakDays,
		},
	}, nil
}

// Update implements punch.Service.
func (s *PunchServiceImpl) Update(ctx context.Context, req punch.UpdateRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}
	ts, _ := validator.IsValidDateTime(req.Timestamp)

	var classified punch.ClassifiedPunch
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, req.ID, req.UserID)
		if err != nil {
			return err
		}

		existing.Timestamp = ts.Truncate(time.Millisecond)
		existing.Kind = punch.Kind(req.RecordType)
		existing.Comment = req.Comment
		existing.IsEdited = true

		updated, err := s.repo.Update(ctx, existing)
		if err != nil {
			return err
		}

		classified, err = s.classifyWithinDay(ctx, req.UserID, updated.ID, updated.Timestamp)
		return err
	})
	if err != nil {
		return punch.PunchResponse{}, err
	}

	return punch.NewPunchResponse(classified), nil
}

// Delete implements punch.Service.
func (s *PunchServiceImpl) Delete(ctx context.Context, id int64, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}
