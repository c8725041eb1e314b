package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/report"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/pdf"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

type ReportServiceImpl struct {
	punchRepo punch.Repository
	calendar  ledger.Calendar
	now       func() time.Time
}

func NewReportService(punchRepo punch.Repository, calendar ledger.Calendar) report.ReportService {
	return &ReportServiceImpl{
		punchRepo: punchRepo,
		calendar:  calendar,
		now:       time.Now,
	}
}

// MonthlyPDF implements report.ReportService.
func (s *ReportServiceImpl) MonthlyPDF(ctx context.Context, userID int64, q punch.MonthQuery) (report.File, error) {
	if err := q.Validate(); err != nil {
		return report.File{}, err
	}

	start, err := s.calendar.MonthStart(q.Year, q.Month)
	if err != nil {
		return report.File{}, err
	}
	end, err := s.calendar.MonthEnd(q.Year, q.Month)
	if err != nil {
		return report.File{}, err
	}

	punches, err := s.punchRepo.FindInRange(ctx, userID, start, end)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to load month records: %w", err)
	}

	sheet := s.calendar.BuildReport(q.Year, q.Month, punches)
	if len(sheet.Stats.IncompleteDays) > 0 {
		return report.File{}, &report.MissingClockOutError{Dates: sheet.Stats.IncompleteDays}
	}

	content, err := pdf.Bytes(sheet, s.calendar.In(s.now()))
	if err != nil {
		slog.Error("failed to render attendance pdf", "user_id", userID, "year", q.Year, "month", q.Month, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.File{
		Filename:    report.Filename(q.Year, q.Month),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}
