package report

import (
	"context"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

// ReportService renders monthly attendance sheets
type ReportService interface {
	// MonthlyPDF renders the user's month. It fails with *MissingClockOutError
	// when any business day of the month lacks a clock-out.
	MonthlyPDF(ctx context.Context, userID int64, q punch.MonthQuery) (File, error)
}
