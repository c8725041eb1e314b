package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/report"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

var jst = time.FixedZone("UTC+09:00", 9*60*60)

// stubRepo serves a fixed set of punches and records the requested range.
type stubRepo struct {
	punch.Repository
	punches    []punch.Punch
	err        error
	start, end time.Time
}

func (r *stubRepo) FindInRange(_ context.Context, _ int64, start, end time.Time) ([]punch.Punch, error) {
	r.start, r.end = start, end
	return r.punches, r.err
}

func work(id int64, t time.Time) punch.Punch {
	return punch.Punch{ID: id, UserID: 1, Timestamp: t, Kind: punch.KindWork, Source: punch.SourceWeb}
}

func TestMonthlyPDF(t *testing.T) {
	repo := &stubRepo{punches: []punch.Punch{
		work(1, time.Date(2024, 3, 5, 9, 0, 0, 0, jst)),
		work(2, time.Date(2024, 3, 5, 18, 0, 0, 0, jst)),
	}}
	svc := NewReportService(repo, ledger.NewCalendar(ledger.DefaultOffset))

	file, err := svc.MonthlyPDF(context.Background(), 1, punch.MonthQuery{Year: 2024, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, "attendance_2024_03.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF-")))

	assert.True(t, time.Date(2024, 3, 1, 6, 0, 0, 0, jst).Equal(repo.start))
	assert.True(t, time.Date(2024, 4, 1, 5, 59, 59, int(999*time.Millisecond), jst).Equal(repo.end))
}

func TestMonthlyPDF_MissingClockOut(t *testing.T) {
	repo := &stubRepo{punches: []punch.Punch{
		work(1, time.Date(2024, 3, 5, 9, 0, 0, 0, jst)),
		work(2, time.Date(2024, 3, 5, 18, 0, 0, 0, jst)),
		work(3, time.Date(2024, 3, 8, 9, 0, 0, 0, jst)),
		work(4, time.Date(2024, 3, 6, 9, 0, 0, 0, jst)),
	}}
	svc := NewReportService(repo, ledger.NewCalendar(ledger.DefaultOffset))

	_, err := svc.MonthlyPDF(context.Background(), 1, punch.MonthQuery{Year: 2024, Month: 3})

	assert.ErrorIs(t, err, report.ErrMissingClockOut)
	var missing *report.MissingClockOutError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"2024-03-06", "2024-03-08"}, missing.Dates)
}

func TestMonthlyPDF_InvalidQuery(t *testing.T) {
	svc := NewReportService(&stubRepo{}, ledger.NewCalendar(ledger.DefaultOffset))

	_, err := svc.MonthlyPDF(context.Background(), 1, punch.MonthQuery{Year: 2024, Month: 0})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestMonthlyPDF_RepositoryError(t *testing.T) {
	svc := NewReportService(&stubRepo{err: errors.New("connection reset")}, ledger.NewCalendar(ledger.DefaultOffset))

	_, err := svc.MonthlyPDF(context.Background(), 1, punch.MonthQuery{Year: 2024, Month: 3})
	assert.ErrorContains(t, err, "connection reset")
}
