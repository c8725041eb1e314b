package http

import (
	"net/http"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/report"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/response"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

type ReportHandler interface {
	MonthlyPDF(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	calendar      ledger.Calendar
}

func NewReportHandler(reportService report.ReportService, calendar ledger.Calendar) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		calendar:      calendar,
	}
}

// MonthlyPDF implements ReportHandler.
func (h *reportHandlerImpl) MonthlyPDF(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := monthQuery(r, h.calendar)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.MonthlyPDF(r.Context(), u.ID, q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Content)
}
