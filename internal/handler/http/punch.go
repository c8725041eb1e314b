package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/middleware"
	"github.com/tempus-hq/tempus-backend-go/internal/handler/http/response"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

type PunchHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	UpdateRecord(w http.ResponseWriter, r *http.Request)
	DeleteRecord(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.Service
	calendar     ledger.Calendar
}

func NewPunchHandler(punchService punch.Service, calendar ledger.Calendar) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
		calendar:     calendar,
	}
}

// currentUser returns the user AuthRequired stored, writing a 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (user.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
	}
	return u, ok
}

// monthQuery parses ?year&month, defaulting to the current reference month.
func monthQuery(r *http.Request, calendar ledger.Calendar) (punch.MonthQuery, error) {
	q := r.URL.Query()
	return punch.ParseMonthQuery(q.Get("year"), q.Get("month"), calendar.DayStart(time.Now()))
}

func recordID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: "id", Message: "id must be a positive integer"}}
	}
	return id, nil
}

// Clock implements PunchHandler.
func (h *punchHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req punch.ClockRequest
	// An empty body means a plain web clock with every default
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Clock decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = u.ID
	req.DisplayName = u.Name()

	result, err := h.punchService.Clock(r.Context(), req)
	if err != nil {
		slog.Error("Clock service error", "user_id", u.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Record created", result)
}

// Status implements PunchHandler.
func (h *punchHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	status, err := h.punchService.Status(r.Context(), u.ID)
	if err != nil {
		slog.Error("Status service error", "user_id", u.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// ListRecords implements PunchHandler.
func (h *punchHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := monthQuery(r, h.calendar)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.punchService.ListMonth(r.Context(), u.ID, q)
	if err != nil {
		slog.Error("ListRecords service error", "user_id", u.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// UpdateRecord implements PunchHandler.
func (h *punchHandlerImpl) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := recordID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	req.UserID = u.ID

	updated, err := h.punchService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record updated", updated)
}

// DeleteRecord implements PunchHandler.
func (h *punchHandlerImpl) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := recordID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.punchService.Delete(r.Context(), id, u.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record deleted", nil)
}
