package punch

import (
	"strconv"
	"strings"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type ClockRequest struct {
	Source     string  `json:"source"`
	Timestamp  *string `json:"timestamp"`
	RecordType string  `json:"record_type"`

	UserID      int64  `json:"-"`
	DisplayName string `json:"-"`
}

// Validate applies defaults (source=web, record_type=work) and checks the payload.
func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Source == "" {
		r.Source = string(SourceWeb)
	}
	if !Source(r.Source).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: web, external",
		})
	}

	if r.RecordType == "" {
		r.RecordType = string(KindWork)
	}
	if !Kind(r.RecordType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "record_type",
			Message: "record_type must be one of: work, break",
		})
	}

	if r.Timestamp != nil && !validator.IsEmpty(*r.Timestamp) {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an ISO8601 date-time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockTime returns the explicit timestamp, or now when none was sent.
// The second value reports whether the punch was entered by hand.
func (r *ClockRequest) ClockTime(now time.Time) (time.Time, bool) {
	if r.Timestamp == nil || validator.IsEmpty(*r.Timestamp) {
		return now, false
	}
	t, _ := validator.IsValidDateTime(*r.Timestamp)
	return t, true
}

type UpdateRequest struct {
	ID         int64   `json:"-"`
	UserID     int64   `json:"-"`
	Timestamp  string  `json:"timestamp"`
	Comment    *string `json:"comment"`
	RecordType string  `json:"record_type"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Timestamp) {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an ISO8601 date-time",
		})
	}

	if r.RecordType == "" {
		r.RecordType = string(KindWork)
	}
	if !Kind(r.RecordType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "record_type",
			Message: "record_type must be one of: work, break",
		})
	}

	// An empty comment clears it
	if r.Comment != nil && validator.IsEmpty(*r.Comment) {
		r.Comment = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthQuery selects one business month.
type MonthQuery struct {
	Year  int
	Month int
}

// ParseMonthQuery reads raw year/month query parameters. Missing values default
// to the month of now, which callers pass already converted to reference time.
func ParseMonthQuery(yearParam, monthParam string, now time.Time) (MonthQuery, error) {
	var errs validator.ValidationErrors
	q := MonthQuery{Year: now.Year(), Month: int(now.Month())}

	if yearParam = strings.TrimSpace(yearParam); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		} else {
			q.Year = year
		}
	}

	if monthParam = strings.TrimSpace(monthParam); monthParam != "" {
		month, err := strconv.Atoi(monthParam)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		} else {
			q.Month = month
		}
	}

	if len(errs) > 0 {
		return MonthQuery{}, errs
	}
	if err := q.Validate(); err != nil {
		return MonthQuery{}, err
	}
	return q, nil
}

func (q MonthQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Month < 1 || q.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if q.Year < 2000 || q.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a 4-digit number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Timestamp  time.Time `json:"timestamp"`
	RecordType Kind      `json:"record_type"`
	Type       ClockType `json:"type"`
	Source     Source    `json:"source"`
	IsEdited   bool      `json:"is_edited"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewPunchResponse(c ClassifiedPunch) PunchResponse {
	return PunchResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Timestamp:  c.Timestamp,
		RecordType: c.Kind,
		Type:       c.Type,
		Source:     c.Source,
		IsEdited:   c.IsEdited,
		Comment:    c.Comment,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

type ClockResponse struct {
	Record PunchResponse `json:"record"`
	Type   ClockType     `json:"type"`
}

type StatusResponse struct {
	Status      string         `json:"status"`
	BreakStatus string         `json:"break_status"`
	LastRecord  *PunchResponse `json:"last_record"`
}

type MonthlyStatsResponse struct {
	TotalWorkingHours   string   `json:"total_working_hours"`
	TotalWorkingMinutes int      `json:"total_working_minutes"`
	WorkingDays         int      `json:"working_days"`
	MissingClockOuts    []string `json:"missing_clock_outs"`
	UnpairedBreaks      []string `json:"unpaired_breaks"`
}

type RecordsResponse struct {
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	Records []PunchResponse      `json:"records"`
	Stats   MonthlyStatsResponse `json:"stats"`
}
