package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/auth"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/report"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var missing *report.MissingClockOutError
	if errors.As(err, &missing) {
		BadRequest(w, "Cannot export a month with missing clock-outs", map[string][]string{
			"missing_clock_outs": missing.Dates,
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrUsernameTaken), errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already in use")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Record not found")

	// Ledger errors
	case errors.Is(err, ledger.ErrInvalidArgument):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
