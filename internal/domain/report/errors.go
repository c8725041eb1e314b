package report

import (
	"errors"
	"strings"
)

var (
	ErrMissingClockOut        = errors.New("month has days without a clock-out")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)

// MissingClockOutError lists the business days that block an export.
type MissingClockOutError struct {
	Dates []string
}

func (e *MissingClockOutError) Error() string {
	return ErrMissingClockOut.Error() + ": " + strings.Join(e.Dates, ", ")
}

func (e *MissingClockOutError) Is(target error) bool {
	return target == ErrMissingClockOut
}
