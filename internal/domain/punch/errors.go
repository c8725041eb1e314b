package punch

import "errors"

// Punch domain errors
var (
	ErrPunchNotFound = errors.New("record not found")
	ErrUnauthorized  = errors.New("unauthorized to access this record")
)
