package ledger

import "errors"

var (
	// ErrInvalidArgument marks input the engine cannot compute on, such as a month outside 1-12.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistentState means a punch the caller asked about is missing from its own
	// day's classification, which only happens when the caller passed the wrong day.
	ErrInconsistentState = errors.New("inconsistent ledger state")
)
