package punch

import (
	"context"
)

// Service defines the time-clock operations
type Service interface {
	// Clock records a punch and returns it classified against its business day
	Clock(ctx context.Context, req ClockRequest) (ClockResponse, error)

	// Status reports the user's state in the current business day
	Status(ctx context.Context, userID int64) (StatusResponse, error)

	// ListMonth returns every classified punch of a business month with its statistics
	ListMonth(ctx context.Context, userID int64, q MonthQuery) (RecordsResponse, error)

	// Update edits a punch and returns it reclassified
	Update(ctx context.Context, req UpdateRequest) (PunchResponse, error)

	Delete(ctx context.Context, id int64, userID int64) error
}
