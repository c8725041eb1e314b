package punch

import (
	"context"
	"time"
)

// Repository defines data access methods for punch records.
// Methods that address a single record take the owning userID so a caller
// can never read or change another user's punches.
type Repository interface {
	// Create inserts a punch and returns it with ID and timestamps populated
	Create(ctx context.Context, p Punch) (Punch, error)

	// GetByID returns ErrPunchNotFound when the punch does not exist or is not owned by userID
	GetByID(ctx context.Context, id int64, userID int64) (Punch, error)

	// FindInRange returns punches with start <= timestamp <= end ordered by (timestamp, id)
	FindInRange(ctx context.Context, userID int64, start, end time.Time) ([]Punch, error)

	// Update overwrites timestamp, kind, comment and is_edited
	Update(ctx context.Context, p Punch) (Punch, error)

	Delete(ctx context.Context, id int64, userID int64) error
}
