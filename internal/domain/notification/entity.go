package notification

import (
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

// PunchEvent is published after a punch is recorded and classified.
type PunchEvent struct {
	UserID      int64
	DisplayName string
	Punch       punch.ClassifiedPunch
	OccurredAt  time.Time
}

// Action is the past-tense phrase used in chat messages.
func (e PunchEvent) Action() string {
	switch e.Punch.Type {
	case punch.ClockIn:
		return "clocked in"
	case punch.ClockOut:
		return "clocked out"
	case punch.BreakStart:
		return "started a break"
	case punch.BreakEnd:
		return "ended a break"
	}
	return "punched"
}
