package notification

import (
	"context"
)

// Sink delivers punch events to one destination
type Sink interface {
	Name() string
	Send(ctx context.Context, event PunchEvent) error
}

// Dispatcher fans punch events out to every configured sink in the background
type Dispatcher interface {
	// Notify queues event for delivery. It never blocks; a full queue drops
	// the event and returns ErrQueueFull.
	Notify(event PunchEvent) error

	// Stop drains queued events and waits for in-flight deliveries
	Stop(ctx context.Context) error
}
