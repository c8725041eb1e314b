package notifier

import (
	"context"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/sse"
)

// EventPunch is the SSE event name for recorded punches
const EventPunch = "punch"

// HubSink pushes punch events to the user's live status streams
type HubSink struct {
	hub *sse.Hub
}

func NewHubSink(hub *sse.Hub) *HubSink {
	return &HubSink{hub: hub}
}

func (s *HubSink) Name() string { return "sse" }

func (s *HubSink) Send(_ context.Context, e notification.PunchEvent) error {
	s.hub.Publish(e.UserID, sse.Event{
		UserID: e.UserID,
		Event:  EventPunch,
		Data:   notification.NewPunchMessage(e),
	})
	return nil
}
