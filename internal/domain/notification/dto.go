package notification

import (
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

// PunchMessage is the JSON form of a PunchEvent shared by the Kafka stream
// and the live status stream.
type PunchMessage struct {
	EventType   string          `json:"event_type"`
	UserID      int64           `json:"user_id"`
	DisplayName string          `json:"display_name"`
	RecordID    int64           `json:"record_id"`
	RecordType  punch.Kind      `json:"record_type"`
	Type        punch.ClockType `json:"type"`
	Source      punch.Source    `json:"source"`
	Timestamp   time.Time       `json:"timestamp"`
	IsEdited    bool            `json:"is_edited"`
	Comment     *string         `json:"comment"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

const EventTypePunchRecorded = "punch.recorded"

func NewPunchMessage(e PunchEvent) PunchMessage {
	return PunchMessage{
		EventType:   EventTypePunchRecorded,
		UserID:      e.UserID,
		DisplayName: e.DisplayName,
		RecordID:    e.Punch.ID,
		RecordType:  e.Punch.Kind,
		Type:        e.Punch.Type,
		Source:      e.Punch.Source,
		Timestamp:   e.Punch.Timestamp,
		IsEdited:    e.Punch.IsEdited,
		Comment:     e.Punch.Comment,
		OccurredAt:  e.OccurredAt,
	}
}
