package punch

import (
	"time"
)

// Kind separates the two independent punch streams of a day.
type Kind string

const (
	KindWork  Kind = "work"
	KindBreak Kind = "break"
)

func (k Kind) IsValid() bool {
	return k == KindWork || k == KindBreak
}

// Source records where a punch came from.
type Source string

const (
	SourceWeb      Source = "web"
	SourceExternal Source = "external"
)

func (s Source) IsValid() bool {
	return s == SourceWeb || s == SourceExternal
}

// Label is the human readable name used by reports and notifications.
func (s Source) Label() string {
	if s == SourceWeb {
		return "Web"
	}
	return "External"
}

// ClockType is derived from a punch's position within its day and kind.
// It is never stored.
type ClockType string

const (
	ClockIn    ClockType = "clock_in"
	ClockOut   ClockType = "clock_out"
	BreakStart ClockType = "break_start"
	BreakEnd   ClockType = "break_end"
)

// IsStart reports whether t opens a session of its kind.
func (t ClockType) IsStart() bool {
	return t == ClockIn || t == BreakStart
}

type Punch struct {
	ID        int64
	UserID    int64
	Timestamp time.Time
	Kind      Kind
	Source    Source
	IsEdited  bool
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassifiedPunch is a read-time view of a Punch with its inferred type.
type ClassifiedPunch struct {
	Punch
	Type ClockType
}
