package ledger

import (
	"fmt"
	"time"
)

// DayStartHour is the reference-civil hour at which a business day begins.
const DayStartHour = 6

const dateKeyLayout = "2006-01-02"

// Calendar computes business day and month boundaries in a fixed-offset
// reference zone. The host's local zone is never consulted.
type Calendar struct {
	loc *time.Location
}

// DefaultOffset is the reference zone used when none is configured (UTC+09:00).
const DefaultOffset = 9 * time.Hour

// NewCalendar returns a calendar whose reference zone is UTC+offset.
func NewCalendar(offset time.Duration) Calendar {
	return Calendar{loc: time.FixedZone(offsetName(offset), int(offset/time.Second))}
}

// ParseOffset reads offsets written as "+09:00", "-05:30" or "Z".
func ParseOffset(s string) (time.Duration, error) {
	if s == "Z" || s == "UTC" {
		return 0, nil
	}
	t, err := time.Parse("-07:00", s)
	if err != nil {
		return 0, fmt.Errorf("%w: utc offset %q: %v", ErrInvalidArgument, s, err)
	}
	_, secs := t.Zone()
	return time.Duration(secs) * time.Second, nil
}

func offsetName(offset time.Duration) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("UTC%c%02d:%02d", sign, h, m)
}

// Location returns the reference zone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// In converts t to reference-civil time.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.Location())
}

// DayStart returns 06:00:00.000 reference time of the business day containing t.
// Instants before 06:00 belong to the previous civil date.
func (c Calendar) DayStart(t time.Time) time.Time {
	civil := c.In(t)
	y, m, d := civil.Date()
	if civil.Hour() < DayStartHour {
		d--
	}
	return time.Date(y, m, d, DayStartHour, 0, 0, 0, c.Location())
}

// DayEnd returns the last millisecond of the business day containing t.
func (c Calendar) DayEnd(t time.Time) time.Time {
	return c.DayStart(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// MonthStart returns 06:00 reference time on the first of the month.
func (c Calendar) MonthStart(year, month int) (time.Time, error) {
	if err := checkMonth(month); err != nil {
		return time.Time{}, err
	}
	return time.Date(year, time.Month(month), 1, DayStartHour, 0, 0, 0, c.Location()), nil
}

// MonthEnd returns one millisecond before the next month's start. December rolls into
// January of the next year.
func (c Calendar) MonthEnd(year, month int) (time.Time, error) {
	if err := checkMonth(month); err != nil {
		return time.Time{}, err
	}
	next := time.Date(year, time.Month(month)+1, 1, DayStartHour, 0, 0, 0, c.Location())
	return next.Add(-time.Millisecond), nil
}

// DateKey is the reference-civil date of t's business day, formatted YYYY-MM-DD.
func (c Calendar) DateKey(t time.Time) string {
	return c.DayStart(t).Format(dateKeyLayout)
}

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is outside 1-12", ErrInvalidArgument, month)
	}
	return nil
}
