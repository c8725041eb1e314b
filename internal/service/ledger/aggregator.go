package ledger

import (
	"slices"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

type WorkState string

const (
	ClockedIn  WorkState = "clocked_in"
	ClockedOut WorkState = "clocked_out"
)

type BreakState string

const (
	OnBreak    BreakState = "on_break"
	NotOnBreak BreakState = "not_on_break"
)

// Status is the attendance state derived from one business day's punches.
type Status struct {
	WorkState  WorkState
	BreakState BreakState
	LastEvent  *punch.ClassifiedPunch
}

// Session pairs a start punch with the next punch of the same kind.
type Session struct {
	Start   punch.ClassifiedPunch
	End     punch.ClassifiedPunch
	Minutes int
}

// DayAggregate summarizes one business day.
type DayAggregate struct {
	DateKey        string
	Punches        []punch.ClassifiedPunch
	WorkSessions   []Session
	BreakSessions  []Session
	WorkMinutes    int
	BreakMinutes   int
	NetWorkMinutes int

	// Complete is false when the day has an odd number of work punches.
	Complete bool

	// DanglingBreak reports a trailing break punch without a partner. It is
	// excluded from BreakMinutes and never makes the day incomplete.
	DanglingBreak bool
}

// HasWork reports whether the day has at least one paired work session.
func (d DayAggregate) HasWork() bool {
	return len(d.WorkSessions) > 0
}

// MonthAggregate rolls complete days up into monthly totals.
type MonthAggregate struct {
	TotalWorkingMinutes int
	WorkingDays         int
	IncompleteDays      []string
	UnpairedBreakDays   []string
}

// MinutesBetween returns floor((end-start) / 1 minute). Seconds are truncated,
// never rounded, and negative spans round toward negative infinity.
func MinutesBetween(start, end time.Time) int {
	d := end.Sub(start)
	q := d / time.Minute
	if d%time.Minute != 0 && d < 0 {
		q--
	}
	return int(q)
}

// StatusOf derives the work and break state from the punches of one business day.
func StatusOf(punches []punch.Punch) Status {
	st := Status{WorkState: ClockedOut, BreakState: NotOnBreak}
	classified := Classify(punches)
	if len(classified) == 0 {
		return st
	}

	for i := len(classified) - 1; i >= 0; i-- {
		if isWork(classified[i]) {
			if classified[i].Type == punch.ClockIn {
				st.WorkState = ClockedIn
			}
			break
		}
	}
	for i := len(classified) - 1; i >= 0; i-- {
		if !isWork(classified[i]) {
			if classified[i].Type == punch.BreakStart {
				st.BreakState = OnBreak
			}
			break
		}
	}

	last := classified[len(classified)-1]
	st.LastEvent = &last
	return st
}

// pair walks same-kind punches two at a time. The second return value reports
// a trailing punch left without a partner.
func pair(classified []punch.ClassifiedPunch) ([]Session, bool) {
	var sessions []Session
	for i := 0; i+1 < len(classified); i += 2 {
		start, end := classified[i], classified[i+1]
		sessions = append(sessions, Session{
			Start:   start,
			End:     end,
			Minutes: MinutesBetween(start.Timestamp, end.Timestamp),
		})
	}
	return sessions, len(classified)%2 == 1
}

// Day classifies and aggregates the punches of a single business day.
func Day(dateKey string, punches []punch.Punch) DayAggregate {
	classified := Classify(punches)
	work := ofKind(classified, true)
	breaks := ofKind(classified, false)

	workSessions, danglingWork := pair(work)
	breakSessions, danglingBreak := pair(breaks)

	day := DayAggregate{
		DateKey:       dateKey,
		Punches:       classified,
		WorkSessions:  workSessions,
		BreakSessions: breakSessions,
		Complete:      !danglingWork,
		DanglingBreak: danglingBreak,
	}
	for _, s := range workSessions {
		day.WorkMinutes += s.Minutes
	}
	for _, s := range breakSessions {
		day.BreakMinutes += s.Minutes
	}
	// Break time can exceed work time after overlapping manual edits; the
	// result is surfaced unclamped.
	day.NetWorkMinutes = day.WorkMinutes - day.BreakMinutes
	return day
}

// GroupByDay partitions punches by the date key of their business day. Keys are
// returned in ascending order.
func (c Calendar) GroupByDay(punches []punch.Punch) ([]string, map[string][]punch.Punch) {
	grouped := make(map[string][]punch.Punch)
	for _, p := range punches {
		key := c.DateKey(p.Timestamp)
		grouped[key] = append(grouped[key], p)
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, grouped
}

// Days aggregates every business day present in punches, in ascending date order.
func (c Calendar) Days(punches []punch.Punch) []DayAggregate {
	keys, grouped := c.GroupByDay(punches)
	days := make([]DayAggregate, 0, len(keys))
	for _, key := range keys {
		days = append(days, Day(key, grouped[key]))
	}
	return days
}

// ClassifyByDay classifies each business day separately and concatenates the
// results in (day, timestamp, id) order.
func (c Calendar) ClassifyByDay(punches []punch.Punch) []punch.ClassifiedPunch {
	keys, grouped := c.GroupByDay(punches)
	out := make([]punch.ClassifiedPunch, 0, len(punches))
	for _, key := range keys {
		out = append(out, Classify(grouped[key])...)
	}
	return out
}

// MonthlyStats aggregates a month of punches. The caller filters punches to
// [MonthStart, MonthEnd]. Incomplete days are listed but contribute nothing to
// the totals, not even their paired breaks.
func (c Calendar) MonthlyStats(punches []punch.Punch) MonthAggregate {
	return Summarize(c.Days(punches))
}

// Summarize rolls already aggregated days up into month totals.
func Summarize(days []DayAggregate) MonthAggregate {
	month := MonthAggregate{
		IncompleteDays:    []string{},
		UnpairedBreakDays: []string{},
	}
	for _, day := range days {
		if day.DanglingBreak {
			month.UnpairedBreakDays = append(month.UnpairedBreakDays, day.DateKey)
		}
		if !day.Complete {
			month.IncompleteDays = append(month.IncompleteDays, day.DateKey)
			continue
		}
		if !day.HasWork() {
			continue
		}
		month.TotalWorkingMinutes += day.NetWorkMinutes
		month.WorkingDays++
	}
	return month
}
