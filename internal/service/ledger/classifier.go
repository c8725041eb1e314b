package ledger

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

// comparePunches orders by timestamp, then by ID so that punches sharing a
// timestamp (common after manual edits) always classify the same way.
func comparePunches(a, b punch.Punch) int {
	if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Classify labels the punches of one business day by their ordinal within their
// own kind: even ordinals open a session, odd ordinals close it. Work and break
// punches are counted independently. The input is not modified; the output is
// sorted by (timestamp, id). Unknown kinds are counted as work.
func Classify(punches []punch.Punch) []punch.ClassifiedPunch {
	sorted := slices.Clone(punches)
	slices.SortStableFunc(sorted, comparePunches)

	out := make([]punch.ClassifiedPunch, 0, len(sorted))
	var work, breaks int
	for _, p := range sorted {
		var t punch.ClockType
		if p.Kind == punch.KindBreak {
			t = punch.BreakStart
			if breaks%2 == 1 {
				t = punch.BreakEnd
			}
			breaks++
		} else {
			t = punch.ClockIn
			if work%2 == 1 {
				t = punch.ClockOut
			}
			work++
		}
		out = append(out, punch.ClassifiedPunch{Punch: p, Type: t})
	}
	return out
}

// Find returns the classified punch with the given ID. A miss means the caller
// classified a day that does not contain the punch.
func Find(classified []punch.ClassifiedPunch, id int64) (punch.ClassifiedPunch, error) {
	for _, c := range classified {
		if c.ID == id {
			return c, nil
		}
	}
	return punch.ClassifiedPunch{}, fmt.Errorf("%w: punch %d not found in its business day", ErrInconsistentState, id)
}

func isWork(c punch.ClassifiedPunch) bool {
	return c.Type == punch.ClockIn || c.Type == punch.ClockOut
}

func ofKind(classified []punch.ClassifiedPunch, work bool) []punch.ClassifiedPunch {
	var out []punch.ClassifiedPunch
	for _, c := range classified {
		if isWork(c) == work {
			out = append(out, c)
		}
	}
	return out
}
