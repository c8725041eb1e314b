package ledger

import (
	"fmt"
	"time"
)

// FormatMinutes renders a minute total as "H:MM". Hours have no padding or
// width limit. A negative total keeps a single leading minus: -90 is "-1:30".
func FormatMinutes(total int) string {
	if total < 0 {
		return "-" + FormatMinutes(-total)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatClock renders t as "HH:MM" in reference time.
func (c Calendar) FormatClock(t time.Time) string {
	return c.In(t).Format("15:04")
}

// FormatDateTime renders t as "2006/01/02 15:04:05" in reference time.
func (c Calendar) FormatDateTime(t time.Time) string {
	return c.In(t).Format("2006/01/02 15:04:05")
}
