package ledger

import (
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

// ReportSession is one row of the monthly attendance sheet.
type ReportSession struct {
	ClockIn   string
	ClockOut  string
	BreakTime string
	WorkTime  string
	HasEdit   bool
	Comment   *string
}

// ReportDay groups the rows of one business day.
type ReportDay struct {
	DateKey           string
	DateLabel         string
	Sessions          []ReportSession
	TotalWorkMinutes  int
	TotalBreakMinutes int
}

// Report is the payload consumed by the PDF renderer.
type Report struct {
	Year  int
	Month int
	Days  []ReportDay
	Stats MonthAggregate
}

// BuildReport lays out a month of punches as sheet rows. Only complete days
// with work appear; the day's break total is shown on its first row and "-"
// on the others. Callers that must refuse incomplete months check
// Stats.IncompleteDays.
func (c Calendar) BuildReport(year, month int, punches []punch.Punch) Report {
	days := c.Days(punches)
	report := Report{
		Year:  year,
		Month: month,
		Days:  []ReportDay{},
		Stats: Summarize(days),
	}

	for _, day := range days {
		if !day.Complete || !day.HasWork() {
			continue
		}

		rd := ReportDay{
			DateKey:           day.DateKey,
			DateLabel:         c.DayStart(day.WorkSessions[0].Start.Timestamp).Format("2006/1/2 (Mon)"),
			TotalWorkMinutes:  day.NetWorkMinutes,
			TotalBreakMinutes: day.BreakMinutes,
		}
		for i, s := range day.WorkSessions {
			breakTime := "-"
			if i == 0 {
				breakTime = FormatMinutes(day.BreakMinutes)
			}
			comment := s.Start.Comment
			if comment == nil {
				comment = s.End.Comment
			}
			rd.Sessions = append(rd.Sessions, ReportSession{
				ClockIn:   c.FormatClock(s.Start.Timestamp),
				ClockOut:  c.FormatClock(s.End.Timestamp),
				BreakTime: breakTime,
				WorkTime:  FormatMinutes(s.Minutes),
				HasEdit:   s.Start.IsEdited || s.End.IsEdited,
				Comment:   comment,
			})
		}
		report.Days = append(report.Days, rd)
	}
	return report
}
