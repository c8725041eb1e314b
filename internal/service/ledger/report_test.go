package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	b := newPunches(t).
		work("2024-03-05 09:00").
		brk("2024-03-05 12:00").
		brk("2024-03-05 12:45").
		work("2024-03-05 13:00").
		work("2024-03-05 14:00").
		work("2024-03-05 18:30")
	punches := b.build()
	note := "forgot to punch"
	punches[5].IsEdited = true
	punches[5].Comment = &note

	report := jst.BuildReport(2024, 3, punches)

	require.Len(t, report.Days, 1)
	day := report.Days[0]
	assert.Equal(t, "2024-03-05", day.DateKey)
	assert.Equal(t, "2024/3/5 (Tue)", day.DateLabel)
	assert.Equal(t, 45, day.TotalBreakMinutes)
	assert.Equal(t, 240+270-45, day.TotalWorkMinutes)

	require.Len(t, day.Sessions, 2)
	assert.Equal(t, ReportSession{
		ClockIn:   "09:00",
		ClockOut:  "13:00",
		BreakTime: "0:45",
		WorkTime:  "4:00",
	}, day.Sessions[0])

	second := day.Sessions[1]
	assert.Equal(t, "14:00", second.ClockIn)
	assert.Equal(t, "18:30", second.ClockOut)
	assert.Equal(t, "-", second.BreakTime)
	assert.Equal(t, "4:30", second.WorkTime)
	assert.True(t, second.HasEdit)
	require.NotNil(t, second.Comment)
	assert.Equal(t, note, *second.Comment)
}

func TestBuildReport_SkipsIncompleteAndEmptyDays(t *testing.T) {
	punches := newPunches(t).
		work("2024-03-04 09:00").
		work("2024-03-04 17:00").
		work("2024-03-05 09:00").
		brk("2024-03-06 12:00").
		brk("2024-03-06 12:30").
		build()

	report := jst.BuildReport(2024, 3, punches)

	require.Len(t, report.Days, 1)
	assert.Equal(t, "2024-03-04", report.Days[0].DateKey)
	assert.Equal(t, []string{"2024-03-05"}, report.Stats.IncompleteDays)
	assert.Equal(t, 480, report.Stats.TotalWorkingMinutes)
}
