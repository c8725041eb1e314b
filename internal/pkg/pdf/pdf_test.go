package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

func sampleReport() ledger.Report {
	comment := "left early for a dentist appointment that ran long"
	return ledger.Report{
		Year:  2024,
		Month: 3,
		Days: []ledger.ReportDay{
			{
				DateKey:   "2024-03-05",
				DateLabel: "2024/3/5 (Tue)",
				Sessions: []ledger.ReportSession{
					{ClockIn: "09:00", ClockOut: "12:00", BreakTime: "0:45", WorkTime: "3:00"},
					{ClockIn: "13:00", ClockOut: "18:00", BreakTime: "-", WorkTime: "5:00", HasEdit: true, Comment: &comment},
				},
				TotalWorkMinutes:  435,
				TotalBreakMinutes: 45,
			},
		},
		Stats: ledger.MonthAggregate{TotalWorkingMinutes: 435, WorkingDays: 1},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleReport(), time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output should start with a PDF header")
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestBytes_EmptyMonth(t *testing.T) {
	out, err := Bytes(ledger.Report{Year: 2024, Month: 2, Days: []ledger.ReportDay{}}, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestBytes_ManyDaysPaginates(t *testing.T) {
	r := sampleReport()
	day := r.Days[0]
	for i := 0; i < 60; i++ {
		r.Days = append(r.Days, day)
	}

	out, err := Bytes(r, time.Now())
	require.NoError(t, err)
	assert.Greater(t, bytes.Count(out, []byte("/Type /Page\n")), 1)
}

func TestFit(t *testing.T) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont(fontFamily, "", 9)

	assert.Equal(t, "short", fit(doc, "short", 40))

	long := "this comment is far too long to fit inside a single narrow column"
	got := fit(doc, long, 30)
	assert.Less(t, len(got), len(long))
	assert.LessOrEqual(t, doc.GetStringWidth(got), 30.0)
	assert.Equal(t, "...", got[len(got)-3:])
}
