// Package pdf renders the monthly attendance sheet.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

const (
	margin     = 15.0
	rowHeight  = 6.0
	headHeight = 7.0
	fontFamily = "Helvetica"
	editedMark = "Edited"
)

type column struct {
	title string
	width float64
}

var columns = []column{
	{"Date", 36},
	{"In", 18},
	{"Out", 18},
	{"Break", 18},
	{"Work", 22},
	{"Note", 20},
	{"Comment", 48},
}

// Render writes the report as an A4 PDF. generatedAt is printed in the header
// and must already be in reference time.
func Render(w io.Writer, r ledger.Report, generatedAt time.Time) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(fmt.Sprintf("Attendance %d/%02d", r.Year, r.Month), true)
	doc.SetAuthor("Tempus", true)
	doc.SetCreationDate(generatedAt)
	doc.SetModificationDate(generatedAt)

	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()

	doc.SetFont(fontFamily, "B", 20)
	doc.CellFormat(0, 10, "Attendance Record", "", 1, "C", false, 0, "")
	doc.SetFont(fontFamily, "", 16)
	doc.CellFormat(0, 8, fmt.Sprintf("%d/%02d", r.Year, r.Month), "", 1, "C", false, 0, "")
	doc.SetFont(fontFamily, "", 10)
	doc.CellFormat(0, 6, "Generated: "+generatedAt.Format("2006/01/02 15:04"), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont(fontFamily, "B", 14)
	doc.CellFormat(0, 8, "Monthly Summary", "B", 1, "L", false, 0, "")
	doc.Ln(2)
	doc.SetFont(fontFamily, "", 11)
	doc.CellFormat(0, rowHeight, fmt.Sprintf("Working days: %d", r.Stats.WorkingDays), "", 1, "L", false, 0, "")
	doc.CellFormat(0, rowHeight, "Total working time: "+ledger.FormatMinutes(r.Stats.TotalWorkingMinutes), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont(fontFamily, "B", 14)
	doc.CellFormat(0, 8, "Daily Detail", "B", 1, "L", false, 0, "")
	doc.Ln(2)

	header := func() {
		doc.SetFont(fontFamily, "B", 9)
		doc.SetFillColor(235, 235, 235)
		for _, c := range columns {
			doc.CellFormat(c.width, headHeight, c.title, "B", 0, "L", true, 0, "")
		}
		doc.Ln(-1)
		doc.SetFont(fontFamily, "", 9)
	}
	doc.SetHeaderFunc(func() {
		if doc.PageNo() > 1 {
			header()
		}
	})
	header()

	_, pageHeight := doc.GetPageSize()
	for _, day := range r.Days {
		for i, s := range day.Sessions {
			if doc.GetY()+rowHeight > pageHeight-margin {
				doc.AddPage()
			}

			label := ""
			if i == 0 {
				label = day.DateLabel
			}
			note := ""
			if s.HasEdit {
				note = editedMark
			}
			comment := ""
			if s.Comment != nil {
				comment = fit(doc, tr(*s.Comment), columns[6].width-1)
			}

			cells := []string{label, s.ClockIn, s.ClockOut, s.BreakTime, s.WorkTime, note, comment}
			for j, text := range cells {
				doc.CellFormat(columns[j].width, rowHeight, text, "", 0, "L", false, 0, "")
			}
			doc.Ln(-1)
		}

		// Separator between days
		doc.SetDrawColor(204, 204, 204)
		x, y := doc.GetXY()
		doc.Line(x, y+0.5, doc.GetX()+tableWidth(), y+0.5)
		doc.SetDrawColor(0, 0, 0)
		doc.Ln(1.5)
	}

	if len(r.Days) == 0 {
		doc.SetFont(fontFamily, "I", 10)
		doc.CellFormat(0, rowHeight, "No attendance recorded for this month.", "", 1, "L", false, 0, "")
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return doc.Output(w)
}

// Bytes renders the report into memory.
func Bytes(r ledger.Report, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r, generatedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tableWidth() float64 {
	total := 0.0
	for _, c := range columns {
		total += c.width
	}
	return total
}

// fit truncates s with "..." until it is narrower than width at the current font.
func fit(doc *fpdf.Fpdf, s string, width float64) string {
	if doc.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if doc.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
