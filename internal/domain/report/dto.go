package report

import "fmt"

// File is a rendered export ready to be streamed to the client.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Filename builds "attendance_2024_03.pdf" style names.
func Filename(year, month int) string {
	return fmt.Sprintf("attendance_%d_%02d.pdf", year, month)
}
