package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"DATE", "WORK"}, [][]string{
		{"2024-03-01", "8:30"},
		{"2024-03-04", StyleRed.Render("10:05")},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "DATE")
	assert.Contains(t, lines[1], "──────────")

	// the second column starts at the same visible offset on every row
	offset := lipgloss.Width("2024-03-01") + colGap
	for _, line := range lines[2:] {
		plain := stripANSI(line)
		assert.Greater(t, len(plain), offset)
		assert.NotEqual(t, ' ', rune(plain[offset]))
		assert.Equal(t, ' ', rune(plain[offset-1]))
	}
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
