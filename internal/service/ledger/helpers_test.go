package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

var jst = NewCalendar(DefaultOffset)

// at parses "2006-01-02 15:04" in the reference zone.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, jst.Location())
	require.NoError(t, err)
	return ts
}

type punchBuilder struct {
	t      *testing.T
	nextID int64
	out    []punch.Punch
}

func newPunches(t *testing.T) *punchBuilder {
	return &punchBuilder{t: t, nextID: 1}
}

func (b *punchBuilder) add(kind punch.Kind, when string) *punchBuilder {
	b.out = append(b.out, punch.Punch{
		ID:        b.nextID,
		UserID:    7,
		Timestamp: at(b.t, when),
		Kind:      kind,
		Source:    punch.SourceWeb,
	})
	b.nextID++
	return b
}

func (b *punchBuilder) work(when string) *punchBuilder { return b.add(punch.KindWork, when) }
func (b *punchBuilder) brk(when string) *punchBuilder  { return b.add(punch.KindBreak, when) }
func (b *punchBuilder) build() []punch.Punch           { return b.out }

func types(cs []punch.ClassifiedPunch) []punch.ClockType {
	out := make([]punch.ClockType, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Type)
	}
	return out
}
