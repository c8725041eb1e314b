package punch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/notification"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/user"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/validator"
	"github.com/tempus-hq/tempus-backend-go/internal/repository/sqlite"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

var jst = time.FixedZone("UTC+09:00", 9*60*60)

type fakeDispatcher struct {
	mu     sync.Mutex
	events []notification.PunchEvent
	err    error
}

func (d *fakeDispatcher) Notify(e notification.PunchEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return d.err
}

func (d *fakeDispatcher) Stop(context.Context) error { return nil }

type testEnv struct {
	svc        punch.Service
	dispatcher *fakeDispatcher
	userID     int64
	otherID    int64
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	ctx := context.Background()
	u, err := users.Create(ctx, user.User{Username: "hana", PasswordHash: "hash"})
	require.NoError(t, err)
	other, err := users.Create(ctx, user.User{Username: "kenji", PasswordHash: "hash"})
	require.NoError(t, err)

	env := &testEnv{
		dispatcher: &fakeDispatcher{},
		userID:     u.ID,
		otherID:    other.ID,
		now:        time.Date(2024, 3, 5, 9, 0, 0, 0, jst),
	}
	env.svc = NewPunchService(
		sqlite.NewTransactor(db),
		sqlite.NewPunchRepository(db),
		ledger.NewCalendar(ledger.DefaultOffset),
		WithDispatcher(env.dispatcher),
		WithClock(func() time.Time { return env.now }),
	)
	return env
}

func (e *testEnv) clock(t *testing.T, kind punch.Kind) punch.ClockResponse {
	t.Helper()
	resp, err := e.svc.Clock(context.Background(), punch.ClockRequest{
		RecordType:  string(kind),
		UserID:      e.userID,
		DisplayName: "Hana",
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) clockAt(t *testing.T, kind punch.Kind, at string) punch.ClockResponse {
	t.Helper()
	resp, err := e.svc.Clock(context.Background(), punch.ClockRequest{
		RecordType: string(kind),
		Timestamp:  &at,
		UserID:     e.userID,
	})
	require.NoError(t, err)
	return resp
}

func TestClock_AlternatesWorkTypes(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, punch.ClockIn, env.clock(t, punch.KindWork).Type)
	env.now = env.now.Add(4 * time.Hour)
	assert.Equal(t, punch.ClockOut, env.clock(t, punch.KindWork).Type)
	env.now = env.now.Add(time.Hour)
	assert.Equal(t, punch.ClockIn, env.clock(t, punch.KindWork).Type)
}

func TestClock_BreakIsIndependentOfWork(t *testing.T) {
	env := newTestEnv(t)

	env.clock(t, punch.KindWork)
	env.now = env.now.Add(time.Hour)
	resp := env.clock(t, punch.KindBreak)

	assert.Equal(t, punch.BreakStart, resp.Type)
	assert.Equal(t, punch.KindBreak, resp.Record.RecordType)
}

func TestClock_Defaults(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.svc.Clock(context.Background(), punch.ClockRequest{UserID: env.userID})
	require.NoError(t, err)

	assert.Equal(t, punch.KindWork, resp.Record.RecordType)
	assert.Equal(t, punch.SourceWeb, resp.Record.Source)
	assert.False(t, resp.Record.IsEdited)
	assert.True(t, env.now.Equal(resp.Record.Timestamp))
}

func TestClock_ExplicitTimestampIsEdited(t *testing.T) {
	env := newTestEnv(t)
	resp := env.clockAt(t, punch.KindWork, "2024-03-05T08:30:00+09:00")

	assert.True(t, resp.Record.IsEdited)
	assert.True(t, time.Date(2024, 3, 5, 8, 30, 0, 0, jst).Equal(resp.Record.Timestamp))
	assert.Equal(t, punch.ClockIn, resp.Type)
}

func TestClock_TruncatesToMilliseconds(t *testing.T) {
	env := newTestEnv(t)
	env.now = env.now.Add(1234567 * time.Nanosecond)

	resp := env.clock(t, punch.KindWork)
	assert.Equal(t, 1*time.Millisecond, resp.Record.Timestamp.Sub(time.Date(2024, 3, 5, 9, 0, 0, 0, jst)).Truncate(time.Millisecond))
	assert.Zero(t, resp.Record.Timestamp.Nanosecond()%int(time.Millisecond))
}

func TestClock_LateNightBelongsToPreviousDay(t *testing.T) {
	env := newTestEnv(t)
	env.clockAt(t, punch.KindWork, "2024-03-05T22:00:00+09:00")
	resp := env.clockAt(t, punch.KindWork, "2024-03-06T02:00:00+09:00")

	assert.Equal(t, punch.ClockOut, resp.Type)

	// 06:00 starts a new business day
	resp = env.clockAt(t, punch.KindWork, "2024-03-06T06:00:00+09:00")
	assert.Equal(t, punch.ClockIn, resp.Type)
}

func TestClock_InvalidRequest(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Clock(context.Background(), punch.ClockRequest{UserID: env.userID, Source: "email"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "source", verrs[0].Field)
}

func TestClock_PublishesEvent(t *testing.T) {
	env := newTestEnv(t)
	resp := env.clock(t, punch.KindWork)

	require.Len(t, env.dispatcher.events, 1)
	ev := env.dispatcher.events[0]
	assert.Equal(t, env.userID, ev.UserID)
	assert.Equal(t, "Hana", ev.DisplayName)
	assert.Equal(t, resp.Record.ID, ev.Punch.ID)
	assert.Equal(t, punch.ClockIn, ev.Punch.Type)
}

func TestClock_NotifierFailureIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.dispatcher.err = notification.ErrQueueFull

	resp, err := env.svc.Clock(context.Background(), punch.ClockRequest{UserID: env.userID})
	require.NoError(t, err)
	assert.Equal(t, punch.ClockIn, resp.Type)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	st, err := env.svc.Status(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, "clocked_out", st.Status)
	assert.Equal(t, "not_on_break", st.BreakStatus)
	assert.Nil(t, st.LastRecord)

	env.clock(t, punch.KindWork)
	env.now = env.now.Add(2 * time.Hour)
	brk := env.clock(t, punch.KindBreak)

	st, err = env.svc.Status(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, "clocked_in", st.Status)
	assert.Equal(t, "on_break", st.BreakStatus)
	require.NotNil(t, st.LastRecord)
	assert.Equal(t, brk.Record.ID, st.LastRecord.ID)
	assert.Equal(t, punch.BreakStart, st.LastRecord.Type)

	// Yesterday's open session does not carry into a new business day
	env.now = time.Date(2024, 3, 6, 7, 0, 0, 0, jst)
	st, err = env.svc.Status(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, "clocked_out", st.Status)
	assert.Nil(t, st.LastRecord)
}

func TestListMonth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Complete day with a break: 540 - 30 = 510
	env.clockAt(t, punch.KindWork, "2024-03-05T09:00:00+09:00")
	env.clockAt(t, punch.KindBreak, "2024-03-05T12:00:00+09:00")
	env.clockAt(t, punch.KindBreak, "2024-03-05T12:30:00+09:00")
	env.clockAt(t, punch.KindWork, "2024-03-05T18:00:00+09:00")
	// Missing clock-out
	env.clockAt(t, punch.KindWork, "2024-03-07T09:00:00+09:00")
	// Belongs to February 29 in business time
	env.clockAt(t, punch.KindWork, "2024-03-01T05:00:00+09:00")

	resp, err := env.svc.ListMonth(ctx, env.userID, punch.MonthQuery{Year: 2024, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 3, resp.Month)
	require.Len(t, resp.Records, 5)
	assert.Equal(t, punch.ClockIn, resp.Records[0].Type)
	assert.Equal(t, punch.BreakStart, resp.Records[1].Type)
	assert.Equal(t, punch.BreakEnd, resp.Records[2].Type)
	assert.Equal(t, punch.ClockOut, resp.Records[3].Type)
	assert.Equal(t, punch.ClockIn, resp.Records[4].Type)

	assert.Equal(t, "8:30", resp.Stats.TotalWorkingHours)
	assert.Equal(t, 510, resp.Stats.TotalWorkingMinutes)
	assert.Equal(t, 1, resp.Stats.WorkingDays)
	assert.Equal(t, []string{"2024-03-07"}, resp.Stats.MissingClockOuts)
	assert.Empty(t, resp.Stats.UnpairedBreaks)
}

func TestListMonth_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.ListMonth(context.Background(), env.userID, punch.MonthQuery{Year: 2024, Month: 13})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdate_Reclassifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.clockAt(t, punch.KindWork, "2024-03-05T09:00:00+09:00")
	second := env.clockAt(t, punch.KindWork, "2024-03-05T18:00:00+09:00")
	require.Equal(t, punch.ClockOut, second.Type)

	// Moving the second punch before the first swaps their roles
	comment := "came in early"
	updated, err := env.svc.Update(ctx, punch.UpdateRequest{
		ID:        second.Record.ID,
		UserID:    env.userID,
		Timestamp: "2024-03-05T08:00:00+09:00",
		Comment:   &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, punch.ClockIn, updated.Type)
	assert.True(t, updated.IsEdited)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, comment, *updated.Comment)

	resp, err := env.svc.ListMonth(ctx, env.userID, punch.MonthQuery{Year: 2024, Month: 3})
	require.NoError(t, err)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, second.Record.ID, resp.Records[0].ID)
	assert.Equal(t, first.Record.ID, resp.Records[1].ID)
	assert.Equal(t, punch.ClockOut, resp.Records[1].Type)
}

func TestUpdate_EmptyCommentClears(t *testing.T) {
	env := newTestEnv(t)
	p := env.clockAt(t, punch.KindWork, "2024-03-05T09:00:00+09:00")
	empty := "  "

	updated, err := env.svc.Update(context.Background(), punch.UpdateRequest{
		ID:        p.Record.ID,
		UserID:    env.userID,
		Timestamp: "2024-03-05T09:05:00+09:00",
		Comment:   &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Comment)
}

func TestUpdate_OtherUsersRecord(t *testing.T) {
	env := newTestEnv(t)
	p := env.clock(t, punch.KindWork)

	_, err := env.svc.Update(context.Background(), punch.UpdateRequest{
		ID:        p.Record.ID,
		UserID:    env.otherID,
		Timestamp: "2024-03-05T09:05:00+09:00",
	})
	assert.ErrorIs(t, err, punch.ErrPunchNotFound)
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.clock(t, punch.KindWork)

	assert.ErrorIs(t, env.svc.Delete(ctx, p.Record.ID, env.otherID), punch.ErrPunchNotFound)
	require.NoError(t, env.svc.Delete(ctx, p.Record.ID, env.userID))
	assert.ErrorIs(t, env.svc.Delete(ctx, p.Record.ID, env.userID), punch.ErrPunchNotFound)

	st, err := env.svc.Status(ctx, env.userID)
	require.NoError(t, err)
	assert.Equal(t, "clocked_out", st.Status)
}
