package attendance

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/models"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestApply_FlipLeavesSingleRecord(t *testing.T) {
	store := models.NewMemoryAttendanceRepository()
	m := NewMachine(store, clock)
	ctx := context.Background()

	_, err := m.Apply(ctx, "ev-1", 7, models.Attending, nil)
	require.NoError(t, err)
	rec, err := m.Apply(ctx, "ev-1", 7, models.NotAttending, nil)
	require.NoError(t, err)

	assert.Equal(t, models.NotAttending, rec.Status)
	assert.Equal(t, 1, store.Len())

	stored, err := store.Get(ctx, "ev-1", 7)
	require.NoError(t, err)
	assert.Equal(t, models.NotAttending, stored.Status)
}

func TestApply_LastWriteWinsEvenWithOlderTimestamp(t *testing.T) {
	store := models.NewMemoryAttendanceRepository()
	m := NewMachine(store, clock)
	ctx := context.Background()

	newer := fixedNow.Add(time.Hour)
	older := fixedNow.Add(-time.Hour)

	_, err := m.Apply(ctx, "ev-1", 7, models.Attending, &newer)
	require.NoError(t, err)
	rec, err := m.Apply(ctx, "ev-1", 7, models.NotAttending, &older)
	require.NoError(t, err)

	// no version guard: the later call wins even though its timestamp is older
	assert.Equal(t, models.NotAttending, rec.Status)
	assert.True(t, rec.AttendanceAt.Equal(older))
}

func TestApply_DefaultsTimestampToNow(t *testing.T) {
	m := NewMachine(models.NewMemoryAttendanceRepository(), clock)

	rec, err := m.Apply(context.Background(), "ev-1", 7, models.Attending, nil)
	require.NoError(t, err)
	assert.True(t, rec.AttendanceAt.Equal(fixedNow))
}

func TestApply_KeysAreIndependent(t *testing.T) {
	store := models.NewMemoryAttendanceRepository()
	m := NewMachine(store, clock)
	ctx := context.Background()

	for _, k := range []struct {
		event string
		user  int64
	}{{"ev-1", 1}, {"ev-1", 2}, {"ev-2", 1}, {"ev-1", 1}} {
		_, err := m.Apply(ctx, k.event, k.user, models.Attending, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Len())
}

func TestApply_RejectsUnknownStatus(t *testing.T) {
	store := models.NewMemoryAttendanceRepository()
	m := NewMachine(store, clock)

	_, err := m.Apply(context.Background(), "ev-1", 1, "maybe", nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, 0, store.Len())
}

func newService(t *testing.T) (*Service, *models.MemoryAttendanceRepo, string, int64) {
	t.Helper()
	ctx := context.Background()

	events := models.NewMemoryEventRepository()
	users := models.NewMemoryUserRepository()
	store := models.NewMemoryAttendanceRepository()

	ev := models.Event{ID: "9b2f6a0e-3c1d-4e5f-8a7b-112233445566", Name: "Koncert"}
	require.NoError(t, events.Create(ctx, &ev))
	u := models.User{Nickname: "mika", Email: "mika@example.com"}
	require.NoError(t, users.Create(ctx, &u))

	return NewService(events, users, NewMachine(store, clock), nil), store, ev.ID, u.ID
}

func TestMark_MissingEventOrUserIsNotFound(t *testing.T) {
	svc, store, eventID, userID := newService(t)
	ctx := context.Background()

	_, err := svc.Mark(ctx, Request{EventID: "nope", UserID: userID, Status: "attending"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Event not found", appErr.Message)

	_, err = svc.Mark(ctx, Request{EventID: eventID, UserID: 999, Status: "attending"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "User not found", appErr.Message)

	assert.Equal(t, 0, store.Len())
}

func TestMark_Upserts(t *testing.T) {
	svc, store, eventID, userID := newService(t)
	ctx := context.Background()

	_, err := svc.Mark(ctx, Request{EventID: eventID, UserID: userID, Status: "attending"})
	require.NoError(t, err)
	rec, err := svc.Mark(ctx, Request{EventID: eventID, UserID: userID, Status: "notAttending"})
	require.NoError(t, err)

	assert.Equal(t, models.NotAttending, rec.Status)
	assert.Equal(t, 1, store.Len())
}

// events and users are never consulted when the status is unknown
func TestMark_InvalidStatusBeforeLookups(t *testing.T) {
	svc := NewService(failingEvents{}, models.NewMemoryUserRepository(),
		NewMachine(models.NewMemoryAttendanceRepository(), clock), nil)

	_, err := svc.Mark(context.Background(), Request{EventID: "nope", UserID: 1, Status: "maybe"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "status must be one of [attending notAttending]", appErr.Message)
}

type failingEvents struct{ models.EventRepository }

func (failingEvents) GetByID(context.Context, string) (models.Event, error) {
	panic("event store must not be reached")
}
