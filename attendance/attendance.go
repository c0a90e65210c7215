// Package attendance keeps one RSVP record per (event, user).
//
// The state space is flat: attending and notAttending are reachable from
// each other any number of times, and the last write always wins.
package attendance

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/JovanaT99/eventsApp/apperrors"
	"github.com/JovanaT99/eventsApp/models"
)

// Machine applies RSVP transitions. It does not check that the event or
// the user exist; Service does that before calling it.
type Machine struct {
	store models.AttendanceRepository
	now   func() time.Time
}

func NewMachine(store models.AttendanceRepository, now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{store: store, now: now}
}

// Apply creates or overwrites the record for (eventID, userID) with status
// and at, defaulting at to the current time. No version check is made.
func (m *Machine) Apply(ctx context.Context, eventID string, userID int64, status models.AttendanceStatus, at *time.Time) (models.EventAttendance, error) {
	if !status.Valid() {
		return models.EventAttendance{}, errInvalidStatus()
	}
	when := m.now().UTC()
	if at != nil {
		when = at.UTC()
	}
	return m.store.Upsert(ctx, models.EventAttendance{
		EventID:      eventID,
		UserID:       userID,
		Status:       status,
		AttendanceAt: when,
	})
}

func errInvalidStatus() error {
	return apperrors.BadRequest("status must be one of [attending notAttending]")
}

type Request struct {
	EventID      string     `json:"eventId" binding:"required"`
	UserID       int64      `json:"userId" binding:"required"`
	Status       string     `json:"status" binding:"required,oneof=attending notAttending"`
	AttendanceAt *time.Time `json:"attendanceAt"`
}

type Service struct {
	events  models.EventRepository
	users   models.UserRepository
	machine *Machine
	log     *zap.Logger
}

func NewService(events models.EventRepository, users models.UserRepository, machine *Machine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{events: events, users: users, machine: machine, log: log}
}

// Mark records req after checking that the event and user exist. The
// status is checked first, before any store access.
func (s *Service) Mark(ctx context.Context, req Request) (models.EventAttendance, error) {
	if !models.AttendanceStatus(req.Status).Valid() {
		return models.EventAttendance{}, errInvalidStatus()
	}
	if _, err := s.events.GetByID(ctx, req.EventID); err != nil {
		return models.EventAttendance{}, lookupError("Event", err)
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return models.EventAttendance{}, lookupError("User", err)
	}

	rec, err := s.machine.Apply(ctx, req.EventID, req.UserID, models.AttendanceStatus(req.Status), req.AttendanceAt)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return models.EventAttendance{}, err
		}
		return models.EventAttendance{}, apperrors.Internal("Could not save attendance", err)
	}

	s.log.Info("attendance recorded",
		zap.String("eventId", rec.EventID),
		zap.Int64("userId", rec.UserID),
		zap.String("status", string(rec.Status)),
	)
	return rec, nil
}

func lookupError(resource string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return apperrors.NotFound(resource)
	}
	return apperrors.Internal("Could not fetch "+resource, err)
}
