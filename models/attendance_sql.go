package models

import (
	"context"
	"database/sql"
)

type sqlAttendanceRepo struct{ db *sql.DB }

func NewSQLAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &sqlAttendanceRepo{db}
}

// Upsert relies on PRIMARY KEY(event_id, user_id): concurrent first RSVPs
// from the same user collapse into one row instead of colliding.
func (r *sqlAttendanceRepo) Upsert(ctx context.Context, a EventAttendance) (EventAttendance, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var out EventAttendance
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO event_attendance(event_id, user_id, status, attendance_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (event_id, user_id)
		 DO UPDATE SET status = EXCLUDED.status, attendance_at = EXCLUDED.attendance_at
		 RETURNING event_id, user_id, status, attendance_at`,
		a.EventID, a.UserID, string(a.Status), a.AttendanceAt,
	).Scan(&out.EventID, &out.UserID, &out.Status, &out.AttendanceAt)
	if err != nil {
		return EventAttendance{}, mapSQLError(err)
	}
	return out, nil
}

func (r *sqlAttendanceRepo) Get(ctx context.Context, eventID string, userID int64) (EventAttendance, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var out EventAttendance
	err := r.db.QueryRowContext(ctx,
		`SELECT event_id, user_id, status, attendance_at FROM event_attendance WHERE event_id=$1 AND user_id=$2`,
		eventID, userID,
	).Scan(&out.EventID, &out.UserID, &out.Status, &out.AttendanceAt)
	if err != nil {
		return EventAttendance{}, mapSQLError(err)
	}
	return out, nil
}
