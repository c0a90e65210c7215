package models

import (
	"context"
	"database/sql"
)

type sqlMessageRepo struct{ db *sql.DB }

func NewSQLMessageRepository(db *sql.DB) MessageRepository { return &sqlMessageRepo{db} }

func (r *sqlMessageRepo) Create(ctx context.Context, m *EventMessage) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO event_messages(id, event_id, user_id, content, attendance_only)
		 VALUES ($1,$2,$3,$4,$5) RETURNING created_at`,
		m.ID, m.EventID, m.UserID, m.Content, m.AttendanceOnly,
	).Scan(&m.CreatedAt)
	return mapSQLError(err)
}
