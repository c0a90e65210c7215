package models

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a UNIQUE constraint failure.
const uniqueViolation = "23505"

type sqlUserRepo struct{ db *sql.DB }

func NewSQLUserRepository(db *sql.DB) UserRepository { return &sqlUserRepo{db} }

func (r *sqlUserRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users(nickname, email, image_url, type, company_id, reputation, phone_number)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		u.Nickname, u.Email, u.ImageURL, u.Type, u.CompanyID, u.Reputation, u.PhoneNumber,
	).Scan(&u.ID)
	return mapSQLError(err)
}

func (r *sqlUserRepo) GetByID(ctx context.Context, id int64) (User, error) {
	return r.getOne(ctx, `WHERE id=$1`, id)
}

func (r *sqlUserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, `WHERE email=$1`, email)
}

func (r *sqlUserRepo) getOne(ctx context.Context, where string, arg any) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var u User
	var companyID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nickname, email, image_url, type, company_id, reputation, phone_number FROM users `+where, arg).
		Scan(&u.ID, &u.Nickname, &u.Email, &u.ImageURL, &u.Type, &companyID, &u.Reputation, &u.PhoneNumber)
	if err != nil {
		return User{}, mapSQLError(err)
	}
	if companyID.Valid {
		u.CompanyID = &companyID.Int64
	}
	return u, nil
}

func mapSQLError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
