package models

import (
	"context"
	"database/sql"
)

type sqlCategoryRepo struct{ db *sql.DB }

func NewSQLCategoryRepository(db *sql.DB) CategoryRepository { return &sqlCategoryRepo{db} }

func (r *sqlCategoryRepo) Create(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categories(name, image_url, priority, sub_categories) VALUES ($1,$2,$3,$4) RETURNING id`,
		c.Name, c.ImageURL, c.Priority, c.SubCategories,
	).Scan(&c.ID)
	return mapSQLError(err)
}

func (r *sqlCategoryRepo) GetByID(ctx context.Context, id int64) (Category, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var c Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, image_url, priority, sub_categories FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.ImageURL, &c.Priority, &c.SubCategories)
	if err != nil {
		return Category{}, mapSQLError(err)
	}
	return c, nil
}
