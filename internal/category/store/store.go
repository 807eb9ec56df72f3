package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pandukaz/debtbook/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.Name).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	query := `SELECT id, user_id, name, created_at FROM categories WHERE user_id = $1 ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	query := `UPDATE categories SET name = $1 WHERE id = $2 AND user_id = $3`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return category.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return category.ErrNotFound
	}

	return nil
}
