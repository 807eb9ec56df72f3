package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pandukaz/debtbook/internal/contact"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (user_id, name, phone, note, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Phone, c.Note).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	return nil
}

func (s *Store) GetContact(ctx context.Context, userID, id uuid.UUID) (*contact.Contact, error) {
	query := `SELECT id, user_id, name, phone, note, created_at FROM contacts WHERE id = $1 AND user_id = $2`

	var c contact.Contact

	err := s.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Note, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return &c, nil
}

func (s *Store) ListContacts(ctx context.Context, userID uuid.UUID) ([]*contact.Contact, error) {
	query := `SELECT id, user_id, name, phone, note, created_at FROM contacts WHERE user_id = $1 ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*contact.Contact

	for rows.Next() {
		var c contact.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Note, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}

	return contacts, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		UPDATE contacts
		SET name = $1, phone = $2, note = $3
		WHERE id = $4 AND user_id = $5
	`

	res, err := s.db.ExecContext(ctx, query, c.Name, c.Phone, c.Note, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return contact.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return contact.ErrNotFound
	}

	return nil
}
