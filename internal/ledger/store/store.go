package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pandukaz/debtbook/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.user_id, t.type, t.contact_id, t.category_id,
	t.original_amount, t.outstanding_amount, t.status,
	t.description, t.due_date, t.created_at, t.updated_at
`

// scanTransaction reads a transaction row from the scanner.
// Expected column order matches selectTransactionColumns.
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var typeStr, statusStr string

	var desc sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.UserID, &typeStr, &tx.ContactID, &tx.CategoryID,
		&tx.OriginalAmount, &tx.OutstandingAmount, &statusStr,
		&desc, &tx.DueDate, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)
	tx.Status = ledger.Status(statusStr)
	tx.Description = desc.String

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, contact_id, category_id, original_amount, outstanding_amount, status, description, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Type,
		tx.ContactID,
		tx.CategoryID,
		tx.OriginalAmount,
		tx.OutstandingAmount,
		tx.Status,
		tx.Description,
		tx.DueDate,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.user_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID uuid.UUID, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.user_id = $1`

	args := []any{userID}

	argIdx := 2

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ContactID != nil {
		query += fmt.Sprintf(" AND t.contact_id = $%d", argIdx)

		args = append(args, *filter.ContactID)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	query += " ORDER BY t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// UpdateTransaction only touches descriptive fields. The balance columns
// move exclusively through ApplyPayment and Settle.
func (s *Store) UpdateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET contact_id = $1, category_id = $2, description = $3, due_date = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.ContactID,
		tx.CategoryID,
		tx.Description,
		tx.DueDate,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

// ApplyPayment decrements the balance and inserts the payment row inside one
// database transaction. The decrement only matches while the balance still
// covers the amount, so a concurrent payment that would overdraw sees zero
// rows instead of pushing the balance negative.
func (s *Store) ApplyPayment(ctx context.Context, userID, txID uuid.UUID, amount int64) (*ledger.Transaction, *ledger.Payment, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	decrementQuery := `
		UPDATE transactions t
		SET outstanding_amount = outstanding_amount - $1,
			status = CASE WHEN outstanding_amount - $1 <= 0 THEN 'paid' ELSE 'ongoing' END,
			updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND outstanding_amount >= $1
		RETURNING ` + selectTransactionColumns

	tx, err := scanTransaction(dbTx.QueryRowContext(ctx, decrementQuery, amount, txID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, s.classifyPaymentFailure(ctx, dbTx, userID, txID)
		}

		return nil, nil, fmt.Errorf("applying payment: %w", err)
	}

	payment := &ledger.Payment{
		TransactionID: txID,
		Amount:        amount,
	}

	paymentQuery := `
		INSERT INTO payments (transaction_id, amount, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := dbTx.QueryRowContext(ctx, paymentQuery, txID, amount).Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("recording payment: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("committing payment: %w", err)
	}

	return tx, payment, nil
}

// classifyPaymentFailure distinguishes a missing transaction from one whose
// balance no longer covers the payment.
func (s *Store) classifyPaymentFailure(ctx context.Context, dbTx *sql.Tx, userID, txID uuid.UUID) error {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1 AND user_id = $2)`
	if err := dbTx.QueryRowContext(ctx, query, txID, userID).Scan(&exists); err != nil {
		return fmt.Errorf("checking transaction: %w", err)
	}

	if exists {
		return ledger.ErrExceedsOutstanding
	}

	return ledger.ErrNotFound
}

// Settle zeroes the balance without a payment row.
func (s *Store) Settle(ctx context.Context, userID, txID uuid.UUID) (*ledger.Transaction, error) {
	query := `
		UPDATE transactions t
		SET outstanding_amount = 0, status = 'paid', updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + selectTransactionColumns

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, txID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("settling transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListPayments(ctx context.Context, userID, txID uuid.UUID) ([]*ledger.Payment, error) {
	query := `
		SELECT p.id, p.transaction_id, p.amount, p.created_at
		FROM payments p
		JOIN transactions t ON p.transaction_id = t.id
		WHERE p.transaction_id = $1 AND t.user_id = $2
		ORDER BY p.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, txID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*ledger.Payment

	for rows.Next() {
		var p ledger.Payment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}
