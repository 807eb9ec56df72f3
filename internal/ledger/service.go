package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error

	// ApplyPayment decrements the outstanding balance and inserts the payment
	// row in a single database transaction. The decrement is conditional on
	// the balance still covering the amount, so a concurrent payment that
	// would overdraw fails with ErrExceedsOutstanding instead of clobbering
	// the other write.
	ApplyPayment(ctx context.Context, userID, txID uuid.UUID, amount int64) (*Transaction, *Payment, error)

	// Settle zeroes the balance without recording a payment.
	Settle(ctx context.Context, userID, txID uuid.UUID) (*Transaction, error)

	ListPayments(ctx context.Context, userID, txID uuid.UUID) ([]*Payment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type        Type
	ContactID   uuid.UUID
	CategoryID  uuid.UUID
	Amount      int64
	Description string
	DueDate     *time.Time
}

type ListFilter struct {
	Type       *Type
	Status     *Status
	ContactID  *uuid.UUID
	CategoryID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Transaction, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx := &Transaction{
		UserID:            userID,
		Type:              params.Type,
		ContactID:         params.ContactID,
		CategoryID:        params.CategoryID,
		OriginalAmount:    params.Amount,
		OutstandingAmount: params.Amount,
		Status:            StatusOngoing,
		Description:       params.Description,
		DueDate:           params.DueDate,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// Update persists edits to descriptive fields. The balance columns are not
// part of the UPDATE; they only move through RecordPayment and MarkFullyPaid.
func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, userID, id)
}

// RecordPayment applies a payment against the transaction's outstanding
// balance. Overpayment is rejected, never clamped: silently absorbing an
// amount larger than the balance would hide user error. An exact payment of
// the full balance settles the transaction.
//
// Submitting the same payment twice is not deduplicated; each call creates
// its own Payment row and decrements the balance again.
func (s *Service) RecordPayment(ctx context.Context, userID, txID uuid.UUID, amount int64) (*Transaction, *Payment, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	tx, err := s.repo.GetTransaction(ctx, userID, txID)
	if err != nil {
		return nil, nil, err
	}

	if amount > tx.OutstandingAmount {
		return nil, nil, ErrExceedsOutstanding
	}

	return s.repo.ApplyPayment(ctx, userID, txID, amount)
}

// MarkFullyPaid settles a transaction without recording a payment. The
// missing Payment row means sum(payments) no longer reconciles with the
// original amount for transactions settled this way; that matches the
// write-off shortcut in the product and is left as-is.
func (s *Service) MarkFullyPaid(ctx context.Context, userID, txID uuid.UUID) (*Transaction, error) {
	return s.repo.Settle(ctx, userID, txID)
}

func (s *Service) ListPayments(ctx context.Context, userID, txID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, userID, txID)
}

// Totals aggregates the outstanding balances of ongoing transactions into
// the per-type summary figures. Recomputed on every call; nothing is cached.
func (s *Service) Totals(ctx context.Context, userID uuid.UUID) (Totals, error) {
	status := StatusOngoing

	txs, err := s.repo.ListTransactions(ctx, userID, ListFilter{Status: &status})
	if err != nil {
		return Totals{}, err
	}

	return Totals{
		Debt:       ComputeTotals(txs, TypeDebt),
		Receivable: ComputeTotals(txs, TypeReceivable),
	}, nil
}
