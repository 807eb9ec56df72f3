package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the direction of an obligation: money the user owes
// (debt) or money owed to the user (receivable).
type Type string

const (
	TypeDebt       Type = "debt"
	TypeReceivable Type = "receivable"
)

// Status represents the payment state of a transaction.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusPaid    Status = "paid"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrInvalidAmount      = errors.New("payment amount must be positive")
	ErrExceedsOutstanding = errors.New("payment exceeds outstanding amount")
)

// Transaction is a single debt or receivable. OriginalAmount is fixed at
// creation; OutstandingAmount only moves through RecordPayment or
// MarkFullyPaid, and status is paid exactly when it reaches zero.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              Type
	ContactID         uuid.UUID
	CategoryID        uuid.UUID
	OriginalAmount    int64 // Amount in minor units
	OutstandingAmount int64
	Status            Status
	Description       string
	DueDate           *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// Payment is a single amount applied against a transaction's balance.
type Payment struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Amount        int64
	CreatedAt     time.Time
}

// ComputeTotals sums the outstanding amounts of ongoing transactions of the
// given type. Settled transactions and transactions of the other type do not
// contribute.
func ComputeTotals(txs []*Transaction, typ Type) int64 {
	var total int64

	for _, tx := range txs {
		if tx.Type != typ || tx.Status != StatusOngoing {
			continue
		}

		total += tx.OutstandingAmount
	}

	return total
}

// Totals holds the summary figures shown on the dashboard.
type Totals struct {
	Debt       int64
	Receivable int64
}
