package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/pandukaz/debtbook/internal/ledger"
)

type transactionResponse struct {
	ID                uuid.UUID     `json:"id"`
	Type              ledger.Type   `json:"type"`
	ContactID         uuid.UUID     `json:"contact_id"`
	CategoryID        uuid.UUID     `json:"category_id"`
	OriginalAmount    int64         `json:"original_amount"`
	OutstandingAmount int64         `json:"outstanding_amount"`
	Status            ledger.Status `json:"status"`
	Description       string        `json:"description,omitempty"`
	DueDate           *time.Time    `json:"due_date,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:                tx.ID,
		Type:              tx.Type,
		ContactID:         tx.ContactID,
		CategoryID:        tx.CategoryID,
		OriginalAmount:    tx.OriginalAmount,
		OutstandingAmount: tx.OutstandingAmount,
		Status:            tx.Status,
		Description:       tx.Description,
		DueDate:           tx.DueDate,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type paymentResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPaymentResponse(p *ledger.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
	}
}

func toPaymentResponseList(payments []*ledger.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPaymentResponse(p)
	}

	return resp
}

type paymentResultResponse struct {
	Transaction transactionResponse `json:"transaction"`
	Payment     paymentResponse     `json:"payment"`
}

func toPaymentResultResponse(tx *ledger.Transaction, p *ledger.Payment) paymentResultResponse {
	return paymentResultResponse{
		Transaction: toResponse(tx),
		Payment:     toPaymentResponse(p),
	}
}

type summaryResponse struct {
	TotalDebt       int64 `json:"total_debt"`
	TotalReceivable int64 `json:"total_receivable"`
}

func toSummaryResponse(t ledger.Totals) summaryResponse {
	return summaryResponse{
		TotalDebt:       t.Debt,
		TotalReceivable: t.Receivable,
	}
}
