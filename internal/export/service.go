package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pandukaz/debtbook/internal/contact"
	"github.com/pandukaz/debtbook/internal/ledger"
)

// Service renders a user's ledger as CSV for download from the web app.
type Service struct {
	transactions *ledger.Service
	contacts     *contact.Service
}

func NewService(transactions *ledger.Service, contacts *contact.Service) *Service {
	return &Service{transactions: transactions, contacts: contacts}
}

var header = []string{
	"created_at", "type", "contact", "description",
	"original_amount", "outstanding_amount", "status", "due_date",
}

// WriteCSV streams the user's transactions, optionally filtered, to w.
func (s *Service) WriteCSV(ctx context.Context, userID uuid.UUID, filter ledger.ListFilter, w io.Writer) error {
	txs, err := s.transactions.List(ctx, userID, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	contacts, err := s.contacts.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing contacts: %w", err)
	}

	names := make(map[uuid.UUID]string, len(contacts))
	for _, c := range contacts {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		dueDate := ""
		if tx.DueDate != nil {
			dueDate = tx.DueDate.Format(time.DateOnly)
		}

		record := []string{
			tx.CreatedAt.Format(time.DateOnly),
			string(tx.Type),
			names[tx.ContactID],
			tx.Description,
			strconv.FormatInt(tx.OriginalAmount, 10),
			strconv.FormatInt(tx.OutstandingAmount, 10),
			string(tx.Status),
			dueDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
