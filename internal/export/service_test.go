package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pandukaz/debtbook/internal/contact"
	"github.com/pandukaz/debtbook/internal/export"
	"github.com/pandukaz/debtbook/internal/ledger"
)

type contactRepoStub struct {
	contacts []*contact.Contact
}

func (s *contactRepoStub) CreateContact(context.Context, *contact.Contact) error { return nil }
func (s *contactRepoStub) UpdateContact(context.Context, *contact.Contact) error { return nil }
func (s *contactRepoStub) DeleteContact(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *contactRepoStub) GetContact(context.Context, uuid.UUID, uuid.UUID) (*contact.Contact, error) {
	return nil, contact.ErrNotFound
}

func (s *contactRepoStub) ListContacts(context.Context, uuid.UUID) ([]*contact.Contact, error) {
	return s.contacts, nil
}

func TestService_WriteCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	contactID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), userID, ledger.ListFilter{}).
		Return([]*ledger.Transaction{
			{
				ID:                uuid.New(),
				Type:              ledger.TypeDebt,
				ContactID:         contactID,
				OriginalAmount:    100000,
				OutstandingAmount: 60000,
				Status:            ledger.StatusOngoing,
				Description:       "Borrowed for rent",
				CreatedAt:         time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			},
		}, nil)

	contacts := contact.NewService(&contactRepoStub{contacts: []*contact.Contact{
		{ID: contactID, Name: "Budi"},
	}})

	svc := export.NewService(ledger.NewService(repo), contacts)

	var buf bytes.Buffer

	err := svc.WriteCSV(context.Background(), userID, ledger.ListFilter{}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "created_at,type,contact,description,original_amount,outstanding_amount,status,due_date", lines[0])
	assert.Equal(t, "2024-03-10,debt,Budi,Borrowed for rent,100000,60000,ongoing,", lines[1])
}

func TestService_WriteCSV_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), userID, ledger.ListFilter{}).
		Return(nil, nil)

	svc := export.NewService(ledger.NewService(repo), contact.NewService(&contactRepoStub{}))

	var buf bytes.Buffer

	err := svc.WriteCSV(context.Background(), userID, ledger.ListFilter{}, &buf)
	require.NoError(t, err)

	// Header only.
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(buf.String()), "\n")+1)
}
