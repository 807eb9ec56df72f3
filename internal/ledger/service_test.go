package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pandukaz/debtbook/internal/ledger"
)

func TestService_RecordPayment(t *testing.T) {
	userID := uuid.New()
	txID := uuid.New()

	type args struct {
		amount int64
	}

	type testCase struct {
		name            string
		args            args
		setupMock       func(m *ledger.MockRepository)
		wantOutstanding int64
		wantStatus      ledger.Status
		wantErr         error
	}

	tests := []testCase{
		{
			name: "PartialPayment",
			args: args{amount: 40000},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), userID, txID).
					Return(&ledger.Transaction{
						ID:                txID,
						UserID:            userID,
						Type:              ledger.TypeDebt,
						OriginalAmount:    100000,
						OutstandingAmount: 100000,
						Status:            ledger.StatusOngoing,
					}, nil)
				m.EXPECT().
					ApplyPayment(gomock.Any(), userID, txID, int64(40000)).
					Return(
						&ledger.Transaction{
							ID:                txID,
							OriginalAmount:    100000,
							OutstandingAmount: 60000,
							Status:            ledger.StatusOngoing,
						},
						&ledger.Payment{ID: uuid.New(), TransactionID: txID, Amount: 40000},
						nil,
					)
			},
			wantOutstanding: 60000,
			wantStatus:      ledger.StatusOngoing,
		},
		{
			name: "ExactFullPaymentSettles",
			args: args{amount: 100000},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), userID, txID).
					Return(&ledger.Transaction{
						ID:                txID,
						UserID:            userID,
						OriginalAmount:    100000,
						OutstandingAmount: 100000,
						Status:            ledger.StatusOngoing,
					}, nil)
				m.EXPECT().
					ApplyPayment(gomock.Any(), userID, txID, int64(100000)).
					Return(
						&ledger.Transaction{
							ID:                txID,
							OriginalAmount:    100000,
							OutstandingAmount: 0,
							Status:            ledger.StatusPaid,
						},
						&ledger.Payment{ID: uuid.New(), TransactionID: txID, Amount: 100000},
						nil,
					)
			},
			wantOutstanding: 0,
			wantStatus:      ledger.StatusPaid,
		},
		{
			name: "OverpaymentRejected",
			args: args{amount: 150000},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), userID, txID).
					Return(&ledger.Transaction{
						ID:                txID,
						UserID:            userID,
						OriginalAmount:    100000,
						OutstandingAmount: 100000,
						Status:            ledger.StatusOngoing,
					}, nil)
				// No ApplyPayment call: the overpayment never reaches the store.
			},
			wantErr: ledger.ErrExceedsOutstanding,
		},
		{
			name:    "ZeroAmountRejected",
			args:    args{amount: 0},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmountRejected",
			args:    args{amount: -500},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "NotFound",
			args: args{amount: 1000},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), userID, txID).
					Return(nil, ledger.ErrNotFound)
			},
			wantErr: ledger.ErrNotFound,
		},
		{
			name: "StoreFailure",
			args: args{amount: 1000},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					GetTransaction(gomock.Any(), userID, txID).
					Return(&ledger.Transaction{
						ID:                txID,
						UserID:            userID,
						OutstandingAmount: 5000,
						Status:            ledger.StatusOngoing,
					}, nil)
				m.EXPECT().
					ApplyPayment(gomock.Any(), userID, txID, int64(1000)).
					Return(nil, nil, errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			tx, payment, err := svc.RecordPayment(context.Background(), userID, txID, tt.args.amount)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, ledger.ErrInvalidAmount) ||
					errors.Is(tt.wantErr, ledger.ErrExceedsOutstanding) ||
					errors.Is(tt.wantErr, ledger.ErrNotFound) {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Nil(t, tx)
				assert.Nil(t, payment)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, tx)
			require.NotNil(t, payment)
			assert.Equal(t, tt.wantOutstanding, tx.OutstandingAmount)
			assert.Equal(t, tt.wantStatus, tx.Status)
			assert.Equal(t, tt.args.amount, payment.Amount)
			assert.Equal(t, txID, payment.TransactionID)
		})
	}
}

// TestService_RecordPayment_NotIdempotent pins the current behavior: the same
// logical payment submitted twice is applied twice. Each call inserts its own
// payment row and decrements the balance again. There is no deduplication.
func TestService_RecordPayment_NotIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	txID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	outstanding := int64(100000)

	repo.EXPECT().
		GetTransaction(gomock.Any(), userID, txID).
		DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*ledger.Transaction, error) {
			return &ledger.Transaction{
				ID:                txID,
				UserID:            userID,
				OriginalAmount:    100000,
				OutstandingAmount: outstanding,
				Status:            ledger.StatusOngoing,
			}, nil
		}).
		Times(2)

	repo.EXPECT().
		ApplyPayment(gomock.Any(), userID, txID, int64(30000)).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, amount int64) (*ledger.Transaction, *ledger.Payment, error) {
			outstanding -= amount

			return &ledger.Transaction{
					ID:                txID,
					OriginalAmount:    100000,
					OutstandingAmount: outstanding,
					Status:            ledger.StatusOngoing,
				},
				&ledger.Payment{ID: uuid.New(), TransactionID: txID, Amount: amount},
				nil
		}).
		Times(2)

	first, p1, err := svc.RecordPayment(context.Background(), userID, txID, 30000)
	require.NoError(t, err)

	second, p2, err := svc.RecordPayment(context.Background(), userID, txID, 30000)
	require.NoError(t, err)

	assert.Equal(t, int64(70000), first.OutstandingAmount)
	assert.Equal(t, int64(40000), second.OutstandingAmount)
	assert.NotEqual(t, p1.ID, p2.ID)
}

// Scenario from the product: a 100000 debt paid in two installments of 40000
// and 60000 ends settled with two payment rows summing to the original amount.
func TestService_RecordPayment_TwoInstallments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	txID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	tx := &ledger.Transaction{
		ID:                txID,
		UserID:            userID,
		Type:              ledger.TypeReceivable,
		OriginalAmount:    100000,
		OutstandingAmount: 100000,
		Status:            ledger.StatusOngoing,
	}

	var recorded []*ledger.Payment

	repo.EXPECT().
		GetTransaction(gomock.Any(), userID, txID).
		DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*ledger.Transaction, error) {
			snapshot := *tx
			return &snapshot, nil
		}).
		Times(2)

	repo.EXPECT().
		ApplyPayment(gomock.Any(), userID, txID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, amount int64) (*ledger.Transaction, *ledger.Payment, error) {
			tx.OutstandingAmount -= amount
			if tx.OutstandingAmount <= 0 {
				tx.Status = ledger.StatusPaid
			}

			p := &ledger.Payment{ID: uuid.New(), TransactionID: txID, Amount: amount}
			recorded = append(recorded, p)

			snapshot := *tx

			return &snapshot, p, nil
		}).
		Times(2)

	_, _, err := svc.RecordPayment(context.Background(), userID, txID, 40000)
	require.NoError(t, err)

	final, _, err := svc.RecordPayment(context.Background(), userID, txID, 60000)
	require.NoError(t, err)

	assert.Equal(t, int64(0), final.OutstandingAmount)
	assert.Equal(t, ledger.StatusPaid, final.Status)

	require.Len(t, recorded, 2)
	assert.Equal(t, int64(100000), recorded[0].Amount+recorded[1].Amount)
}

func TestService_MarkFullyPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	txID := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		Settle(gomock.Any(), userID, txID).
		Return(&ledger.Transaction{
			ID:                txID,
			OriginalAmount:    100000,
			OutstandingAmount: 0,
			Status:            ledger.StatusPaid,
		}, nil)

	svc := ledger.NewService(repo)

	tx, err := svc.MarkFullyPaid(context.Background(), userID, txID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.OutstandingAmount)
	assert.Equal(t, ledger.StatusPaid, tx.Status)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    ledger.CreateParams
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: ledger.CreateParams{
				Type:        ledger.TypeDebt,
				ContactID:   uuid.New(),
				CategoryID:  uuid.New(),
				Amount:      250000,
				Description: "Borrowed for rent",
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "NonPositiveAmount",
			params:  ledger.CreateParams{Type: ledger.TypeDebt, Amount: 0},
			wantErr: ledger.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			got, err := svc.Create(context.Background(), uuid.New(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.params.Amount, got.OriginalAmount)
			assert.Equal(t, tt.params.Amount, got.OutstandingAmount)
			assert.Equal(t, ledger.StatusOngoing, got.Status)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Totals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	ongoing := ledger.StatusOngoing

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), userID, ledger.ListFilter{Status: &ongoing}).
		Return([]*ledger.Transaction{
			{Type: ledger.TypeDebt, Status: ledger.StatusOngoing, OutstandingAmount: 50000},
			{Type: ledger.TypeDebt, Status: ledger.StatusOngoing, OutstandingAmount: 25000},
			{Type: ledger.TypeReceivable, Status: ledger.StatusOngoing, OutstandingAmount: 10000},
		}, nil)

	svc := ledger.NewService(repo)

	totals, err := svc.Totals(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), totals.Debt)
	assert.Equal(t, int64(10000), totals.Receivable)
}
