package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pandukaz/debtbook/internal/user"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: user.RegisterParams{
				Email:    "Ana@Example.com",
				Name:     "Ana",
				Password: "hunter22",
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(nil, user.ErrNotFound)
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "EmailTaken",
			params: user.RegisterParams{
				Email:    "ana@example.com",
				Password: "hunter22",
			},
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(&user.User{ID: uuid.New(), Email: "ana@example.com"}, nil)
			},
			wantErr: user.ErrEmailTaken,
		},
		{
			name:    "EmptyPassword",
			params:  user.RegisterParams{Email: "ana@example.com"},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "ana@example.com", got.Email)
			assert.NotEmpty(t, got.ID)

			// Stored hash verifies against the original password.
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(tt.params.Password)))
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
	}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "ana@example.com",
			password: "hunter22",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "ana@example.com",
			password: "nope",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(stored, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@example.com",
			password: "hunter22",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ghost@example.com").
					Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}
