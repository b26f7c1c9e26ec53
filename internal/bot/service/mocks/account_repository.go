package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Create(ctx context.Context, account *models.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)

	var account *models.Account
	if v := args.Get(0); v != nil {
		account = v.(*models.Account)
	}

	return account, args.Error(1)
}

func (m *AccountRepository) GetPreference(ctx context.Context, accountID int64) (models.Preference, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(models.Preference), args.Error(1)
}

func (m *AccountRepository) UpdatePreference(ctx context.Context, accountID int64, preference models.Preference) error {
	args := m.Called(ctx, accountID, preference)
	return args.Error(0)
}
