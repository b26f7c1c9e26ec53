package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type AccountManager struct {
	mock.Mock
}

func (m *AccountManager) IsLoggedIn(ctx context.Context, identity string) (int64, bool, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *AccountManager) Register(ctx context.Context, identity, username, password, pairFrom, pairTo string) (int64, error) {
	args := m.Called(ctx, identity, username, password, pairFrom, pairTo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccountManager) Authenticate(ctx context.Context, identity, username, password string) (int64, error) {
	args := m.Called(ctx, identity, username, password)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccountManager) Logout(ctx context.Context, identity string) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *AccountManager) GetPreference(ctx context.Context, accountID int64) (models.Preference, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(models.Preference), args.Error(1)
}

func (m *AccountManager) SetHomeCurrency(ctx context.Context, accountID int64, code string) (string, error) {
	args := m.Called(ctx, accountID, code)
	return args.String(0), args.Error(1)
}

func (m *AccountManager) SetPair(ctx context.Context, accountID int64, from, to string) error {
	args := m.Called(ctx, accountID, from, to)
	return args.Error(0)
}

type Quoter struct {
	mock.Mock
}

func (m *Quoter) Quote(ctx context.Context, accountID int64, request models.QuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, accountID, request)

	var quote *models.Quote
	if v := args.Get(0); v != nil {
		quote = v.(*models.Quote)
	}

	return quote, args.Error(1)
}

type HistoryReader struct {
	mock.Mock
}

func (m *HistoryReader) History(ctx context.Context, accountID int64, request models.HistoryRequest) (*models.HistoryReport, error) {
	args := m.Called(ctx, accountID, request)

	var report *models.HistoryReport
	if v := args.Get(0); v != nil {
		report = v.(*models.HistoryReport)
	}

	return report, args.Error(1)
}
