package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type ConversionRepository struct {
	mock.Mock
}

func (m *ConversionRepository) Save(ctx context.Context, entry *models.ConversionLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ConversionRepository) Find(ctx context.Context, query models.HistoryQuery) ([]*models.ConversionLogEntry, error) {
	args := m.Called(ctx, query)

	var entries []*models.ConversionLogEntry
	if v := args.Get(0); v != nil {
		entries = v.([]*models.ConversionLogEntry)
	}

	return entries, args.Error(1)
}

type CurrencyRepository struct {
	mock.Mock
}

func (m *CurrencyRepository) ListCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	var codes []string
	if v := args.Get(0); v != nil {
		codes = v.([]string)
	}

	return codes, args.Error(1)
}

type RateProvider struct {
	mock.Mock
}

func (m *RateProvider) Rate(from, to string) (decimal.Decimal, error) {
	args := m.Called(from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type ConversionPublisher struct {
	mock.Mock
}

func (m *ConversionPublisher) PublishConversion(ctx context.Context, entry *models.ConversionLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
