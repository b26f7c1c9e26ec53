package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type RateService struct {
	preferences PreferenceReader
	currencies  *CurrencyRegistry
	rates       RateProvider
	conversions ConversionRepository
	publisher   ConversionPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewRateService builds the quote service. publisher may be nil, then
// conversions are only written to the log table.
func NewRateService(
	preferences PreferenceReader,
	currencies *CurrencyRegistry,
	rates RateProvider,
	conversions ConversionRepository,
	publisher ConversionPublisher,
	logger *slog.Logger,
) *RateService {
	return &RateService{
		preferences: preferences,
		currencies:  currencies,
		rates:       rates,
		conversions: conversions,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// Quote converts request.Amount (1 when empty) from request.From to
// request.To. Missing currencies are taken from the account's default pair.
// Every successful quote is appended to the conversion log.
func (s *RateService) Quote(ctx context.Context, accountID int64, request models.QuoteRequest) (*models.Quote, error) {
	from, to := request.From, request.To

	if from == "" || to == "" {
		preference, err := s.preferences.GetPreference(ctx, accountID)
		if err != nil {
			return nil, err
		}

		if from == "" {
			from = preference.PairFrom
		}

		if to == "" {
			to = preference.PairTo
		}
	}

	amount := decimal.NewFromInt(1)

	if request.Amount != "" {
		parsed, err := decimal.NewFromString(request.Amount)
		if err != nil {
			return nil, &domainerrors.ErrInvalidArgument{Message: fmt.Sprintf("сумма %q: %v", request.Amount, err)}
		}

		amount = parsed
	}

	codes, err := s.currencies.Validate(from, to)
	if err != nil {
		return nil, err
	}

	from, to = codes[0], codes[1]

	rate, err := s.rates.Rate(from, to)
	if err != nil {
		var unavailable *domainerrors.ErrRateUnavailable
		if errors.As(err, &unavailable) {
			return nil, &domainerrors.ErrValidation{
				Message: fmt.Sprintf("Rate for '%s' is not available!", unavailable.Currency),
			}
		}

		return nil, err
	}

	entry := &models.ConversionLogEntry{
		AccountID: accountID,
		From:      from,
		To:        to,
		Amount:    amount,
		Rate:      rate,
		CreatedAt: s.now().UTC(),
	}

	if err := s.conversions.Save(ctx, entry); err != nil {
		return nil, err
	}

	metrics.RecordConversion(from, to)

	if s.publisher != nil {
		if err := s.publisher.PublishConversion(ctx, entry); err != nil {
			s.logger.Warn("Не удалось опубликовать событие конвертации",
				"error", err,
				"accountID", accountID,
			)
		}
	}

	return &models.Quote{
		From:   from,
		To:     to,
		Amount: amount,
		Rate:   rate,
		Result: amount.Mul(rate).Round(2),
	}, nil
}
