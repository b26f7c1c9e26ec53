package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/central-university-dev/go-currency-bot/internal/common"
	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type HistoryService struct {
	conversions ConversionRepository
	location    *time.Location
	logger      *slog.Logger
	now         func() time.Time
}

// NewHistoryService reads the conversion log. Calendar days, including
// "today", are counted in location.
func NewHistoryService(conversions ConversionRepository, location *time.Location, logger *slog.Logger) *HistoryService {
	if location == nil {
		location = time.UTC
	}

	return &HistoryService{
		conversions: conversions,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// History returns the account's conversions in the inclusive day range
// [DateFrom, DateTo], or today when both are empty. One currency matches
// either side of a conversion, two match the exact pair.
func (s *HistoryService) History(ctx context.Context, accountID int64, request models.HistoryRequest) (*models.HistoryReport, error) {
	today := startOfDay(s.now().In(s.location))
	start, end := today, today

	switch {
	case request.DateFrom == "" && request.DateTo == "":
	case request.DateFrom != "" && request.DateTo != "":
		var err error

		if start, err = common.ParseDate(request.DateFrom, s.location); err != nil {
			return nil, err
		}

		if end, err = common.ParseDate(request.DateTo, s.location); err != nil {
			return nil, err
		}
	default:
		return nil, &domainerrors.ErrInvalidArgument{Message: "даты периода должны быть указаны обе или ни одной"}
	}

	report := &models.HistoryReport{
		Query: models.HistoryQuery{
			AccountID: accountID,
			Start:     start,
			End:       end,
			CurFrom:   NormalizeCurrency(request.CurFrom),
			CurTo:     NormalizeCurrency(request.CurTo),
		},
		DateFrom: request.DateFrom,
		DateTo:   request.DateTo,
		Today:    start.Equal(today) && end.Equal(today),
	}

	if start.After(end) {
		report.Invalid = true
		return report, nil
	}

	entries, err := s.conversions.Find(ctx, report.Query)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		entry.CreatedAt = entry.CreatedAt.In(s.location)
	}

	report.Entries = entries

	s.logger.Debug("История конвертаций получена",
		"accountID", accountID,
		"count", len(entries),
	)

	return report, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
