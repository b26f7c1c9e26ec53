package rates

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type Fetcher interface {
	FetchRates(ctx context.Context) (*models.RateTable, error)
}

// Refresher periodically pulls a fresh rate table and swaps it into the
// store. A failed refresh keeps the previous table.
type Refresher struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	store     *Store
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

func NewRefresher(fetcher Fetcher, store *Store, interval, timeout time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		fetcher:   fetcher,
		store:     store,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

func (r *Refresher) Start() error {
	r.logger.Info("Запуск обновления курсов валют",
		"interval", r.interval.String(),
	)

	_, err := r.scheduler.Every(r.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.Refresh(ctx); err != nil {
			r.logger.Error("Ошибка при обновлении курсов валют",
				"error", err,
			)
		}
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()

	return nil
}

func (r *Refresher) Refresh(ctx context.Context) error {
	ctx, span := otel.Tracer("rates").Start(ctx, "Refresher.Refresh")
	defer span.End()

	start := time.Now()

	table, err := r.fetcher.FetchRates(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordRatesRefresh(metrics.StatusError, time.Since(start), time.Time{})

		return err
	}

	r.store.Replace(table)

	span.SetAttributes(
		attribute.String("rates.base", table.Base),
		attribute.Int("rates.count", len(table.Rates)),
	)
	metrics.RecordRatesRefresh(metrics.StatusSuccess, time.Since(start), table.Updated)

	r.logger.Info("Курсы валют обновлены",
		"base", table.Base,
		"count", len(table.Rates),
		"updated", table.Updated,
	)

	return nil
}

func (r *Refresher) Stop() {
	r.logger.Info("Остановка обновления курсов валют")
	r.scheduler.Stop()
}
