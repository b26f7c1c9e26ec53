package clients

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"

	"github.com/central-university-dev/go-currency-bot/internal/bot/rates"
	"github.com/central-university-dev/go-currency-bot/internal/common/httputil"
	"github.com/central-university-dev/go-currency-bot/internal/config"
	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

const ratesServiceName = "rates_api"

// RatesClient downloads the rate table from CURRENCY_RATES_API_URL.
type RatesClient struct {
	client *resty.Client
	url    string
	logger *slog.Logger
}

func NewRatesClient(cfg *config.Config, logger *slog.Logger) *RatesClient {
	return &RatesClient{
		client: httputil.CreateResilientHTTPClient(cfg, logger, ratesServiceName),
		url:    cfg.CurrencyRatesAPIURL,
		logger: logger,
	}
}

func (c *RatesClient) FetchRates(ctx context.Context) (*models.RateTable, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.url)
	if err != nil {
		return nil, errors.Wrap(err, "request rates")
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("Сервис курсов валют вернул ошибку",
			"status", resp.StatusCode(),
		)

		return nil, errors.Wrap(&domainerrors.HTTPError{StatusCode: resp.StatusCode()}, "request rates")
	}

	table, err := rates.DecodeRateTable(resp.Body())
	if err != nil {
		return nil, errors.Wrap(err, "parse rates")
	}

	return table, nil
}
