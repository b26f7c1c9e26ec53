package sql

import (
	"context"
	"time"

	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type CurrencyRepository struct {
	db *database.PostgresDB
}

func NewCurrencyRepository(db *database.PostgresDB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) ListCodes(ctx context.Context) (codes []string, err error) {
	defer observe(customerrors.OpListCurrencies, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	rows, err := querier.Query(ctx, "SELECT code FROM currencies ORDER BY code")
	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpListCurrencies, Cause: err}
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			return nil, &customerrors.ErrSQLScan{Entity: "валюта", Cause: err}
		}

		codes = append(codes, code)
	}

	if err = rows.Err(); err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpListCurrencies, Cause: err}
	}

	return codes, nil
}
