package orm

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type CurrencyRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewCurrencyRepository(db *database.PostgresDB) *CurrencyRepository {
	return &CurrencyRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CurrencyRepository) ListCodes(ctx context.Context) (codes []string, err error) {
	defer observe(customerrors.OpListCurrencies, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("code").From("currencies").OrderBy("code").ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpListCurrencies, Cause: err}
	}

	rows, err := querier.Query(ctx, query, args...)
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
