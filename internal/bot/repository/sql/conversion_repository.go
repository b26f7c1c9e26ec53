package sql

import (
	"context"
	"strings"
	"time"

	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type ConversionRepository struct {
	db *database.PostgresDB
}

func NewConversionRepository(db *database.PostgresDB) *ConversionRepository {
	return &ConversionRepository{db: db}
}

func (r *ConversionRepository) Save(ctx context.Context, entry *models.ConversionLogEntry) (err error) {
	defer observe(customerrors.OpSaveConversion, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	err = querier.QueryRow(ctx,
		"INSERT INTO conversion_history (account_id, cur_from, cur_to, amount, rate, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		entry.AccountID, entry.From, entry.To, entry.Amount, entry.Rate, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpSaveConversion, Cause: err}
	}

	return nil
}

// Find returns the entries of query.AccountID created on any day from
// query.Start to query.End inclusive, oldest first. One currency matches
// either side of a conversion, two currencies match the exact direction.
func (r *ConversionRepository) Find(ctx context.Context, query models.HistoryQuery) (entries []*models.ConversionLogEntry, err error) {
	defer observe(customerrors.OpFindConversions, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	var sb strings.Builder

	sb.WriteString("SELECT id, account_id, cur_from, cur_to, amount, rate, created_at FROM conversion_history ")
	sb.WriteString("WHERE account_id = $1 AND created_at >= $2 AND created_at < $3")

	args := []any{query.AccountID, query.Start, query.End.AddDate(0, 0, 1)}

	switch {
	case query.CurFrom != "" && query.CurTo != "":
		sb.WriteString(" AND cur_from = $4 AND cur_to = $5")

		args = append(args, query.CurFrom, query.CurTo)
	case query.CurFrom != "":
		sb.WriteString(" AND (cur_from = $4 OR cur_to = $4)")

		args = append(args, query.CurFrom)
	}

	sb.WriteString(" ORDER BY created_at, id")

	rows, err := querier.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpFindConversions, Cause: err}
	}
	defer rows.Close()

	for rows.Next() {
		entry := &models.ConversionLogEntry{}

		err = rows.Scan(&entry.ID, &entry.AccountID, &entry.From, &entry.To, &entry.Amount, &entry.Rate, &entry.CreatedAt)
		if err != nil {
			return nil, &customerrors.ErrSQLScan{Entity: "запись истории конвертаций", Cause: err}
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpFindConversions, Cause: err}
	}

	return entries, nil
}
