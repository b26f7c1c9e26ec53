package orm

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type ConversionRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewConversionRepository(db *database.PostgresDB) *ConversionRepository {
	return &ConversionRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ConversionRepository) Save(ctx context.Context, entry *models.ConversionLogEntry) (err error) {
	defer observe(customerrors.OpSaveConversion, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query, args, err := r.sq.Insert("conversion_history").
		Columns("account_id", "cur_from", "cur_to", "amount", "rate", "created_at").
		Values(entry.AccountID, entry.From, entry.To, entry.Amount, entry.Rate, entry.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpSaveConversion, Cause: err}
	}

	if err = querier.QueryRow(ctx, query, args...).Scan(&entry.ID); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpSaveConversion, Cause: err}
	}

	return nil
}

func (r *ConversionRepository) Find(ctx context.Context, query models.HistoryQuery) (entries []*models.ConversionLogEntry, err error) {
	defer observe(customerrors.OpFindConversions, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	conditions := sq.And{
		sq.Eq{"account_id": query.AccountID},
		sq.GtOrEq{"created_at": query.Start},
		sq.Lt{"created_at": query.End.AddDate(0, 0, 1)},
	}

	switch {
	case query.CurFrom != "" && query.CurTo != "":
		conditions = append(conditions, sq.Eq{"cur_from": query.CurFrom, "cur_to": query.CurTo})
	case query.CurFrom != "":
		conditions = append(conditions, sq.Or{
			sq.Eq{"cur_from": query.CurFrom},
			sq.Eq{"cur_to": query.CurFrom},
		})
	}

	sqlQuery, args, err := r.sq.Select("id", "account_id", "cur_from", "cur_to", "amount", "rate", "created_at").
		From("conversion_history").
		Where(conditions).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpFindConversions, Cause: err}
	}

	rows, err := querier.Query(ctx, sqlQuery, args...)
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
