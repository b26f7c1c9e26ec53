package orm

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type AccountRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewAccountRepository(db *database.PostgresDB) *AccountRepository {
	return &AccountRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (id int64, err error) {
	defer observe(customerrors.OpCreateAccount, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	insertQuery := r.sq.Insert("accounts").
		Columns("username", "password_hash", "pair_from", "pair_to", "created_at").
		Values(account.Username, account.PasswordHash, account.Preference.PairFrom, account.Preference.PairTo, account.CreatedAt).
		Suffix("RETURNING id")

	query, args, err := insertQuery.ToSql()
	if err != nil {
		return 0, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpCreateAccount, Cause: err}
	}

	if err = querier.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, &customerrors.ErrUsernameTaken{Username: account.Username}
		}

		return 0, &customerrors.ErrSQLExecution{Operation: customerrors.OpCreateAccount, Cause: err}
	}

	account.ID = id

	return id, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (account *models.Account, err error) {
	defer observe(customerrors.OpGetAccount, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	selectQuery := r.sq.Select("id", "username", "password_hash", "pair_from", "pair_to", "created_at").
		From("accounts").
		Where(sq.Eq{"username": username})

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetAccount, Cause: err}
	}

	account = &models.Account{}

	err = querier.QueryRow(ctx, query, args...).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Preference.PairFrom,
		&account.Preference.PairTo,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &customerrors.ErrAccountNotFound{Username: username}
		}

		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetAccount, Cause: err}
	}

	return account, nil
}

func (r *AccountRepository) GetPreference(ctx context.Context, accountID int64) (preference models.Preference, err error) {
	defer observe(customerrors.OpGetPreference, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("pair_from", "pair_to").
		From("accounts").
		Where(sq.Eq{"id": accountID}).
		ToSql()
	if err != nil {
		return models.Preference{}, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetPreference, Cause: err}
	}

	err = querier.QueryRow(ctx, query, args...).Scan(&preference.PairFrom, &preference.PairTo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Preference{}, &customerrors.ErrAccountNotFound{Username: fmt.Sprintf("#%d", accountID)}
		}

		return models.Preference{}, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetPreference, Cause: err}
	}

	return preference, nil
}

func (r *AccountRepository) UpdatePreference(ctx context.Context, accountID int64, preference models.Preference) (err error) {
	defer observe(customerrors.OpUpdatePreference, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Update("accounts").
		Set("pair_from", preference.PairFrom).
		Set("pair_to", preference.PairTo).
		Where(sq.Eq{"id": accountID}).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpUpdatePreference, Cause: err}
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpdatePreference, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAccountNotFound{Username: fmt.Sprintf("#%d", accountID)}
	}

	return nil
}

const uniqueViolation = "23505"

func observe(operation string, start time.Time, err *error) {
	metrics.RecordDatabaseQuery(operation, *err, time.Since(start))
}
