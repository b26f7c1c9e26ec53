package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	db *database.PostgresDB
}

func NewAccountRepository(db *database.PostgresDB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (id int64, err error) {
	defer observe(customerrors.OpCreateAccount, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	err = querier.QueryRow(ctx,
		"INSERT INTO accounts (username, password_hash, pair_from, pair_to, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		account.Username, account.PasswordHash, account.Preference.PairFrom, account.Preference.PairTo, account.CreatedAt,
	).Scan(&id)
	if err != nil {
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

	account = &models.Account{}

	err = querier.QueryRow(ctx,
		"SELECT id, username, password_hash, pair_from, pair_to, created_at FROM accounts WHERE username = $1",
		username,
	).Scan(
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

	err = querier.QueryRow(ctx,
		"SELECT pair_from, pair_to FROM accounts WHERE id = $1",
		accountID,
	).Scan(&preference.PairFrom, &preference.PairTo)
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

	tag, err := querier.Exec(ctx,
		"UPDATE accounts SET pair_from = $1, pair_to = $2 WHERE id = $3",
		preference.PairFrom, preference.PairTo, accountID,
	)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpdatePreference, Cause: err}
	}

	if tag.RowsAffected() == 0 {
		return &customerrors.ErrAccountNotFound{Username: fmt.Sprintf("#%d", accountID)}
	}

	return nil
}

func observe(operation string, start time.Time, err *error) {
	metrics.RecordDatabaseQuery(operation, *err, time.Since(start))
}
