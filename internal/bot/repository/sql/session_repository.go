package sql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type SessionRepository struct {
	db *database.PostgresDB
}

func NewSessionRepository(db *database.PostgresDB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetActiveAccount(ctx context.Context, identity string) (accountID int64, loggedIn bool, err error) {
	defer observe(customerrors.OpGetActiveSession, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	var isIn bool

	err = querier.QueryRow(ctx,
		"SELECT account_id, is_in FROM session_events WHERE identity = $1 ORDER BY created_at DESC, id DESC LIMIT 1",
		identity,
	).Scan(&accountID, &isIn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}

		return 0, false, &customerrors.ErrSQLExecution{Operation: customerrors.OpGetActiveSession, Cause: err}
	}

	if !isIn {
		return 0, false, nil
	}

	return accountID, true, nil
}

func (r *SessionRepository) LogIn(ctx context.Context, identity string, accountID int64) error {
	return r.appendEvent(ctx, identity, accountID, true)
}

func (r *SessionRepository) LogOut(ctx context.Context, identity string, accountID int64) error {
	return r.appendEvent(ctx, identity, accountID, false)
}

func (r *SessionRepository) appendEvent(ctx context.Context, identity string, accountID int64, isIn bool) (err error) {
	defer observe(customerrors.OpAppendSessionEvent, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	_, err = querier.Exec(ctx,
		"INSERT INTO session_events (identity, account_id, is_in, created_at) VALUES ($1, $2, $3, $4)",
		identity, accountID, isIn, time.Now(),
	)
	if err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpAppendSessionEvent, Cause: err}
	}

	return nil
}
