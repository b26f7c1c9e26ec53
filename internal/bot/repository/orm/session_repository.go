package orm

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

type SessionRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewSessionRepository(db *database.PostgresDB) *SessionRepository {
	return &SessionRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SessionRepository) GetActiveAccount(ctx context.Context, identity string) (accountID int64, loggedIn bool, err error) {
	defer observe(customerrors.OpGetActiveSession, time.Now(), &err)

	querier := txs.GetQuerier(ctx, r.db.Pool)

	query, args, err := r.sq.Select("account_id", "is_in").
		From("session_events").
		Where(sq.Eq{"identity": identity}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, false, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpGetActiveSession, Cause: err}
	}

	var isIn bool

	err = querier.QueryRow(ctx, query, args...).Scan(&accountID, &isIn)
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

	query, args, err := r.sq.Insert("session_events").
		Columns("identity", "account_id", "is_in", "created_at").
		Values(identity, accountID, isIn, time.Now()).
		ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpAppendSessionEvent, Cause: err}
	}

	if _, err = querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpAppendSessionEvent, Cause: err}
	}

	return nil
}
