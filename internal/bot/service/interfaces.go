package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type TxManager interface {
	WithTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error
}

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) (int64, error)

	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	GetPreference(ctx context.Context, accountID int64) (models.Preference, error)

	UpdatePreference(ctx context.Context, accountID int64, preference models.Preference) error
}

// SessionRepository stores login and logout events per chat identity. The
// newest event decides whether the identity is logged in.
type SessionRepository interface {
	GetActiveAccount(ctx context.Context, identity string) (int64, bool, error)

	LogIn(ctx context.Context, identity string, accountID int64) error

	LogOut(ctx context.Context, identity string, accountID int64) error
}

type SessionCache interface {
	GetSession(ctx context.Context, identity string) (int64, bool, error)

	SetSession(ctx context.Context, identity string, accountID int64) error

	DeleteSession(ctx context.Context, identity string) error
}

type CurrencyRepository interface {
	ListCodes(ctx context.Context) ([]string, error)
}

type ConversionRepository interface {
	Save(ctx context.Context, entry *models.ConversionLogEntry) error

	Find(ctx context.Context, query models.HistoryQuery) ([]*models.ConversionLogEntry, error)
}

type RateProvider interface {
	Rate(from, to string) (decimal.Decimal, error)
}

type ConversionPublisher interface {
	PublishConversion(ctx context.Context, entry *models.ConversionLogEntry) error
}

type PreferenceReader interface {
	GetPreference(ctx context.Context, accountID int64) (models.Preference, error)
}

type AccountManager interface {
	IsLoggedIn(ctx context.Context, identity string) (int64, bool, error)

	Register(ctx context.Context, identity, username, password, pairFrom, pairTo string) (int64, error)

	Authenticate(ctx context.Context, identity, username, password string) (int64, error)

	Logout(ctx context.Context, identity string) error

	GetPreference(ctx context.Context, accountID int64) (models.Preference, error)

	SetHomeCurrency(ctx context.Context, accountID int64, code string) (string, error)

	SetPair(ctx context.Context, accountID int64, from, to string) error
}

type Quoter interface {
	Quote(ctx context.Context, accountID int64, request models.QuoteRequest) (*models.Quote, error)
}

type HistoryReader interface {
	History(ctx context.Context, accountID int64, request models.HistoryRequest) (*models.HistoryReport, error)
}
