package repository

import (
	"log/slog"

	"github.com/central-university-dev/go-currency-bot/internal/bot/repository/orm"
	sqlrepo "github.com/central-university-dev/go-currency-bot/internal/bot/repository/sql"
	"github.com/central-university-dev/go-currency-bot/internal/bot/service"
	"github.com/central-university-dev/go-currency-bot/internal/config"
	"github.com/central-university-dev/go-currency-bot/internal/database"
	"github.com/central-university-dev/go-currency-bot/internal/domain/errors"
)

// Repositories groups the storage ports of the bot for one access type.
type Repositories struct {
	Accounts    service.AccountRepository
	Sessions    service.SessionRepository
	Currencies  service.CurrencyRepository
	Conversions service.ConversionRepository
}

type Factory struct {
	db     *database.PostgresDB
	config *config.Config
	logger *slog.Logger
}

func NewFactory(db *database.PostgresDB, config *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		db:     db,
		config: config,
		logger: logger,
	}
}

func (f *Factory) CreateRepositories() (*Repositories, error) {
	switch f.config.DatabaseAccessType {
	case config.SquirrelAccess:
		f.logger.Info("Создание ORM (Squirrel) репозиториев")

		return &Repositories{
			Accounts:    orm.NewAccountRepository(f.db),
			Sessions:    orm.NewSessionRepository(f.db),
			Currencies:  orm.NewCurrencyRepository(f.db),
			Conversions: orm.NewConversionRepository(f.db),
		}, nil
	case config.SQLAccess:
		f.logger.Info("Создание SQL репозиториев")

		return &Repositories{
			Accounts:    sqlrepo.NewAccountRepository(f.db),
			Sessions:    sqlrepo.NewSessionRepository(f.db),
			Currencies:  sqlrepo.NewCurrencyRepository(f.db),
			Conversions: sqlrepo.NewConversionRepository(f.db),
		}, nil
	default:
		return nil, &errors.ErrUnknownDBAccessType{AccessType: string(f.config.DatabaseAccessType)}
	}
}
