package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

const (
	msgAlreadyLoggedIn = "You are already logged in!"
	msgUsernameTaken   = "This username already exists!"
	msgUserNotFound    = "This user doesn't exist! You can register this user using /signup command."
	msgNotLoggedIn     = "You are not logged in!"
	msgLogoutNoSession = "You are not logged in"
	msgPasswordTooLong = "Password is too long (max 72 bytes)"
)

type AccountService struct {
	accounts   AccountRepository
	sessions   SessionRepository
	txManager  TxManager
	currencies *CurrencyRegistry
	logger     *slog.Logger
}

func NewAccountService(
	accounts AccountRepository,
	sessions SessionRepository,
	txManager TxManager,
	currencies *CurrencyRegistry,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		accounts:   accounts,
		sessions:   sessions,
		txManager:  txManager,
		currencies: currencies,
		logger:     logger,
	}
}

func (s *AccountService) IsLoggedIn(ctx context.Context, identity string) (int64, bool, error) {
	return s.sessions.GetActiveAccount(ctx, identity)
}

// Register creates the account and logs the identity in. All checks and
// writes share one transaction.
func (s *AccountService) Register(ctx context.Context, identity, username, password, pairFrom, pairTo string) (int64, error) {
	var accountID int64

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, loggedIn, err := s.sessions.GetActiveAccount(ctx, identity); err != nil {
			return err
		} else if loggedIn {
			return &domainerrors.ErrAuth{Message: msgAlreadyLoggedIn}
		}

		_, err := s.accounts.GetByUsername(ctx, username)
		if err == nil {
			return &domainerrors.ErrValidation{Message: msgUsernameTaken}
		}

		if !errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			return err
		}

		codes, err := s.currencies.Validate(pairFrom, pairTo)
		if err != nil {
			return err
		}

		hash, err := hashPassword(password)
		if err != nil {
			return err
		}

		accountID, err = s.accounts.Create(ctx, &models.Account{
			Username:     username,
			PasswordHash: hash,
			Preference: models.Preference{
				PairFrom: codes[0],
				PairTo:   codes[1],
			},
		})
		if err != nil {
			if errors.Is(err, &domainerrors.ErrUsernameTaken{}) {
				return &domainerrors.ErrValidation{Message: msgUsernameTaken}
			}

			return err
		}

		return s.sessions.LogIn(ctx, identity, accountID)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Пользователь зарегистрирован",
		"identity", identity,
		"username", username,
		"accountID", accountID,
	)

	return accountID, nil
}

func (s *AccountService) Authenticate(ctx context.Context, identity, username, password string) (int64, error) {
	if _, loggedIn, err := s.sessions.GetActiveAccount(ctx, identity); err != nil {
		return 0, err
	} else if loggedIn {
		return 0, &domainerrors.ErrAuth{Message: msgAlreadyLoggedIn}
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, &domainerrors.ErrAccountNotFound{}) {
			return 0, &domainerrors.ErrAuth{Message: msgUserNotFound}
		}

		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("Неверный пароль",
			"identity", identity,
			"username", username,
		)

		return 0, &domainerrors.ErrAuth{Message: "Incorrect password for user " + username}
	}

	if err := s.sessions.LogIn(ctx, identity, account.ID); err != nil {
		return 0, err
	}

	return account.ID, nil
}

func (s *AccountService) Logout(ctx context.Context, identity string) error {
	accountID, loggedIn, err := s.sessions.GetActiveAccount(ctx, identity)
	if err != nil {
		return err
	}

	if !loggedIn {
		return &domainerrors.ErrAuth{Message: msgLogoutNoSession}
	}

	return s.sessions.LogOut(ctx, identity, accountID)
}

func (s *AccountService) GetPreference(ctx context.Context, accountID int64) (models.Preference, error) {
	return s.accounts.GetPreference(ctx, accountID)
}

// SetHomeCurrency replaces the "from" side of the default pair and returns
// the previous home currency.
func (s *AccountService) SetHomeCurrency(ctx context.Context, accountID int64, code string) (string, error) {
	codes, err := s.currencies.Validate(code)
	if err != nil {
		return "", err
	}

	var previous string

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		preference, err := s.accounts.GetPreference(ctx, accountID)
		if err != nil {
			return err
		}

		previous = preference.HomeCurrency()
		preference.PairFrom = codes[0]

		return s.accounts.UpdatePreference(ctx, accountID, preference)
	})
	if err != nil {
		return "", err
	}

	return previous, nil
}

func (s *AccountService) SetPair(ctx context.Context, accountID int64, from, to string) error {
	codes, err := s.currencies.Validate(from, to)
	if err != nil {
		return err
	}

	return s.accounts.UpdatePreference(ctx, accountID, models.Preference{
		PairFrom: codes[0],
		PairTo:   codes[1],
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &domainerrors.ErrValidation{Message: msgPasswordTooLong}
		}

		return "", fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	return string(hash), nil
}
