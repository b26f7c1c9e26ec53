package service

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
)

// CachedSessionStore puts a read-through cache in front of the session event
// log. Cache failures are logged and never fail the request.
type CachedSessionStore struct {
	sessions SessionRepository
	cache    SessionCache
	logger   *slog.Logger
}

func NewCachedSessionStore(sessions SessionRepository, cache SessionCache, logger *slog.Logger) *CachedSessionStore {
	return &CachedSessionStore{
		sessions: sessions,
		cache:    cache,
		logger:   logger,
	}
}

func (s *CachedSessionStore) GetActiveAccount(ctx context.Context, identity string) (int64, bool, error) {
	accountID, found, err := s.cache.GetSession(ctx, identity)
	if err != nil {
		s.logger.Warn("Ошибка при чтении сессии из кэша",
			"error", err,
			"identity", identity,
		)
	}

	if err == nil && found {
		metrics.RecordSessionCacheLookup(true)
		return accountID, true, nil
	}

	metrics.RecordSessionCacheLookup(false)

	accountID, loggedIn, err := s.sessions.GetActiveAccount(ctx, identity)
	if err != nil {
		return 0, false, err
	}

	if loggedIn {
		if err := s.cache.SetSession(ctx, identity, accountID); err != nil {
			s.logger.Warn("Ошибка при сохранении сессии в кэш",
				"error", err,
				"identity", identity,
			)
		}
	}

	return accountID, loggedIn, nil
}

func (s *CachedSessionStore) LogIn(ctx context.Context, identity string, accountID int64) error {
	if err := s.sessions.LogIn(ctx, identity, accountID); err != nil {
		return err
	}

	s.invalidate(ctx, identity)

	return nil
}

func (s *CachedSessionStore) LogOut(ctx context.Context, identity string, accountID int64) error {
	if err := s.sessions.LogOut(ctx, identity, accountID); err != nil {
		return err
	}

	s.invalidate(ctx, identity)

	return nil
}

func (s *CachedSessionStore) invalidate(ctx context.Context, identity string) {
	if err := s.cache.DeleteSession(ctx, identity); err != nil {
		s.logger.Error("Ошибка при инвалидации сессии в кэше",
			"error", err,
			"identity", identity,
		)
	}
}
