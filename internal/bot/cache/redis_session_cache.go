package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// RedisSessionCache keeps identity -> account id for logged-in chat users.
// Only positive lookups are cached, a missing key means "ask the database".
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisSessionCache(redisURL, password string, db int, ttl time.Duration, logger *slog.Logger) (*RedisSessionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка при подключении к Redis: %w", err)
	}

	logger.Info("Соединение с Redis успешно установлено")

	return &RedisSessionCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func sessionKey(identity string) string {
	return sessionKeyPrefix + identity
}

func (c *RedisSessionCache) GetSession(ctx context.Context, identity string) (int64, bool, error) {
	value, err := c.client.Get(ctx, sessionKey(identity)).Result()
	if err != nil {
		if err == redis.Nil {
			c.logger.Debug("Сессия не найдена в кэше",
				"identity", identity,
			)

			return 0, false, nil
		}

		return 0, false, fmt.Errorf("ошибка при получении сессии из Redis: %w", err)
	}

	accountID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.logger.Warn("Некорректное значение сессии в кэше",
			"identity", identity,
			"value", value,
		)

		return 0, false, nil
	}

	return accountID, true, nil
}

func (c *RedisSessionCache) SetSession(ctx context.Context, identity string, accountID int64) error {
	if err := c.client.Set(ctx, sessionKey(identity), strconv.FormatInt(accountID, 10), c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при сохранении сессии в Redis: %w", err)
	}

	c.logger.Debug("Сессия сохранена в кэш",
		"identity", identity,
		"accountID", accountID,
		"ttl", c.ttl,
	)

	return nil
}

func (c *RedisSessionCache) DeleteSession(ctx context.Context, identity string) error {
	if err := c.client.Del(ctx, sessionKey(identity)).Err(); err != nil {
		return fmt.Errorf("ошибка при удалении сессии из Redis: %w", err)
	}

	return nil
}

func (c *RedisSessionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisSessionCache) Close() error {
	return c.client.Close()
}
