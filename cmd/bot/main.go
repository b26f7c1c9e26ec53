package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/central-university-dev/go-currency-bot/internal/bot/cache"
	"github.com/central-university-dev/go-currency-bot/internal/bot/clients"
	"github.com/central-university-dev/go-currency-bot/internal/bot/clients/kafka"
	"github.com/central-university-dev/go-currency-bot/internal/bot/command"
	"github.com/central-university-dev/go-currency-bot/internal/bot/domain"
	"github.com/central-university-dev/go-currency-bot/internal/bot/rates"
	"github.com/central-university-dev/go-currency-bot/internal/bot/repository"
	botservice "github.com/central-university-dev/go-currency-bot/internal/bot/service"
	"github.com/central-university-dev/go-currency-bot/internal/bot/telegram"
	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	"github.com/central-university-dev/go-currency-bot/internal/config"
	"github.com/central-university-dev/go-currency-bot/internal/database"
	customerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/pkg"
	"github.com/central-university-dev/go-currency-bot/pkg/txs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

//nolint:funlen,gocyclo // Длина функции обусловлена необходимостью последовательной инициализации всех компонентов.
func run() error {
	cfg := config.LoadConfig()

	appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MigrationsPath != "" {
		if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
			return fmt.Errorf("ошибка применения миграций: %w", err)
		}
	}

	db, err := database.NewPostgresDB(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при подключении к базе данных",
			"error", err,
		)

		return fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	defer db.Close()

	txManager := txs.NewTxManager(db.Pool, appLogger)

	repos, err := repository.NewFactory(db, cfg, appLogger).CreateRepositories()
	if err != nil {
		return fmt.Errorf("ошибка создания репозиториев: %w", err)
	}

	currencies, err := botservice.LoadCurrencyRegistry(ctx, repos.Currencies)
	if err != nil {
		return err
	}

	appLogger.Info("Справочник валют загружен",
		"count", len(currencies.Codes()),
	)

	snapshot, err := rates.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("ошибка загрузки снимка курсов: %w", err)
	}

	rateStore := rates.NewStore(snapshot)

	if cfg.CurrencyRatesAPIURL != "" {
		refresher := rates.NewRefresher(
			clients.NewRatesClient(cfg, appLogger),
			rateStore,
			cfg.RatesRefreshInterval,
			cfg.ExternalRequestTimeout,
			appLogger,
		)

		if err := refresher.Start(); err != nil {
			return fmt.Errorf("ошибка запуска обновления курсов: %w", err)
		}

		defer refresher.Stop()
	} else {
		appLogger.Info("Адрес API курсов не задан, используется встроенный снимок",
			"updated", snapshot.Updated,
		)
	}

	healthChecks := map[string]metrics.HealthCheck{
		"postgres": db.Ping,
	}

	var sessions botservice.SessionRepository = repos.Sessions

	var redisCache *cache.RedisSessionCache

	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedisSessionCache(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, cfg.SessionCacheTTL, appLogger)
		if err != nil {
			appLogger.Error("Ошибка при подключении к Redis, кэш сессий отключен",
				"error", err,
			)
		} else {
			sessions = botservice.NewCachedSessionStore(repos.Sessions, redisCache, appLogger)
			healthChecks["redis"] = redisCache.Ping
		}
	}

	var publisher botservice.ConversionPublisher

	var kafkaPublisher *kafka.ConversionPublisher

	if cfg.ConversionEventsEnabled {
		kafkaPublisher = kafka.NewConversionPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.TopicConversionEvents, appLogger)
		publisher = kafkaPublisher

		appLogger.Info("Публикация событий конвертации включена",
			"topic", cfg.TopicConversionEvents,
		)
	}

	accountService := botservice.NewAccountService(repos.Accounts, sessions, txManager, currencies, appLogger)
	rateService := botservice.NewRateService(accountService, currencies, rateStore, repos.Conversions, publisher, appLogger)
	historyService := botservice.NewHistoryService(repos.Conversions, cfg.Location(), appLogger)

	botService := botservice.NewBotService(command.NewResolver(), accountService, rateService, historyService, appLogger)

	telegramClient, err := clients.NewTelegramClient(cfg.TelegramBotToken, appLogger)
	if err != nil {
		return err
	}

	setupTelegramCommands(ctx, telegramClient, botService.Commands(), appLogger)

	processor := telegram.NewUpdateProcessor(telegramClient, botService, cfg.RequestTimeout, appLogger)

	metricsServer := metrics.NewMetricsServer(cfg.BotMetricsPort, appLogger, healthChecks)

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Ошибка сервера метрик", "error", err)
		}
	}()

	var (
		poller        *telegram.Poller
		webhookServer *telegram.WebhookServer
	)

	switch cfg.TelegramUpdateMode {
	case config.WebhookMode:
		webhookURL := strings.TrimRight(cfg.WebhookBaseURL, "/") + telegram.CallbackPath(cfg.TelegramBotToken)
		if err := telegramClient.SetWebhook(ctx, webhookURL); err != nil {
			return err
		}

		handler := telegram.NewWebhookHandler(telegramClient.GetBot(), cfg.TelegramBotToken, processor, appLogger)
		webhookServer = telegram.NewWebhookServer(ctx, cfg.BotServerPort, handler, cfg.RateLimitRequests, cfg.RateLimitWindow, appLogger)

		go func() {
			if err := webhookServer.Start(); err != nil {
				appLogger.Error("Ошибка HTTP сервера бота", "error", err)
				stop()
			}
		}()
	case config.PollingMode:
		if err := telegramClient.DeleteWebhook(ctx); err != nil {
			appLogger.Warn("Не удалось удалить webhook перед запуском поллера", "error", err)
		}

		poller = telegram.NewPoller(telegramClient, processor, appLogger)
		poller.Start(ctx)
	default:
		return &customerrors.ErrUnknownUpdateMode{Mode: string(cfg.TelegramUpdateMode)}
	}

	appLogger.Info("Бот запущен",
		"mode", cfg.TelegramUpdateMode,
	)

	<-ctx.Done()
	appLogger.Info("Получен сигнал завершения")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return shutdown(shutdownCtx, poller, webhookServer, kafkaPublisher, redisCache, appLogger)
}

func shutdown(
	ctx context.Context,
	poller *telegram.Poller,
	webhookServer *telegram.WebhookServer,
	kafkaPublisher *kafka.ConversionPublisher,
	redisCache *cache.RedisSessionCache,
	appLogger *slog.Logger,
) error {
	var err error

	if poller != nil {
		err = multierr.Append(err, poller.Close())
	}

	if webhookServer != nil {
		err = multierr.Append(err, webhookServer.Stop(ctx))
	}

	if kafkaPublisher != nil {
		err = multierr.Append(err, kafkaPublisher.Close())
	}

	if redisCache != nil {
		err = multierr.Append(err, redisCache.Close())
	}

	if err != nil {
		for _, e := range multierr.Errors(err) {
			appLogger.Error("Ошибка при остановке компонента", "error", e)
		}

		return errors.New("сервис остановлен с ошибками")
	}

	appLogger.Info("Сервис успешно остановлен")

	return nil
}

func setupTelegramCommands(ctx context.Context, telegramClient domain.TelegramClientAPI, specs []command.Spec, appLogger *slog.Logger) {
	botCommands := make([]domain.BotCommand, 0, len(specs))
	for _, spec := range specs {
		botCommands = append(botCommands, domain.BotCommand{
			Command:     strings.TrimPrefix(string(spec.Command), "/"),
			Description: spec.Info,
		})
	}

	if err := telegramClient.SetMyCommands(ctx, botCommands); err != nil {
		appLogger.Error("Ошибка при регистрации команд бота",
			"error", err,
		)

		return
	}

	appLogger.Info("Команды бота успешно зарегистрированы",
		"count", len(botCommands),
	)
}
