package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-currency-bot/internal/common/middleware"
)

const serverRunningReply = "Server is running"

// CallbackPath is the path Telegram posts updates to in webhook mode.
func CallbackPath(token string) string {
	return "/" + token + "/callback/"
}

// NewWebhookHandler routes Telegram callbacks to handler and answers GET /
// as a liveness probe.
func NewWebhookHandler(bot *tgbotapi.BotAPI, token string, handler UpdateHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+CallbackPath(token), func(w http.ResponseWriter, r *http.Request) {
		update, err := bot.HandleUpdate(r)
		if err != nil {
			logger.Warn("Не удалось разобрать обновление Telegram",
				"error", err,
			)

			http.Error(w, "bad update", http.StatusBadRequest)

			return
		}

		handler.Process(r.Context(), update)

		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(serverRunningReply))
	})

	return mux
}

type WebhookServer struct {
	server *http.Server
	logger *slog.Logger
	port   int
}

func NewWebhookServer(
	ctx context.Context,
	port int,
	handler http.Handler,
	rateLimitRequests int,
	rateLimitWindow time.Duration,
	logger *slog.Logger,
) *WebhookServer {
	rateLimiter := middleware.NewRateLimiterMiddleware(ctx, rateLimitRequests, rateLimitWindow, logger)
	metricsMiddleware := middleware.NewMetricsMiddleware("bot")

	return &WebhookServer{
		server: &http.Server{
			Addr:              ":" + strconv.Itoa(port),
			Handler:           metricsMiddleware.Middleware(rateLimiter.Middleware(handler)),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
		logger: logger,
		port:   port,
	}
}

func (s *WebhookServer) Start() error {
	s.logger.Info("Запуск HTTP сервера бота",
		"port", s.port,
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка запуска HTTP сервера бота: %w", err)
	}

	return nil
}

func (s *WebhookServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
