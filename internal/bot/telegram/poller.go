package telegram

import (
	"context"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-currency-bot/internal/bot/domain"
)

type Poller struct {
	telegramClient domain.TelegramClientAPI
	processor      UpdateHandler
	logger         *slog.Logger
	stopChan       chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
}

func NewPoller(telegramClient domain.TelegramClientAPI, processor UpdateHandler, logger *slog.Logger) *Poller {
	return &Poller{
		telegramClient: telegramClient,
		processor:      processor,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start begins long polling. Updates are handled one at a time in arrival
// order.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Запуск Telegram поллера")

	bot := p.telegramClient.GetBot()
	if bot == nil {
		p.logger.Error("Не удалось получить доступ к API бота")
		return
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		defer bot.StopReceivingUpdates()

		p.consume(ctx, updates)
	}()
}

func (p *Poller) consume(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-p.stopChan:
			p.logger.Info("Получен сигнал остановки поллера")
			return
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			p.processor.Process(ctx, &update)
		}
	}
}

func (p *Poller) Close() error {
	p.stopOnce.Do(func() {
		p.logger.Info("Остановка Telegram поллера")
		close(p.stopChan)
	})

	p.wg.Wait()

	return nil
}
