package clients

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-currency-bot/internal/bot/domain"
)

type TelegramClient struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewTelegramClient(token string, logger *slog.Logger) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании Telegram клиента: %w", err)
	}

	logger.Info("Авторизация в Telegram выполнена",
		"bot", bot.Self.UserName,
	)

	return &TelegramClient{
		bot:    bot,
		logger: logger,
	}, nil
}

// NewTelegramClientWithBot wraps an already configured BotAPI, e.g. one
// pointed at a test endpoint.
func NewTelegramClientWithBot(bot *tgbotapi.BotAPI, logger *slog.Logger) *TelegramClient {
	return &TelegramClient{
		bot:    bot,
		logger: logger,
	}
}

// Replies are sent as plain text: command usages contain '<' and '>'.
func (c *TelegramClient) SendMessage(_ context.Context, chatID int64, text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("ошибка при отправке сообщения: %w", err)
	}

	return nil
}

func (c *TelegramClient) SetMyCommands(_ context.Context, commands []domain.BotCommand) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	botAPICommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		botAPICommands = append(botAPICommands, tgbotapi.BotCommand{
			Command:     cmd.Command,
			Description: cmd.Description,
		})
	}

	if _, err := c.bot.Request(tgbotapi.NewSetMyCommands(botAPICommands...)); err != nil {
		return fmt.Errorf("ошибка при установке команд бота: %w", err)
	}

	return nil
}

func (c *TelegramClient) SetWebhook(_ context.Context, url string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("некорректный адрес вебхука: %w", err)
	}

	if _, err := c.bot.Request(webhook); err != nil {
		return fmt.Errorf("ошибка при установке вебхука: %w", err)
	}

	return nil
}

func (c *TelegramClient) DeleteWebhook(_ context.Context) error {
	if c.bot == nil {
		return fmt.Errorf("telegram клиент не инициализирован")
	}

	if _, err := c.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("ошибка при удалении вебхука: %w", err)
	}

	return nil
}

func (c *TelegramClient) GetBot() *tgbotapi.BotAPI {
	return c.bot
}
