package domain

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type BotCommand struct {
	Command     string
	Description string
}

type TelegramClientAPI interface {
	SendMessage(ctx context.Context, chatID int64, text string) error

	SetMyCommands(ctx context.Context, commands []BotCommand) error

	SetWebhook(ctx context.Context, url string) error

	DeleteWebhook(ctx context.Context) error

	GetBot() *tgbotapi.BotAPI
}
