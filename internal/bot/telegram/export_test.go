package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (p *Poller) Consume(ctx context.Context, updates <-chan tgbotapi.Update) {
	p.consume(ctx, updates)
}
