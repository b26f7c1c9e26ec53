package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/central-university-dev/go-currency-bot/internal/bot/domain"
	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

const internalErrorReply = "ERROR"

type BotService interface {
	ProcessMessage(ctx context.Context, message *models.Message) (string, error)
}

type UpdateHandler interface {
	Process(ctx context.Context, update *tgbotapi.Update)
}

// UpdateProcessor answers one Telegram update. Both the poller and the
// webhook server feed updates through it.
type UpdateProcessor struct {
	telegramClient domain.TelegramClientAPI
	botService     BotService
	timeout        time.Duration
	logger         *slog.Logger
}

func NewUpdateProcessor(
	telegramClient domain.TelegramClientAPI,
	botService BotService,
	timeout time.Duration,
	logger *slog.Logger,
) *UpdateProcessor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &UpdateProcessor{
		telegramClient: telegramClient,
		botService:     botService,
		timeout:        timeout,
		logger:         logger,
	}
}

func (p *UpdateProcessor) Process(ctx context.Context, update *tgbotapi.Update) {
	message := toMessage(update)
	if message == nil {
		return
	}

	p.logger.Info("Получено сообщение",
		"chat_id", message.ChatID,
		"identity", message.Identity,
		"username", message.Username,
	)

	messageType := "message"
	if update.Message.IsCommand() {
		messageType = "command"
	}

	metrics.RecordUserMessage(messageType)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	response, err := p.botService.ProcessMessage(ctx, message)
	if err != nil {
		p.logger.Error("Ошибка при обработке сообщения",
			"error", err,
			"chat_id", message.ChatID,
			"text", message.Text,
		)

		response = internalErrorReply
	}

	if response == "" {
		return
	}

	if err := p.telegramClient.SendMessage(ctx, message.ChatID, response); err != nil {
		p.logger.Error("Ошибка при отправке ответа",
			"error", err,
			"chat_id", message.ChatID,
		)
	}
}

// toMessage keeps text messages only. The session identity is the sender's
// user id, falling back to the chat id for channel posts.
func toMessage(update *tgbotapi.Update) *models.Message {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return nil
	}

	tgMessage := update.Message

	message := &models.Message{
		ChatID: tgMessage.Chat.ID,
		Text:   tgMessage.Text,
	}

	if tgMessage.From != nil {
		message.Identity = strconv.FormatInt(tgMessage.From.ID, 10)
		message.FirstName = tgMessage.From.FirstName
		message.Username = tgMessage.From.UserName
	} else {
		message.Identity = strconv.FormatInt(tgMessage.Chat.ID, 10)
	}

	return message
}
