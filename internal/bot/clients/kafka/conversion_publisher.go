package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

// ConversionEvent is the message value written for every logged conversion.
type ConversionEvent struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"accountId"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"createdAt"`
}

type ConversionPublisher struct {
	producer *kafka.Writer
	topic    string
	logger   *slog.Logger
}

func NewConversionPublisher(brokers []string, topic string, logger *slog.Logger) *ConversionPublisher {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(logger.Debug),
		ErrorLogger:            kafka.LoggerFunc(logger.Error),
	}

	return &ConversionPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func (p *ConversionPublisher) PublishConversion(ctx context.Context, entry *models.ConversionLogEntry) error {
	value, err := json.Marshal(ConversionEvent{
		ID:        entry.ID,
		AccountID: entry.AccountID,
		From:      entry.From,
		To:        entry.To,
		Amount:    entry.Amount,
		Rate:      entry.Rate,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("ошибка при сериализации события конвертации: %w", err)
	}

	// Ключ по аккаунту сохраняет порядок событий одного пользователя.
	err = p.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(entry.AccountID, 10)),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("ошибка при отправке события в Kafka: %w", err)
	}

	p.logger.Debug("Событие конвертации отправлено в Kafka",
		"topic", p.topic,
		"accountID", entry.AccountID,
		"from", entry.From,
		"to", entry.To,
	)

	return nil
}

func (p *ConversionPublisher) Close() error {
	return p.producer.Close()
}
