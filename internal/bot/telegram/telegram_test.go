package telegram_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-currency-bot/internal/bot/domain"
	"github.com/central-university-dev/go-currency-bot/internal/bot/telegram"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type telegramClientMock struct {
	mock.Mock
}

func (m *telegramClientMock) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *telegramClientMock) SetMyCommands(ctx context.Context, commands []domain.BotCommand) error {
	args := m.Called(ctx, commands)
	return args.Error(0)
}

func (m *telegramClientMock) SetWebhook(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *telegramClientMock) DeleteWebhook(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *telegramClientMock) GetBot() *tgbotapi.BotAPI {
	return nil
}

type botServiceMock struct {
	mock.Mock
}

func (m *botServiceMock) ProcessMessage(ctx context.Context, message *models.Message) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

type recordingHandler struct {
	mu      sync.Mutex
	updates []*tgbotapi.Update
}

func (h *recordingHandler) Process(_ context.Context, update *tgbotapi.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.updates = append(h.updates, update)
}

func (h *recordingHandler) texts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	texts := make([]string, 0, len(h.updates))
	for _, update := range h.updates {
		texts = append(texts, update.Message.Text)
	}

	return texts
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textUpdate(text string) *tgbotapi.Update {
	return &tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      &tgbotapi.User{ID: 100500, FirstName: "Alice", UserName: "alice"},
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      text,
		},
	}
}

func TestUpdateProcessor_Process(t *testing.T) {
	tests := []struct {
		name      string
		update    *tgbotapi.Update
		reply     string
		replyErr  error
		wantSent  string
		wantCalls bool
	}{
		{
			name:      "reply is sent to the chat",
			update:    textUpdate("/start"),
			reply:     "Hi Alice, I'm a currency converter bot!\nUse /help, to see what I can do!",
			wantSent:  "Hi Alice, I'm a currency converter bot!\nUse /help, to see what I can do!",
			wantCalls: true,
		},
		{
			name:      "internal error becomes generic reply",
			update:    textUpdate("/rate"),
			replyErr:  errors.New("db down"),
			wantSent:  "ERROR",
			wantCalls: true,
		},
		{
			name:   "update without message is ignored",
			update: &tgbotapi.Update{UpdateID: 2},
		},
		{
			name: "message without text is ignored",
			update: &tgbotapi.Update{
				Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}, From: &tgbotapi.User{ID: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			client := &telegramClientMock{}
			service := &botServiceMock{}

			if tt.wantCalls {
				service.On("ProcessMessage", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
					return m.Identity == "100500" && m.ChatID == 42 && m.FirstName == "Alice" && m.Text == tt.update.Message.Text
				})).Return(tt.reply, tt.replyErr)
				client.On("SendMessage", mock.Anything, int64(42), tt.wantSent).Return(nil)
			}

			processor := telegram.NewUpdateProcessor(client, service, time.Second, discardLogger())

			// Act
			processor.Process(context.Background(), tt.update)

			// Assert
			service.AssertExpectations(t)
			client.AssertExpectations(t)

			if !tt.wantCalls {
				client.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUpdateProcessor_ChannelPostUsesChatIdentity(t *testing.T) {
	// Arrange
	client := &telegramClientMock{}
	service := &botServiceMock{}

	update := &tgbotapi.Update{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -1001}, Text: "/help"},
	}

	service.On("ProcessMessage", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.Identity == "-1001"
	})).Return("help", nil)
	client.On("SendMessage", mock.Anything, int64(-1001), "help").Return(nil)

	processor := telegram.NewUpdateProcessor(client, service, time.Second, discardLogger())

	// Act
	processor.Process(context.Background(), update)

	// Assert
	service.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestWebhookHandler(t *testing.T) {
	const token = "123:secret"

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
		wantTexts  []string
	}{
		{
			name:       "callback delivers update",
			method:     http.MethodPost,
			path:       "/123:secret/callback/",
			body:       `{"update_id":1,"message":{"message_id":5,"from":{"id":100500,"first_name":"Alice"},"chat":{"id":42},"text":"/rate usd eur"}}`,
			wantStatus: http.StatusOK,
			wantTexts:  []string{"/rate usd eur"},
		},
		{
			name:       "broken json",
			method:     http.MethodPost,
			path:       "/123:secret/callback/",
			body:       `{"update_id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong token",
			method:     http.MethodPost,
			path:       "/999:other/callback/",
			body:       `{"update_id":1}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "liveness",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   "Server is running",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			recorder := &recordingHandler{}
			handler := telegram.NewWebhookHandler(&tgbotapi.BotAPI{}, token, recorder, discardLogger())

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			// Act
			handler.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}

			if tt.wantTexts == nil {
				assert.Empty(t, recorder.texts())
			} else {
				assert.Equal(t, tt.wantTexts, recorder.texts())
			}
		})
	}
}

func TestCallbackPath(t *testing.T) {
	assert.Equal(t, "/123:abc/callback/", telegram.CallbackPath("123:abc"))
}

func TestPoller_ConsumesInOrder(t *testing.T) {
	// Arrange
	recorder := &recordingHandler{}
	poller := telegram.NewPoller(&telegramClientMock{}, recorder, discardLogger())

	updates := make(chan tgbotapi.Update, 3)
	updates <- *textUpdate("/start")
	updates <- *textUpdate("/help")
	updates <- *textUpdate("/rate")
	close(updates)

	// Act
	poller.Consume(context.Background(), updates)

	// Assert
	require.Equal(t, []string{"/start", "/help", "/rate"}, recorder.texts())
}

func TestPoller_StopsOnContextCancel(t *testing.T) {
	// Arrange
	recorder := &recordingHandler{}
	poller := telegram.NewPoller(&telegramClientMock{}, recorder, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	// Act
	go func() {
		poller.Consume(ctx, make(chan tgbotapi.Update))
		close(done)
	}()

	cancel()

	// Assert
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("поллер не остановился после отмены контекста")
	}

	assert.Empty(t, recorder.texts())
}
