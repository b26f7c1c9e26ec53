package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-currency-bot/internal/bot/command"
	"github.com/central-university-dev/go-currency-bot/internal/bot/service"
	"github.com/central-university-dev/go-currency-bot/internal/bot/service/mocks"
	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

type botFixture struct {
	accounts *mocks.AccountManager
	quoter   *mocks.Quoter
	history  *mocks.HistoryReader
	service  *service.BotService
}

func newBotFixture() *botFixture {
	f := &botFixture{
		accounts: &mocks.AccountManager{},
		quoter:   &mocks.Quoter{},
		history:  &mocks.HistoryReader{},
	}

	f.service = service.NewBotService(command.NewResolver(), f.accounts, f.quoter, f.history, discardLogger())

	return f
}

func (f *botFixture) loggedIn(accountID int64) {
	f.accounts.On("IsLoggedIn", mock.Anything, testIdentity).Return(accountID, true, nil)
}

func message(text string) *models.Message {
	return &models.Message{
		Identity:  testIdentity,
		ChatID:    42,
		FirstName: "Alice",
		Text:      text,
	}
}

func TestBotService_ProcessMessage_WithoutLogin(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		setup func(f *botFixture)
		want  string
	}{
		{
			name: "start",
			text: "/start",
			want: "Hi Alice, I'm a currency converter bot!\nUse /help, to see what I can do!",
		},
		{
			name: "help for command",
			text: "/help /login",
			want: "Usage: /login <username> <password>",
		},
		{
			name: "plain text",
			text: "hello there",
			want: "Unknown command!",
		},
		{
			name: "unknown command",
			text: "/convert 10",
			want: "Unknown command!",
		},
		{
			name: "wrong arity",
			text: "/login alice",
			want: "Usage: /login <username> <password>",
		},
		{
			name: "signup",
			text: "/signup alice secret usd eur",
			setup: func(f *botFixture) {
				f.accounts.On("Register", mock.Anything, testIdentity, "alice", "secret", "usd", "eur").
					Return(int64(1), nil)
			},
			want: "Sign up successful!",
		},
		{
			name: "login with wrong password",
			text: "/login alice nope",
			setup: func(f *botFixture) {
				f.accounts.On("Authenticate", mock.Anything, testIdentity, "alice", "nope").
					Return(int64(0), &domainerrors.ErrAuth{Message: "Wrong password!"})
			},
			want: "Wrong password!",
		},
		{
			name: "logout",
			text: "/logout",
			setup: func(f *botFixture) {
				f.accounts.On("Logout", mock.Anything, testIdentity).Return(nil)
			},
			want: "Log out successful!",
		},
		{
			name: "home requires login",
			text: "/home",
			setup: func(f *botFixture) {
				f.accounts.On("IsLoggedIn", mock.Anything, testIdentity).Return(int64(0), false, nil)
			},
			want: "You are not logged in!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newBotFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			// Act
			reply, err := f.service.ProcessMessage(context.Background(), message(tt.text))

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
			f.accounts.AssertExpectations(t)
			f.quoter.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBotService_ProcessMessage_Preferences(t *testing.T) {
	preference := models.Preference{PairFrom: "USD", PairTo: "EUR"}

	tests := []struct {
		name  string
		text  string
		setup func(f *botFixture)
		want  string
	}{
		{
			name: "home",
			text: "/home",
			setup: func(f *botFixture) {
				f.accounts.On("GetPreference", mock.Anything, int64(5)).Return(preference, nil)
			},
			want: "Your home currency is USD",
		},
		{
			name: "pair",
			text: "/pair",
			setup: func(f *botFixture) {
				f.accounts.On("GetPreference", mock.Anything, int64(5)).Return(preference, nil)
			},
			want: "Your currency pair is USD-EUR",
		},
		{
			name: "change home",
			text: "/chhome rub",
			setup: func(f *botFixture) {
				f.accounts.On("SetHomeCurrency", mock.Anything, int64(5), "rub").Return("USD", nil)
			},
			want: "Your home currency has been successfully changed: USD -> RUB",
		},
		{
			name: "change home to unknown currency",
			text: "/chhome xyz",
			setup: func(f *botFixture) {
				f.accounts.On("SetHomeCurrency", mock.Anything, int64(5), "xyz").
					Return("", &domainerrors.ErrValidation{Message: "Currency 'XYZ' does not exist!"})
			},
			want: "Currency 'XYZ' does not exist!",
		},
		{
			name: "change pair",
			text: "/chpair gbp rub",
			setup: func(f *botFixture) {
				f.accounts.On("SetPair", mock.Anything, int64(5), "gbp", "rub").Return(nil)
			},
			want: "Your default pair has been successfully changed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newBotFixture()
			f.loggedIn(5)
			tt.setup(f)

			// Act
			reply, err := f.service.ProcessMessage(context.Background(), message(tt.text))

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
			f.accounts.AssertExpectations(t)
		})
	}
}

func TestBotService_ProcessMessage_Rate(t *testing.T) {
	quote := &models.Quote{
		From:   "USD",
		To:     "EUR",
		Amount: decimal.RequireFromString("100"),
		Rate:   decimal.RequireFromString("0.92"),
		Result: decimal.RequireFromString("92"),
	}

	tests := []struct {
		name    string
		text    string
		request models.QuoteRequest
		want    string
	}{
		{
			name:    "pair and amount",
			text:    "/rate usd eur 100",
			request: models.QuoteRequest{From: "usd", To: "eur", Amount: "100"},
			want:    "100 USD = 92.00 EUR",
		},
		{
			name:    "amount only",
			text:    "/rate 100",
			request: models.QuoteRequest{Amount: "100"},
			want:    "100 USD = 92.00 EUR",
		},
		{
			name:    "defaults",
			text:    "/rate",
			request: models.QuoteRequest{},
			want:    "1.00 USD = 92.00 EUR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newBotFixture()
			f.loggedIn(5)
			f.quoter.On("Quote", mock.Anything, int64(5), tt.request).Return(quote, nil)

			// Act
			reply, err := f.service.ProcessMessage(context.Background(), message(tt.text))

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
			f.quoter.AssertExpectations(t)
		})
	}
}

func TestBotService_ProcessMessage_History(t *testing.T) {
	// Arrange
	f := newBotFixture()
	f.loggedIn(5)

	request := models.HistoryRequest{DateFrom: "01.05.2024", DateTo: "22.05.2024", CurFrom: "usd"}
	f.history.On("History", mock.Anything, int64(5), request).
		Return(&models.HistoryReport{Invalid: true}, nil)

	// Act
	reply, err := f.service.ProcessMessage(context.Background(), message("/history 01.05.2024 22.05.2024 usd"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "The period is invalid the start date cannot be after the end date!", reply)
	f.history.AssertExpectations(t)
}

func TestBotService_ProcessMessage_InternalError(t *testing.T) {
	// Arrange
	f := newBotFixture()
	dbErr := &domainerrors.ErrSQLExecution{Operation: "get_active_session", Cause: errors.New("connection refused")}
	f.accounts.On("IsLoggedIn", mock.Anything, testIdentity).Return(int64(0), false, dbErr)

	// Act
	reply, err := f.service.ProcessMessage(context.Background(), message("/pair"))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, reply)
}

func TestBotService_Commands(t *testing.T) {
	// Arrange
	f := newBotFixture()

	// Act
	commands := f.service.Commands()

	// Assert
	require.Len(t, commands, 11)
	assert.Equal(t, models.CommandStart, commands[0].Command)
	assert.Equal(t, models.CommandHistory, commands[10].Command)
}
