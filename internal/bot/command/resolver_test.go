package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-currency-bot/internal/bot/command"
	"github.com/central-university-dev/go-currency-bot/internal/common"
	"github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

func TestResolver_ResolveText(t *testing.T) {
	resolver := command.NewResolver()

	tests := []struct {
		name     string
		text     string
		expected models.Action
	}{
		{
			name:     "start",
			text:     "/start",
			expected: models.Action{Type: models.ActionGreet, Command: models.CommandStart},
		},
		{
			name:     "keyword is case insensitive",
			text:     "/START",
			expected: models.Action{Type: models.ActionGreet, Command: models.CommandStart},
		},
		{
			name:     "bot mention is dropped",
			text:     "/help@currency_bot",
			expected: models.Action{Type: models.ActionHelpAll, Command: models.CommandHelp},
		},
		{
			name:     "help with topic",
			text:     "/help rate",
			expected: models.Action{Type: models.ActionHelpCommand, Command: models.CommandHelp, Topic: "rate"},
		},
		{
			name: "signup",
			text: "/signup alice secret USD EUR",
			expected: models.Action{
				Type: models.ActionRegister, Command: models.CommandSignup,
				Username: "alice", Password: "secret", From: "USD", To: "EUR",
			},
		},
		{
			name: "signup accepts any argument shape",
			text: "/signup 123 4 dollars x",
			expected: models.Action{
				Type: models.ActionRegister, Command: models.CommandSignup,
				Username: "123", Password: "4", From: "dollars", To: "x",
			},
		},
		{
			name:     "login",
			text:     "/login alice secret",
			expected: models.Action{Type: models.ActionLogin, Command: models.CommandLogin, Username: "alice", Password: "secret"},
		},
		{
			name:     "extra whitespace",
			text:     "  /login   alice \t secret ",
			expected: models.Action{Type: models.ActionLogin, Command: models.CommandLogin, Username: "alice", Password: "secret"},
		},
		{
			name:     "chhome",
			text:     "/chhome rub",
			expected: models.Action{Type: models.ActionChangeHome, Command: models.CommandChHome, From: "rub"},
		},
		{
			name:     "chpair",
			text:     "/chpair USD RUB",
			expected: models.Action{Type: models.ActionChangePair, Command: models.CommandChPair, From: "USD", To: "RUB"},
		},
		{
			name: "rate with pair and amount",
			text: "/rate USD EUR 10",
			expected: models.Action{
				Type: models.ActionQuotePairAmount, Command: models.CommandRate,
				From: "USD", To: "EUR", Amount: "10",
			},
		},
		{
			name:     "rate with target and amount",
			text:     "/rate EUR 10.5",
			expected: models.Action{Type: models.ActionQuoteToAmount, Command: models.CommandRate, To: "EUR", Amount: "10.5"},
		},
		{
			name:     "rate with pair",
			text:     "/rate USD EUR",
			expected: models.Action{Type: models.ActionQuotePair, Command: models.CommandRate, From: "USD", To: "EUR"},
		},
		{
			name:     "rate with target and three digit amount prefers numeric",
			text:     "/rate EUR 100",
			expected: models.Action{Type: models.ActionQuoteToAmount, Command: models.CommandRate, To: "EUR", Amount: "100"},
		},
		{
			name:     "rate with amount only",
			text:     "/rate 10",
			expected: models.Action{Type: models.ActionQuoteAmount, Command: models.CommandRate, Amount: "10"},
		},
		{
			name:     "rate with three digit amount prefers numeric",
			text:     "/rate 100",
			expected: models.Action{Type: models.ActionQuoteAmount, Command: models.CommandRate, Amount: "100"},
		},
		{
			name:     "rate with target only",
			text:     "/rate EUR",
			expected: models.Action{Type: models.ActionQuoteTo, Command: models.CommandRate, To: "EUR"},
		},
		{
			name:     "rate with defaults",
			text:     "/rate",
			expected: models.Action{Type: models.ActionQuoteDefault, Command: models.CommandRate},
		},
		{
			name:     "history today",
			text:     "/history",
			expected: models.Action{Type: models.ActionHistoryToday, Command: models.CommandHistory},
		},
		{
			name:     "history for one currency",
			text:     "/history USD",
			expected: models.Action{Type: models.ActionHistoryCurrency, Command: models.CommandHistory, From: "USD"},
		},
		{
			name:     "history for a pair without period",
			text:     "/history USD EUR",
			expected: models.Action{Type: models.ActionHistoryPair, Command: models.CommandHistory, From: "USD", To: "EUR"},
		},
		{
			name: "history for a period",
			text: "/history 01.05.2024 24.05.2024",
			expected: models.Action{
				Type: models.ActionHistoryPeriod, Command: models.CommandHistory,
				DateFrom: "01.05.2024", DateTo: "24.05.2024",
			},
		},
		{
			name: "history for a period and currency",
			text: "/history 01.05.2024 24.05.2024 USD",
			expected: models.Action{
				Type: models.ActionHistoryPeriodCurrency, Command: models.CommandHistory,
				DateFrom: "01.05.2024", DateTo: "24.05.2024", From: "USD",
			},
		},
		{
			name: "history for a period and pair",
			text: "/history 01.05.2024 24.05.2024 USD EUR",
			expected: models.Action{
				Type: models.ActionHistoryPeriodPair, Command: models.CommandHistory,
				DateFrom: "01.05.2024", DateTo: "24.05.2024", From: "USD", To: "EUR",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := resolver.ResolveText(tt.text)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, *action)
		})
	}
}

func TestResolver_UsageError(t *testing.T) {
	resolver := command.NewResolver()

	tests := []struct {
		name  string
		text  string
		usage string
	}{
		{name: "start with argument", text: "/start now", usage: "/start"},
		{name: "help with two arguments", text: "/help rate history", usage: "/help <command> (optional)"},
		{name: "signup with three arguments", text: "/signup alice secret USD", usage: "/signup <username> <password> <fromCurrency> <toCurrency>"},
		{name: "login without password", text: "/login alice", usage: "/login <username> <password>"},
		{name: "logout with argument", text: "/logout now", usage: "/logout"},
		{name: "home with argument", text: "/home USD", usage: "/home"},
		{name: "pair with argument", text: "/pair USD", usage: "/pair"},
		{name: "chhome without argument", text: "/chhome", usage: "/chhome <currency>"},
		{name: "chpair with one argument", text: "/chpair USD", usage: "/chpair <fromCurrency> <toCurrency>"},
		{
			name:  "rate with non numeric amount",
			text:  "/rate USD EUR ten",
			usage: "/rate <fromCurrency> (optional) <toCurrency> (optional) <amount> (optional)",
		},
		{
			name:  "rate with amount first",
			text:  "/rate 10 EUR",
			usage: "/rate <fromCurrency> (optional) <toCurrency> (optional) <amount> (optional)",
		},
		{
			name:  "rate with four arguments",
			text:  "/rate USD EUR 10 20",
			usage: "/rate <fromCurrency> (optional) <toCurrency> (optional) <amount> (optional)",
		},
		{
			name:  "history with a single date",
			text:  "/history 01.05.2024",
			usage: "/history <dateFrom> (optional 1) <dateTo> (optional 1) <currency1> (optional 2) <currency2> (optional 3)",
		},
		{
			name:  "history with a malformed date",
			text:  "/history 1.5.2024 24.05.2024",
			usage: "/history <dateFrom> (optional 1) <dateTo> (optional 1) <currency1> (optional 2) <currency2> (optional 3)",
		},
		{
			name:  "history with five arguments",
			text:  "/history 01.05.2024 24.05.2024 USD EUR RUB",
			usage: "/history <dateFrom> (optional 1) <dateTo> (optional 1) <currency1> (optional 2) <currency2> (optional 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, err := resolver.ResolveText(tt.text)

			require.Error(t, err)
			assert.Nil(t, action)

			var usageErr *errors.ErrUsage
			require.ErrorAs(t, err, &usageErr)
			assert.Equal(t, tt.usage, usageErr.Usage)
			assert.Equal(t, "Usage: "+tt.usage, err.Error())
		})
	}
}

func TestResolver_ArityOutsideEveryVariant(t *testing.T) {
	resolver := command.NewResolver()

	for _, spec := range resolver.Specs() {
		maxArgs := 0
		for _, variant := range spec.Variants {
			if len(variant.Args) > maxArgs {
				maxArgs = len(variant.Args)
			}
		}

		args := make([]string, maxArgs+1)
		for i := range args {
			args[i] = "USD"
		}

		_, err := resolver.Resolve(string(spec.Command), args)

		var usageErr *errors.ErrUsage
		require.ErrorAs(t, err, &usageErr, spec.Command)
		assert.Equal(t, spec.Usage, usageErr.Usage)
	}
}

func TestResolver_UnknownCommand(t *testing.T) {
	resolver := command.NewResolver()

	for _, text := range []string{"/track", "hello", "start", "", "   "} {
		_, err := resolver.ResolveText(text)

		assert.ErrorIs(t, err, &errors.ErrUnknownCommand{}, text)
	}
}

func TestResolver_Lookup(t *testing.T) {
	resolver := command.NewResolver()

	spec, ok := resolver.Lookup("rate")
	require.True(t, ok)
	assert.Equal(t, models.CommandRate, spec.Command)

	spec, ok = resolver.Lookup("/HISTORY")
	require.True(t, ok)
	assert.Equal(t, models.CommandHistory, spec.Command)

	_, ok = resolver.Lookup("/track")
	assert.False(t, ok)
}

func TestResolver_CustomTable(t *testing.T) {
	resolver := command.NewResolverWithTable([]command.Spec{
		{
			Command: "/echo",
			Usage:   "/echo <word>",
			Variants: []command.Variant{
				{
					Args:   []common.Predicate{common.IsAny},
					Action: models.ActionHelpCommand,
					Bind:   func(a *models.Action, args []string) { a.Topic = args[0] },
				},
			},
		},
	})

	action, err := resolver.ResolveText("/echo hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", action.Topic)

	_, err = resolver.ResolveText("/start")
	assert.ErrorIs(t, err, &errors.ErrUnknownCommand{})
}
