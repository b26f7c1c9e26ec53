package command

import (
	"github.com/central-university-dev/go-currency-bot/internal/common"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

var (
	anyArg   = common.IsAny
	currency = common.IsCurrency
	numeric  = common.IsNumeric
	date     = common.IsDate
)

func bindNothing(*models.Action, []string) {}

// DefaultTable returns the commands in the order they are listed by /help.
// Inside a command the variants are tried top to bottom, so a numeric
// variant always precedes a currency-shaped one at the same position.
//
//nolint:funlen // Таблица команд читается целиком.
func DefaultTable() []Spec {
	return []Spec{
		{
			Command: models.CommandStart,
			Usage:   "/start",
			Info:    "Say hi to the bot.",
			Variants: []Variant{
				{Action: models.ActionGreet, Bind: bindNothing},
			},
		},
		{
			Command: models.CommandHelp,
			Usage:   "/help <command> (optional)",
			Info:    "Get help and information about available commands",
			Variants: []Variant{
				{Action: models.ActionHelpAll, Bind: bindNothing},
				{
					Args:   []common.Predicate{anyArg},
					Action: models.ActionHelpCommand,
					Bind: func(a *models.Action, args []string) {
						a.Topic = args[0]
					},
				},
			},
		},
		{
			Command: models.CommandSignup,
			Usage:   "/signup <username> <password> <fromCurrency> <toCurrency>",
			Info:    "Register a new account",
			Variants: []Variant{
				{
					Args:   []common.Predicate{anyArg, anyArg, anyArg, anyArg},
					Action: models.ActionRegister,
					Bind: func(a *models.Action, args []string) {
						a.Username, a.Password, a.From, a.To = args[0], args[1], args[2], args[3]
					},
				},
			},
		},
		{
			Command: models.CommandLogin,
			Usage:   "/login <username> <password>",
			Info:    "Log in to an account",
			Variants: []Variant{
				{
					Args:   []common.Predicate{anyArg, anyArg},
					Action: models.ActionLogin,
					Bind: func(a *models.Action, args []string) {
						a.Username, a.Password = args[0], args[1]
					},
				},
			},
		},
		{
			Command: models.CommandLogout,
			Usage:   "/logout",
			Info:    "Log out of the current account",
			Variants: []Variant{
				{Action: models.ActionLogout, Bind: bindNothing},
			},
		},
		{
			Command: models.CommandHome,
			Usage:   "/home",
			Info:    "Display the current home currency",
			Variants: []Variant{
				{Action: models.ActionShowHome, Bind: bindNothing},
			},
		},
		{
			Command: models.CommandPair,
			Usage:   "/pair",
			Info:    "Show the default currency pair for exchange rate queries",
			Variants: []Variant{
				{Action: models.ActionShowPair, Bind: bindNothing},
			},
		},
		{
			Command: models.CommandChHome,
			Usage:   "/chhome <currency>",
			Info:    "Update the home currency to a different one",
			Variants: []Variant{
				{
					Args:   []common.Predicate{anyArg},
					Action: models.ActionChangeHome,
					Bind: func(a *models.Action, args []string) {
						a.From = args[0]
					},
				},
			},
		},
		{
			Command: models.CommandChPair,
			Usage:   "/chpair <fromCurrency> <toCurrency>",
			Info:    "Modify the default currency pair for exchange rate queries",
			Variants: []Variant{
				{
					Args:   []common.Predicate{anyArg, anyArg},
					Action: models.ActionChangePair,
					Bind: func(a *models.Action, args []string) {
						a.From, a.To = args[0], args[1]
					},
				},
			},
		},
		{
			Command: models.CommandRate,
			Usage:   "/rate <fromCurrency> (optional) <toCurrency> (optional) <amount> (optional)",
			Info:    "Fetch the current exchange rate for a specified currency pair (optional) and amount (optional)",
			Variants: []Variant{
				{
					Args:   []common.Predicate{currency, currency, numeric},
					Action: models.ActionQuotePairAmount,
					Bind: func(a *models.Action, args []string) {
						a.From, a.To, a.Amount = args[0], args[1], args[2]
					},
				},
				{
					Args:   []common.Predicate{currency, numeric},
					Action: models.ActionQuoteToAmount,
					Bind: func(a *models.Action, args []string) {
						a.To, a.Amount = args[0], args[1]
					},
				},
				{
					Args:   []common.Predicate{currency, currency},
					Action: models.ActionQuotePair,
					Bind: func(a *models.Action, args []string) {
						a.From, a.To = args[0], args[1]
					},
				},
				{
					Args:   []common.Predicate{numeric},
					Action: models.ActionQuoteAmount,
					Bind: func(a *models.Action, args []string) {
						a.Amount = args[0]
					},
				},
				{
					Args:   []common.Predicate{currency},
					Action: models.ActionQuoteTo,
					Bind: func(a *models.Action, args []string) {
						a.To = args[0]
					},
				},
				{Action: models.ActionQuoteDefault, Bind: bindNothing},
			},
		},
		{
			Command: models.CommandHistory,
			Usage:   "/history <dateFrom> (optional 1) <dateTo> (optional 1) <currency1> (optional 2) <currency2> (optional 3)",
			Info:    "Retrieve exchange rate requests history for a specified period (optional) and a currency/pair (optional)",
			Variants: []Variant{
				{Action: models.ActionHistoryToday, Bind: bindNothing},
				{
					Args:   []common.Predicate{currency},
					Action: models.ActionHistoryCurrency,
					Bind: func(a *models.Action, args []string) {
						a.From = args[0]
					},
				},
				{
					Args:   []common.Predicate{currency, currency},
					Action: models.ActionHistoryPair,
					Bind: func(a *models.Action, args []string) {
						a.From, a.To = args[0], args[1]
					},
				},
				{
					Args:   []common.Predicate{date, date},
					Action: models.ActionHistoryPeriod,
					Bind: func(a *models.Action, args []string) {
						a.DateFrom, a.DateTo = args[0], args[1]
					},
				},
				{
					Args:   []common.Predicate{date, date, currency},
					Action: models.ActionHistoryPeriodCurrency,
					Bind: func(a *models.Action, args []string) {
						a.DateFrom, a.DateTo, a.From = args[0], args[1], args[2]
					},
				},
				{
					Args:   []common.Predicate{date, date, currency, currency},
					Action: models.ActionHistoryPeriodPair,
					Bind: func(a *models.Action, args []string) {
						a.DateFrom, a.DateTo, a.From, a.To = args[0], args[1], args[2], args[3]
					},
				},
			},
		},
	}
}
