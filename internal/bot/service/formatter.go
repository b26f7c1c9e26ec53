package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/central-university-dev/go-currency-bot/internal/bot/command"
	"github.com/central-university-dev/go-currency-bot/internal/common"
	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

const (
	msgUnknownCommand   = "Unknown command!"
	msgInternalError    = "ERROR"
	msgHistoryEmpty     = "No conversion history found for the specified period and currencies."
	msgHistoryInvalid   = "The period is invalid the start date cannot be after the end date!"
	historyRuleWidth    = 71
	defaultAmountString = "1.00"
)

// Result carries whatever a collaborator returned for one action. Only the
// fields the action needs are set.
type Result struct {
	FirstName    string
	Preference   models.Preference
	PreviousHome string
	Quote        *models.Quote
	History      *models.HistoryReport
}

// Formatter turns an action and its result into reply text. It never
// touches storage.
type Formatter struct {
	resolver *command.Resolver
}

func NewFormatter(resolver *command.Resolver) *Formatter {
	return &Formatter{resolver: resolver}
}

//nolint:gocyclo // Один case на каждое действие.
func (f *Formatter) Render(action *models.Action, result *Result) string {
	if result == nil {
		result = &Result{}
	}

	switch action.Type {
	case models.ActionGreet:
		return fmt.Sprintf("Hi %s, I'm a currency converter bot!\nUse /help, to see what I can do!", result.FirstName)
	case models.ActionHelpAll:
		return f.renderHelp()
	case models.ActionHelpCommand:
		spec, ok := f.resolver.Lookup(action.Topic)
		if !ok {
			return msgUnknownCommand
		}

		return "Usage: " + spec.Usage
	case models.ActionRegister:
		return "Sign up successful!"
	case models.ActionLogin:
		return "Log in successful!"
	case models.ActionLogout:
		return "Log out successful!"
	case models.ActionShowHome:
		return "Your home currency is " + result.Preference.HomeCurrency()
	case models.ActionShowPair:
		return "Your currency pair is " + result.Preference.Pair()
	case models.ActionChangeHome:
		return fmt.Sprintf("Your home currency has been successfully changed: %s -> %s",
			result.PreviousHome, result.Preference.HomeCurrency())
	case models.ActionChangePair:
		return "Your default pair has been successfully changed"
	case models.ActionQuotePairAmount, models.ActionQuoteToAmount, models.ActionQuotePair,
		models.ActionQuoteAmount, models.ActionQuoteTo, models.ActionQuoteDefault:
		return renderQuote(action, result.Quote)
	case models.ActionHistoryToday, models.ActionHistoryCurrency, models.ActionHistoryPair,
		models.ActionHistoryPeriod, models.ActionHistoryPeriodCurrency, models.ActionHistoryPeriodPair:
		return renderHistory(result.History)
	default:
		return msgUnknownCommand
	}
}

// RenderError returns the reply for a user-facing error. The second value
// is false for internal errors, which are answered with a generic text.
func (f *Formatter) RenderError(err error) (string, bool) {
	var (
		usageErr      *domainerrors.ErrUsage
		unknownErr    *domainerrors.ErrUnknownCommand
		validationErr *domainerrors.ErrValidation
		authErr       *domainerrors.ErrAuth
		dateErr       *domainerrors.ErrDateFormat
	)

	switch {
	case errors.As(err, &usageErr):
		return usageErr.Error(), true
	case errors.As(err, &unknownErr):
		return msgUnknownCommand, true
	case errors.As(err, &validationErr):
		return validationErr.Message, true
	case errors.As(err, &authErr):
		return authErr.Message, true
	case errors.As(err, &dateErr):
		return dateErr.Error(), true
	default:
		return msgInternalError, false
	}
}

func (f *Formatter) renderHelp() string {
	var sb strings.Builder

	sb.WriteString("Available commands:\n\n")

	for _, spec := range f.resolver.Specs() {
		sb.WriteString(spec.Usage)
		sb.WriteString("\n➡\uFE0F ")
		sb.WriteString(spec.Info)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

func renderQuote(action *models.Action, quote *models.Quote) string {
	if quote == nil {
		return msgInternalError
	}

	amount := action.Amount
	if amount == "" {
		amount = defaultAmountString
	}

	return fmt.Sprintf("%s %s = %s %s", amount, quote.From, quote.Result.StringFixed(2), quote.To)
}

func renderHistory(report *models.HistoryReport) string {
	if report == nil {
		return msgInternalError
	}

	if report.Invalid {
		return msgHistoryInvalid
	}

	if len(report.Entries) == 0 {
		return msgHistoryEmpty
	}

	var sb strings.Builder

	query := report.Query

	switch {
	case !query.Start.Equal(query.End):
		fmt.Fprintf(&sb, "Conversion history %s-%s", report.DateFrom, report.DateTo)
	case report.Today:
		fmt.Fprintf(&sb, "Today's conversion history (%s)", common.FormatDate(query.End))
	default:
		fmt.Fprintf(&sb, "Conversion history (%s)", common.FormatDate(query.End))
	}

	switch {
	case query.CurFrom == "":
		sb.WriteString("\n")
	case query.CurTo == "":
		fmt.Fprintf(&sb, " where %s appears:\n", query.CurFrom)
	default:
		fmt.Fprintf(&sb, " with %s-%s :\n", query.CurFrom, query.CurTo)
	}

	sb.WriteString(strings.Repeat("-", historyRuleWidth))
	sb.WriteString("\n")

	for _, entry := range report.Entries {
		fmt.Fprintf(&sb, "%s: %s-%s amount: %s, rate: %s\n",
			common.FormatDate(entry.CreatedAt),
			entry.From,
			entry.To,
			entry.Amount.StringFixed(2),
			entry.Rate.StringFixed(2),
		)
	}

	return sb.String()
}
