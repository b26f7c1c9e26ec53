package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/central-university-dev/go-currency-bot/internal/bot/command"
	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
	domainerrors "github.com/central-university-dev/go-currency-bot/internal/domain/errors"
	"github.com/central-university-dev/go-currency-bot/internal/domain/models"
)

const unresolvedCommand = "unresolved"

// BotService is the dispatch boundary: it resolves a message to an action,
// calls the collaborators and renders the reply.
type BotService struct {
	resolver  *command.Resolver
	accounts  AccountManager
	quoter    Quoter
	history   HistoryReader
	formatter *Formatter
	tracer    trace.Tracer
	logger    *slog.Logger
}

func NewBotService(
	resolver *command.Resolver,
	accounts AccountManager,
	quoter Quoter,
	history HistoryReader,
	logger *slog.Logger,
) *BotService {
	return &BotService{
		resolver:  resolver,
		accounts:  accounts,
		quoter:    quoter,
		history:   history,
		formatter: NewFormatter(resolver),
		tracer:    otel.Tracer("bot"),
		logger:    logger,
	}
}

// ProcessMessage returns the reply for one chat message. User mistakes are
// answered with a nil error, a non-nil error means the request failed for
// internal reasons and the reply must not reveal details.
func (s *BotService) ProcessMessage(ctx context.Context, message *models.Message) (string, error) {
	ctx, span := s.tracer.Start(ctx, "BotService.ProcessMessage")
	defer span.End()

	start := time.Now()
	label := unresolvedCommand

	action, err := s.resolver.ResolveText(message.Text)

	var result *Result

	if err == nil {
		label = action.Type.String()
		span.SetAttributes(attribute.String("bot.action", label))

		result, err = s.execute(ctx, message, action)
	}

	if err != nil {
		reply, userFacing := s.formatter.RenderError(err)
		if userFacing {
			metrics.RecordCommand(label, metrics.StatusRejected, time.Since(start))

			s.logger.Info("Команда отклонена",
				"identity", message.Identity,
				"action", label,
				"reason", reply,
			)

			return reply, nil
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordCommand(label, metrics.StatusError, time.Since(start))

		return "", err
	}

	metrics.RecordCommand(label, metrics.StatusSuccess, time.Since(start))

	return s.formatter.Render(action, result), nil
}

//nolint:gocyclo // Один case на каждое действие.
func (s *BotService) execute(ctx context.Context, message *models.Message, action *models.Action) (*Result, error) {
	result := &Result{}

	switch action.Type {
	case models.ActionGreet:
		result.FirstName = message.FirstName
		return result, nil
	case models.ActionHelpAll, models.ActionHelpCommand:
		return result, nil
	case models.ActionRegister:
		_, err := s.accounts.Register(ctx, message.Identity, action.Username, action.Password, action.From, action.To)
		return result, err
	case models.ActionLogin:
		_, err := s.accounts.Authenticate(ctx, message.Identity, action.Username, action.Password)
		return result, err
	case models.ActionLogout:
		return result, s.accounts.Logout(ctx, message.Identity)
	}

	accountID, err := s.requireLogin(ctx, message.Identity)
	if err != nil {
		return nil, err
	}

	switch {
	case action.Type == models.ActionShowHome, action.Type == models.ActionShowPair:
		result.Preference, err = s.accounts.GetPreference(ctx, accountID)
	case action.Type == models.ActionChangeHome:
		result.PreviousHome, err = s.accounts.SetHomeCurrency(ctx, accountID, action.From)
		result.Preference.PairFrom = NormalizeCurrency(action.From)
	case action.Type == models.ActionChangePair:
		err = s.accounts.SetPair(ctx, accountID, action.From, action.To)
	case action.Type.IsQuote():
		result.Quote, err = s.quoter.Quote(ctx, accountID, models.QuoteRequest{
			From:   action.From,
			To:     action.To,
			Amount: action.Amount,
		})
	case action.Type.IsHistory():
		result.History, err = s.history.History(ctx, accountID, models.HistoryRequest{
			DateFrom: action.DateFrom,
			DateTo:   action.DateTo,
			CurFrom:  action.From,
			CurTo:    action.To,
		})
	default:
		err = &domainerrors.ErrUnknownCommand{Command: string(action.Command)}
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *BotService) requireLogin(ctx context.Context, identity string) (int64, error) {
	accountID, loggedIn, err := s.accounts.IsLoggedIn(ctx, identity)
	if err != nil {
		return 0, err
	}

	if !loggedIn {
		return 0, &domainerrors.ErrAuth{Message: msgNotLoggedIn}
	}

	return accountID, nil
}

// Commands lists the menu entries registered with Telegram.
func (s *BotService) Commands() []command.Spec {
	return s.resolver.Specs()
}
