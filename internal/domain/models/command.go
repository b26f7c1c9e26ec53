package models

type CommandType string

const (
	CommandStart   CommandType = "/start"
	CommandHelp    CommandType = "/help"
	CommandSignup  CommandType = "/signup"
	CommandLogin   CommandType = "/login"
	CommandLogout  CommandType = "/logout"
	CommandHome    CommandType = "/home"
	CommandPair    CommandType = "/pair"
	CommandChHome  CommandType = "/chhome"
	CommandChPair  CommandType = "/chpair"
	CommandRate    CommandType = "/rate"
	CommandHistory CommandType = "/history"
	CommandUnknown CommandType = "unknown"
)

// ActionType identifies one arity variant of a command.
type ActionType int

const (
	ActionGreet ActionType = iota
	ActionHelpAll
	ActionHelpCommand
	ActionRegister
	ActionLogin
	ActionLogout
	ActionShowHome
	ActionShowPair
	ActionChangeHome
	ActionChangePair
	ActionQuotePairAmount
	ActionQuoteToAmount
	ActionQuotePair
	ActionQuoteAmount
	ActionQuoteTo
	ActionQuoteDefault
	ActionHistoryToday
	ActionHistoryCurrency
	ActionHistoryPair
	ActionHistoryPeriod
	ActionHistoryPeriodCurrency
	ActionHistoryPeriodPair
)

var actionNames = map[ActionType]string{
	ActionGreet:                 "greet",
	ActionHelpAll:               "help_all",
	ActionHelpCommand:           "help_command",
	ActionRegister:              "register",
	ActionLogin:                 "login",
	ActionLogout:                "logout",
	ActionShowHome:              "show_home",
	ActionShowPair:              "show_pair",
	ActionChangeHome:            "change_home",
	ActionChangePair:            "change_pair",
	ActionQuotePairAmount:       "quote_pair_amount",
	ActionQuoteToAmount:         "quote_to_amount",
	ActionQuotePair:             "quote_pair",
	ActionQuoteAmount:           "quote_amount",
	ActionQuoteTo:               "quote_to",
	ActionQuoteDefault:          "quote_default",
	ActionHistoryToday:          "history_today",
	ActionHistoryCurrency:       "history_currency",
	ActionHistoryPair:           "history_pair",
	ActionHistoryPeriod:         "history_period",
	ActionHistoryPeriodCurrency: "history_period_currency",
	ActionHistoryPeriodPair:     "history_period_pair",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}

	return "unknown"
}

func (t ActionType) IsQuote() bool {
	return t >= ActionQuotePairAmount && t <= ActionQuoteDefault
}

func (t ActionType) IsHistory() bool {
	return t >= ActionHistoryToday && t <= ActionHistoryPeriodPair
}

// Action is a resolved command variant together with its bound arguments.
// Fields that the variant does not bind stay empty.
type Action struct {
	Type    ActionType
	Command CommandType

	Username string
	Password string

	From   string
	To     string
	Amount string

	DateFrom string
	DateTo   string

	Topic string
}

// Message is one inbound chat message.
type Message struct {
	Identity  string
	ChatID    int64
	FirstName string
	Username  string
	Text      string
}
