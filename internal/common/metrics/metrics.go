package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "currency_bot"

	BotSubsystem   = "bot"
	RatesSubsystem = "rates"
	StoreSubsystem = "store"
)

const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Общие метрики HTTP.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)
)

// Бот метрики.
var (
	UserMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "user_messages_total",
			Help:      "Total number of user messages received",
		},
		[]string{"message_type"},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "commands_total",
			Help:      "Total number of processed commands by outcome",
		},
		[]string{"command", "status"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "command_duration_seconds",
			Help:      "Command processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "conversions_total",
			Help:      "Total number of quotes given per currency pair",
		},
		[]string{"from", "to"},
	)

	SessionCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BotSubsystem,
			Name:      "session_cache_requests_total",
			Help:      "Session cache lookups by result",
		},
		[]string{"result"},
	)
)

// Метрики курсов валют.
var (
	RatesRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: RatesSubsystem,
			Name:      "refresh_total",
			Help:      "Total number of rate table refreshes",
		},
		[]string{"status"},
	)

	RatesRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: RatesSubsystem,
			Name:      "refresh_duration_seconds",
			Help:      "Rate table refresh duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		},
	)

	RatesUpdatedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: RatesSubsystem,
			Name:      "updated_timestamp_seconds",
			Help:      "Unix time the current rate table was published at",
		},
	)
)

// Метрики хранилища.
var (
	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StoreSubsystem,
			Name:      "database_queries_total",
			Help:      "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: StoreSubsystem,
			Name:      "database_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func RecordHTTPRequest(service, method, endpoint string, statusCode int, duration time.Duration) {
	status := StatusSuccess
	if statusCode >= 400 {
		status = StatusError
	}

	HTTPRequestsTotal.WithLabelValues(service, method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, endpoint).Observe(duration.Seconds())
}

func RecordUserMessage(messageType string) {
	UserMessagesTotal.WithLabelValues(messageType).Inc()
}

func RecordCommand(command, status string, duration time.Duration) {
	CommandsTotal.WithLabelValues(command, status).Inc()
	CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func RecordConversion(from, to string) {
	ConversionsTotal.WithLabelValues(from, to).Inc()
}

func RecordSessionCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	SessionCacheRequests.WithLabelValues(result).Inc()
}

func RecordRatesRefresh(status string, duration time.Duration, updated time.Time) {
	RatesRefreshTotal.WithLabelValues(status).Inc()
	RatesRefreshDuration.Observe(duration.Seconds())

	if status == StatusSuccess && !updated.IsZero() {
		RatesUpdatedTimestamp.Set(float64(updated.Unix()))
	}
}

func RecordDatabaseQuery(operation string, err error, duration time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	DatabaseQueriesTotal.WithLabelValues(operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
