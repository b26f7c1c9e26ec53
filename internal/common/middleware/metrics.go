package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/central-university-dev/go-currency-bot/internal/common/metrics"
)

const callbackRoute = "/{token}/callback/"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type MetricsMiddleware struct {
	serviceName string
}

func NewMetricsMiddleware(serviceName string) *MetricsMiddleware {
	return &MetricsMiddleware{
		serviceName: serviceName,
	}
}

func (m *MetricsMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			m.serviceName,
			r.Method,
			RouteName(r),
			rw.statusCode,
			time.Since(start),
		)
	})
}

// RouteName returns the request path with the bot token masked, so it can
// be used as a metric label or a log field.
func RouteName(r *http.Request) string {
	if strings.HasSuffix(r.URL.Path, "/callback/") {
		return callbackRoute
	}

	return r.URL.Path
}
