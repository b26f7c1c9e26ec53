package httputil_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-currency-bot/internal/common/httputil"
	"github.com/central-university-dev/go-currency-bot/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lenientConfig() *config.Config {
	return &config.Config{
		ExternalRequestTimeout:     5 * time.Second,
		RetryCount:                 3,
		RetryBackoff:               20 * time.Millisecond,
		RetryableStatusCodes:       []int{429, 500, 502, 503, 504},
		CBSlidingWindowSize:        100,
		CBMinimumRequiredCalls:     100,
		CBFailureRateThreshold:     100,
		CBPermittedCallsInHalfOpen: 10,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}

func TestResilientClient_Retries(t *testing.T) {
	tests := []struct {
		name          string
		failures      int32
		failureStatus int
		finalStatus   int
		expectedCalls int32
	}{
		{
			name:          "retries server errors until success",
			failures:      2,
			failureStatus: http.StatusServiceUnavailable,
			finalStatus:   http.StatusOK,
			expectedCalls: 3,
		},
		{
			name:          "retries too many requests",
			failures:      1,
			failureStatus: http.StatusTooManyRequests,
			finalStatus:   http.StatusOK,
			expectedCalls: 2,
		},
		{
			name:          "does not retry not found",
			failures:      0,
			finalStatus:   http.StatusNotFound,
			expectedCalls: 1,
		},
		{
			name:          "does not retry unauthorized",
			failures:      0,
			finalStatus:   http.StatusUnauthorized,
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var calls int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if atomic.AddInt32(&calls, 1) <= tt.failures {
					w.WriteHeader(tt.failureStatus)
					return
				}

				w.WriteHeader(tt.finalStatus)
				_, _ = w.Write([]byte(`{"valid":true}`))
			}))
			defer server.Close()

			client := httputil.CreateResilientHTTPClient(lenientConfig(), testLogger(), "rates_test")

			// Act
			resp, err := client.R().Get(server.URL + "/latest")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.finalStatus, resp.StatusCode())
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestResilientClient_CircuitBreakerOpens(t *testing.T) {
	// Arrange
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{
		ExternalRequestTimeout:     time.Second,
		RetryCount:                 1,
		RetryBackoff:               20 * time.Millisecond,
		RetryableStatusCodes:       []int{500},
		CBSlidingWindowSize:        1,
		CBMinimumRequiredCalls:     1,
		CBFailureRateThreshold:     100,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  2 * time.Second,
	}

	client := httputil.CreateResilientHTTPClient(cfg, nil, "rates_breaker_test")

	_, err := client.R().Get(server.URL + "/latest")
	require.Error(t, err)

	callsBefore := atomic.LoadInt32(&calls)

	// Act
	start := time.Now()
	_, err = client.R().Get(server.URL + "/latest")
	elapsed := time.Since(start)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed, 200*time.Millisecond, "Открытый circuit breaker должен отвечать сразу")
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), callsBefore+1)
}
