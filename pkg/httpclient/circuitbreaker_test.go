package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      time.Second,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func newGet(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	return req
}

func TestCircuitBreaker_PassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), testCBConfig("cb-pass"), testLogger())

	resp, err := cb.Do(context.Background(), newGet(t, server.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_5xxKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"db down"}`))
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), testCBConfig("cb-body"), testLogger())

	_, err := cb.Do(context.Background(), newGet(t, server.URL))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "db down", ServerMessage(statusErr.Body))
}

func TestCircuitBreaker_TripsOnFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), testCBConfig("cb-trip"), testLogger())

	for i := 0; i < 3; i++ {
		_, err := cb.Do(context.Background(), newGet(t, server.URL))
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Do(context.Background(), newGet(t, server.URL))
	assert.ErrorIs(t, err, ErrCircuitOpen)

	m := &dto.Metric{}
	require.NoError(t, breakerRejected.WithLabelValues("cb-trip").Write(m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())
}

func TestCircuitBreaker_CallerCancellationDoesNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(New(fastConfig(0)), testCBConfig("cb-cancel"), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		req := newGet(t, server.URL).WithContext(ctx)
		_, err := cb.Do(ctx, req)
		require.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestStateToFloat(t *testing.T) {
	assert.Equal(t, float64(0), stateToFloat(gobreaker.StateClosed))
	assert.Equal(t, float64(1), stateToFloat(gobreaker.StateHalfOpen))
	assert.Equal(t, float64(2), stateToFloat(gobreaker.StateOpen))
}
