package database

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
}

func TestTracingHook_RecordsCommandSpans(t *testing.T) {
	rec := withSpanRecorder(t)
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	err = client.Get(context.Background(), "missing").Err()
	require.ErrorIs(t, err, redis.Nil)

	var get sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == "redis.get" {
			get = s
		}
	}
	require.NotNil(t, get)
	assert.NotEqual(t, codes.Error, get.Status().Code)
}

func TestTraceCommand_SlowCommandLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	SetSlowCommandLogging(time.Nanosecond, logger)
	t.Cleanup(func() { SetSlowCommandLogging(0, nil) })

	_, end := TraceCommand(context.Background(), "set")
	time.Sleep(time.Millisecond)
	end(nil)

	assert.Contains(t, buf.String(), "slow redis command")
	assert.Contains(t, buf.String(), "command=set")
}

func TestTraceCommand_DisabledLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	SetSlowCommandLogging(0, slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetSlowCommandLogging(0, nil) })

	_, end := TraceCommand(context.Background(), "get")
	end(nil)

	assert.Empty(t, buf.String())
}

func TestPoolStatsCollector(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterPoolMetrics(reg, client, "storefront"))

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}
	require.Len(t, byName, 6)

	total := byName["redis_pool_total_connections"]
	require.NotNil(t, total)
	require.Len(t, total.GetMetric(), 1)
	m := total.GetMetric()[0]
	assert.Equal(t, float64(1), m.GetGauge().GetValue())
	require.Len(t, m.GetLabel(), 1)
	assert.Equal(t, "storefront", m.GetLabel()[0].GetValue())

	err = RegisterPoolMetrics(reg, client, "storefront")
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
