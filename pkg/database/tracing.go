package database

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/pkg/tracing"
)

const tracerName = "github.com/utafrali/storefront/pkg/database"

var slowCommandCfg struct {
	mu        sync.RWMutex
	threshold time.Duration
	logger    *slog.Logger
}

// SetSlowCommandLogging configures slow command detection. Commands taking
// at least threshold are logged as warnings. A zero threshold disables it.
func SetSlowCommandLogging(threshold time.Duration, logger *slog.Logger) {
	slowCommandCfg.mu.Lock()
	defer slowCommandCfg.mu.Unlock()
	slowCommandCfg.threshold = threshold
	slowCommandCfg.logger = logger
}

func getSlowCommandConfig() (time.Duration, *slog.Logger) {
	slowCommandCfg.mu.RLock()
	defer slowCommandCfg.mu.RUnlock()
	return slowCommandCfg.threshold, slowCommandCfg.logger
}

// TraceCommand starts a span for a Redis command. The returned function must
// be called with the command's error when it completes. A missing key
// (redis.Nil) is not an error.
func TraceCommand(ctx context.Context, command string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "redis."+command,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", command),
		),
	)

	return ctx, func(err error) {
		if err != nil && !errors.Is(err, redis.Nil) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if threshold, logger := getSlowCommandConfig(); threshold > 0 && logger != nil {
			if elapsed := time.Since(start); elapsed >= threshold {
				logger.WarnContext(ctx, "slow redis command",
					slog.String("command", command),
					slog.Duration("duration", elapsed),
				)
			}
		}
	}
}

// tracingHook traces every command and pipeline sent by a client.
type tracingHook struct{}

func (tracingHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (tracingHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		ctx, end := TraceCommand(ctx, cmd.Name())
		err := next(ctx, cmd)
		end(err)
		return err
	}
}

func (tracingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, end := TraceCommand(ctx, "pipeline")
		err := next(ctx, cmds)
		end(err)
		return err
	}
}
