package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/config"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/repository/memory"
	redisrepo "github.com/utafrali/storefront/internal/repository/redis"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/internal/state"
	"github.com/utafrali/storefront/internal/storefront"
	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the companion service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	poolMetrics    prometheus.Collector
	store          *state.Store
	sessions       *session.Manager
	breaker        *httpclient.CircuitBreakerClient
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies
// and restoring the cached session.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tcfg := tracing.DefaultConfig(serviceName)
	tcfg.Environment = cfg.Environment
	tcfg.OTLPEndpoint = cfg.OTELEndpoint
	tcfg.SampleRate = cfg.OTELSampleRate
	tcfg.Enabled = cfg.OTELEnabled
	tracerShutdown, err := tracing.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}

	cache, err := a.sessionCache(ctx)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, err
	}

	// Application state.
	a.store = state.NewStore(state.Initial())
	a.store.Subscribe(state.LogListener(logger))
	a.store.Subscribe(state.MetricsListener())
	a.sessions = session.NewManager(a.store, cache, logger)

	// Storefront API client.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.APITimeout
	httpCfg.MaxRetries = cfg.APIRetries
	httpCfg.RateLimit = cfg.APIRateLimit
	httpCfg.RateBurst = cfg.APIRateBurst
	a.breaker = httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("storefront-api"),
		logger,
	)
	api := storefront.NewClient(storefront.Config{
		BaseURL:       cfg.APIBaseURL,
		DetailTimeout: cfg.DetailTimeout,
	}, a.breaker, a.sessions, logger)
	a.sessions.SetAuthenticator(api)

	if s, err := a.sessions.Restore(ctx); err != nil {
		logger.Warn("session restore incomplete", slog.String("error", err.Error()))
	} else if s.IsAuthenticated {
		logger.Info("signed in from cached session", slog.String("user_id", s.User.ID))
	}

	// Health checks.
	healthHandler := health.NewHandler()
	if a.rdb != nil {
		healthHandler.Register("session_cache", func(ctx context.Context) error {
			return a.rdb.Ping(ctx).Err()
		})
	}
	healthHandler.RegisterOptional("storefront_api", func(context.Context) error {
		if a.breaker.State() == gobreaker.StateOpen {
			return errors.New("circuit breaker open")
		}
		return nil
	})

	router := handler.NewRouter(handler.Deps{
		API:        api,
		Sessions:   a.sessions,
		Cart:       cart.NewContainer(api, a.store, logger),
		Wishlist:   wishlist.NewContainer(a.store),
		Health:     healthHandler,
		Logger:     logger,
		CORS:       middleware.UICORSConfig(cfg.AllowedOrigins, cfg.Environment),
		PprofCIDRs: cfg.PprofAllowCIDRs,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// sessionCache opens the configured session cache backend.
func (a *App) sessionCache(ctx context.Context) (repository.SessionCache, error) {
	if a.cfg.CacheBackend != config.CacheRedis {
		a.logger.Info("using in-memory session cache")
		return memory.NewSessionCache(), nil
	}

	database.SetSlowCommandLogging(a.cfg.RedisSlowThreshold, a.logger)
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPass,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.logger.Info("connected to Redis",
		slog.String("addr", a.cfg.RedisAddr),
		slog.Int("db", a.cfg.RedisDB),
	)
	a.rdb = rdb

	pool := database.NewPoolStatsCollector(rdb, serviceName)
	if err := prometheus.Register(pool); err != nil {
		a.logger.Warn("redis pool metrics not registered", slog.String("error", err.Error()))
	} else {
		a.poolMetrics = pool
	}
	return redisrepo.NewSessionCache(rdb, a.cfg.SessionTTL), nil
}

// Handler returns the HTTP handler of the companion service.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("api", a.cfg.APIBaseURL),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. The session stays in the cache
// so the next start restores it.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	if a.poolMetrics != nil {
		prometheus.Unregister(a.poolMetrics)
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
