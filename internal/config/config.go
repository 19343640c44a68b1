package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "STOREFRONT_"

// Cache backends for the persisted session.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all configuration for the storefront companion service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// HTTP server
	HTTPPort        int      `env:"HTTP_PORT" envDefault:"8080"`
	AllowedOrigins  []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowCIDRs []string `env:"PPROF_ALLOW_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`

	// Storefront API
	APIBaseURL    string        `env:"API_URL" envDefault:"http://localhost:5000"`
	APITimeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	DetailTimeout time.Duration `env:"DETAIL_TIMEOUT" envDefault:"10s"`
	APIRetries    int           `env:"API_RETRIES" envDefault:"2"`
	APIRateLimit  float64       `env:"API_RATE_LIMIT" envDefault:"20"`
	APIRateBurst  int           `env:"API_RATE_BURST" envDefault:"40"`

	// Session cache
	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass    string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// RedisSlowThreshold logs Redis commands at or above it. Zero disables.
	RedisSlowThreshold time.Duration `env:"REDIS_SLOW_THRESHOLD" envDefault:"100ms"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from STOREFRONT_ prefixed environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadWithPrefix(cfg, EnvPrefix); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 || c.DetailTimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT and DETAIL_TIMEOUT must be positive")
	}
	if c.APIRetries < 0 {
		return fmt.Errorf("API_RETRIES must not be negative")
	}
	switch c.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheRedis, c.CacheBackend)
	}
	if c.CacheBackend == CacheRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required for the redis cache backend")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	return nil
}
