package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Correlation-ID", "traceparent"}
)

// CORSConfig configures which browser origins may call the companion service.
type CORSConfig struct {
	// AllowedOrigins lists exact origins. "*" allows any origin, as does an
	// Environment of "development".
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds. Zero means one hour.
	MaxAge           int
	AllowCredentials bool
	Environment      string
}

// UICORSConfig returns the settings for the local UI served from origins.
// An empty list allows every origin.
func UICORSConfig(origins []string, environment string) CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return CORSConfig{
		AllowedOrigins: origins,
		ExposedHeaders: []string{"X-Correlation-ID"},
		Environment:    environment,
	}
}

// corsPolicy is a CORSConfig with its header values rendered once.
type corsPolicy struct {
	anyOrigin   bool
	origins     []string
	methods     string
	headers     string
	exposed     string
	maxAge      string
	credentials bool
}

func newCORSPolicy(cfg CORSConfig) corsPolicy {
	methods, headers := cfg.AllowedMethods, cfg.AllowedHeaders
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = 3600
	}
	return corsPolicy{
		anyOrigin:   cfg.Environment == "development" || slices.Contains(cfg.AllowedOrigins, "*"),
		origins:     cfg.AllowedOrigins,
		methods:     strings.Join(methods, ", "),
		headers:     strings.Join(headers, ", "),
		exposed:     strings.Join(cfg.ExposedHeaders, ", "),
		maxAge:      strconv.Itoa(maxAge),
		credentials: cfg.AllowCredentials,
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or ""
// when the origin is not allowed.
func (p corsPolicy) allowOrigin(origin string) string {
	switch {
	case p.anyOrigin:
		return "*"
	case origin != "" && slices.Contains(p.origins, origin):
		return origin
	}
	return ""
}

func (p corsPolicy) apply(h http.Header, origin string) {
	if allowed := p.allowOrigin(origin); allowed != "" {
		h.Set("Access-Control-Allow-Origin", allowed)
		if allowed != "*" {
			h.Add("Vary", "Origin")
		}
	}
	h.Set("Access-Control-Allow-Methods", p.methods)
	h.Set("Access-Control-Allow-Headers", p.headers)
	if p.exposed != "" {
		h.Set("Access-Control-Expose-Headers", p.exposed)
	}
	h.Set("Access-Control-Max-Age", p.maxAge)
	if p.credentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

// CORS sets the cross-origin headers and answers preflight requests with 204.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy.apply(w.Header(), r.Header.Get("Origin"))
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
