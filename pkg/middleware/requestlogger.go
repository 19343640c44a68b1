package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// the correlation id, the signed-in user and store, and the trace and span
// ids. Mount it after RequestLogging and Tracing. RequireSession adds the
// principal to the logger it stores.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if id := UserIDFromContext(ctx); id != "" {
				ctx = logger.WithUserID(ctx, id)
			}
			if id := StoreIDFromContext(ctx); id != "" {
				ctx = logger.WithStoreID(ctx, id)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
