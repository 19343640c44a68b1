package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

type contextKeyType string

const (
	userIDKey  contextKeyType = "user_id"
	roleKey    contextKeyType = "role"
	storeIDKey contextKeyType = "store_id"
)

// Principal is the signed-in user as seen by route guards.
type Principal struct {
	UserID  string
	Role    string
	StoreID string
}

// PrincipalFunc reports the current principal, or false when nobody is
// signed in.
type PrincipalFunc func(ctx context.Context) (Principal, bool)

// RequireSession rejects requests with 401 when there is no session and
// otherwise stores the principal in the request context.
func RequireSession(current PrincipalFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := current(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "NO_TOKEN", apperrors.MsgNoToken)
				return
			}
			ctx := WithPrincipal(r.Context(), p)
			if l := logger.FromContext(ctx); l != slog.Default() {
				l = l.With(slog.String("user_id", p.UserID), slog.String("role", p.Role))
				if p.StoreID != "" {
					l = l.With(slog.String("store_id", p.StoreID))
				}
				ctx = logger.NewContext(ctx, l)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only principals holding one of roles. It must run
// after RequireSession.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := roleSet[RoleFromContext(r.Context())]; !ok {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, userIDKey, p.UserID)
	ctx = context.WithValue(ctx, roleKey, p.Role)
	return context.WithValue(ctx, storeIDKey, p.StoreID)
}

// UserIDFromContext extracts the user ID from the request context.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// RoleFromContext extracts the user role from the request context.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// StoreIDFromContext extracts the seller's store ID from the request context.
func StoreIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(storeIDKey).(string)
	return id
}
