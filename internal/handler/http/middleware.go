package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
)

// ContentTypeJSON rejects request bodies that are neither JSON nor a
// multipart upload.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "multipart/form-data") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{
						Code:    "UNSUPPORTED_MEDIA_TYPE",
						Message: "Content-Type must be application/json or multipart/form-data",
					},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// principalFrom adapts the session container to the route guards.
func principalFrom(sessions Sessions) middleware.PrincipalFunc {
	return func(context.Context) (middleware.Principal, bool) {
		s := sessions.Current()
		if !s.IsAuthenticated || s.User == nil {
			return middleware.Principal{}, false
		}
		return middleware.Principal{
			UserID:  s.User.ID,
			Role:    s.User.Role,
			StoreID: s.User.StoreID,
		}, true
	}
}
