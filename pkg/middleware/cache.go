package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl lets the browser reuse catalog reads for maxAge seconds. The
// companion serves a single user, so responses are marked private.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("private, max-age=%d", maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore forbids caching. Used for session, cart and every mutation.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
