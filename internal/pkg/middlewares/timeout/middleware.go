package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware bounds the request context. It is mounted on the API routes
// only; the websocket endpoint lives longer than any request timeout.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
