package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/errguard/observability"
)

// Metrics records request count, duration and in-flight requests. Routes
// are reported by path pattern when the mux matched one.
func Metrics(m *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			m.RequestStarted(ctx)
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = r.URL.Path
			}
			m.RequestFinished(ctx, r.Method, route, sw.status, time.Since(start))
		})
	}
}
