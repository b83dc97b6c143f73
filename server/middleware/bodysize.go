package middleware

import (
	"net/http"

	"github.com/kbukum/errguard/util"
)

// DefaultMaxBodySize applies when the configured size cannot be parsed.
const DefaultMaxBodySize = 10 * 1024 * 1024

// BodySizeLimit caps request bodies at maxSize ("10MB", "512KB", ...).
// Reading past the cap fails with *http.MaxBytesError, which
// server.BindJSON reports as a PayloadTooLargeError.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, DefaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, size)
			}
			next.ServeHTTP(w, r)
		})
	}
}
