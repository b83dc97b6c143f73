package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/errguard/handler"
)

// Recovery turns panics anywhere below it into error responses rendered
// by w. A panic after the response started is logged and the partial
// response is left alone.
func Recovery(w *handler.Wrapper) Middleware {
	return func(next http.Handler) http.Handler {
		return w.HTTP(func(rw http.ResponseWriter, r *http.Request) error {
			next.ServeHTTP(rw, r)
			return nil
		})
	}
}

// GinRecovery is Recovery for the remaining Gin chain.
func GinRecovery(w *handler.Wrapper) gin.HandlerFunc {
	return w.Gin(func(c *gin.Context) error {
		c.Next()
		return nil
	})
}
