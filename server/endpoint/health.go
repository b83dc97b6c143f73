// Package endpoint provides the health and readiness routes.
package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/handler"
)

// Check tests one dependency. A non-nil error marks it unavailable.
type Check func(ctx context.Context) error

// Health always answers 200 with the service name and time.
func Health(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Ready runs every check. When any fails it returns a
// ServiceUnavailableError carrying the failures as its cause, so the client
// sees only the public 503 message.
func Ready(serviceName string, checks map[string]Check) handler.GinHandler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) error {
		var errs []error
		for _, name := range names {
			if err := checks[name](c.Request.Context()); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		if len(errs) > 0 {
			return apperrors.ServiceUnavailable("").WithCause(errors.Join(errs...))
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"service": serviceName,
			"checks":  names,
		})
		return nil
	}
}
