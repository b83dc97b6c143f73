package middleware

import (
	"net/http"
	"strings"

	"github.com/kbukum/errguard/auth"
	"github.com/kbukum/errguard/auth/authctx"
	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/handler"
)

// Messages for rejected Authorization headers.
const (
	MessageMissingToken  = "Authorization header required."
	MessageInvalidScheme = "Authorization header must use the Bearer scheme."
)

// AuthConfig configures Auth.
type AuthConfig struct {
	Validator auth.TokenValidator
	// SkipPaths are path prefixes that bypass authentication.
	SkipPaths []string
}

// Auth validates Bearer tokens and stores the claims with authctx.Set.
// Rejections are UnauthorizedError values rendered by w. Errors from the
// validator are passed through, so a validator returning its own Known
// error controls the message.
func Auth(w *handler.Wrapper, cfg AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return w.HTTP(func(rw http.ResponseWriter, r *http.Request) error {
			for _, skip := range cfg.SkipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(rw, r)
					return nil
				}
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				return apperrors.Unauthorized(MessageMissingToken)
			}
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return apperrors.Unauthorized(MessageInvalidScheme)
			}

			claims, err := cfg.Validator.ValidateToken(token)
			if err != nil {
				if _, known := apperrors.AsKnown(err); known {
					return err
				}
				return apperrors.Unauthorized("").WithCause(err)
			}

			next.ServeHTTP(rw, r.WithContext(authctx.Set(r.Context(), claims)))
			return nil
		})
	}
}
