package validation

import (
	"net/http"
	"strings"

	apperrors "github.com/kbukum/errguard/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Message
}

// Error reports failed checks as a BadRequestError. It satisfies
// errors.Known, so handlers return it as is.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	return apperrors.KindBadRequest.Name + ": " + e.PublicMessage()
}

func (e *Error) HTTPStatus() int { return http.StatusBadRequest }

func (e *Error) Kind() string { return apperrors.KindBadRequest.Name }

// PublicMessage joins the field messages; with no fields it is the
// BadRequestError default.
func (e *Error) PublicMessage() string {
	if len(e.Fields) == 0 {
		return apperrors.KindBadRequest.DefaultMessage
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

