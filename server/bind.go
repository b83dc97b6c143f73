package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/validation"
)

// Messages for rejected request bodies.
const (
	MessageEmptyBody   = "Request body is required."
	MessageInvalidJSON = "Request body is not valid JSON."
)

// BindJSON decodes the request body into v and validates it. Failures are
// Known errors ready to be returned from a wrapped handler:
// PayloadTooLargeError past the body size limit, BadRequestError for
// malformed JSON and for validation failures.
func BindJSON(c *gin.Context, v any) error {
	return checkBody(c.ShouldBindWith(v, binding.JSON), v)
}

// DecodeJSON is BindJSON for net/http and value handlers.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return apperrors.BadRequest(MessageEmptyBody)
	}
	return checkBody(json.NewDecoder(r.Body).Decode(v), v)
}

func checkBody(err error, v any) error {
	if err != nil {
		return bodyError(err)
	}
	return validation.Validate(v)
}

func bodyError(err error) error {
	var (
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		return apperrors.PayloadTooLarge("").WithCause(err)
	case errors.Is(err, io.EOF):
		return apperrors.BadRequest(MessageEmptyBody).WithCause(err)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.BadRequest(MessageInvalidJSON).WithCause(err)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperrors.BadRequest(typeErr.Field + ": must be " + typeErr.Type.String()).WithCause(err)
	default:
		return apperrors.BadRequest(MessageInvalidJSON).WithCause(err)
	}
}
