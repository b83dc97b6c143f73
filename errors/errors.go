package errors

import (
	"fmt"
	"net/http"
)

// Defaults applied by New when the caller leaves a field empty.
const (
	DefaultMessage    = "An error occurred."
	DefaultStatusCode = http.StatusInternalServerError
	DefaultName       = "CustomError"
)

// Known is implemented by errors whose status code and message are safe to
// send to clients verbatim.
type Known interface {
	error
	HTTPStatus() int
	Kind() string
	PublicMessage() string
}

// Namer exposes a kind name without claiming a client-safe status or message.
type Namer interface {
	Kind() string
}

// AppError is the unified application error type.
type AppError struct {
	// Message is the human-readable message sent to clients.
	Message string `json:"message"`
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`
	// Name identifies the error kind, e.g. "BadRequestError".
	Name string `json:"type"`
	// Cause is the underlying error, never exposed to clients.
	Cause error `json:"-"`
}

var _ Known = (*AppError)(nil)

// New creates an AppError. Empty arguments fall back to DefaultMessage,
// DefaultStatusCode and DefaultName.
func New(message string, statusCode int, name string) *AppError {
	if message == "" {
		message = DefaultMessage
	}
	if statusCode == 0 {
		statusCode = DefaultStatusCode
	}
	if name == "" {
		name = DefaultName
	}
	return &AppError{Message: message, StatusCode: statusCode, Name: name}
}

// Error returns the string representation of the error. It is safe on a
// nil receiver.
func (e *AppError) Error() string {
	if e == nil {
		return "<nil AppError>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// HTTPStatus returns the HTTP status code.
func (e *AppError) HTTPStatus() int { return e.StatusCode }

// Kind returns the kind name.
func (e *AppError) Kind() string { return e.Name }

// PublicMessage returns the client-facing message.
func (e *AppError) PublicMessage() string { return e.Message }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// --- Predefined constructors ---
//
// Each constructor fixes the status code and kind name; an empty message
// selects the kind's default message.

// BadRequest creates a 400 BadRequestError.
func BadRequest(message string) *AppError { return KindBadRequest.New(message) }

// Unauthorized creates a 401 UnauthorizedError.
func Unauthorized(message string) *AppError { return KindUnauthorized.New(message) }

// PaymentRequired creates a 402 PaymentRequiredError.
func PaymentRequired(message string) *AppError { return KindPaymentRequired.New(message) }

// Forbidden creates a 403 ForbiddenError.
func Forbidden(message string) *AppError { return KindForbidden.New(message) }

// NotFound creates a 404 NotFoundError.
func NotFound(message string) *AppError { return KindNotFound.New(message) }

// MethodNotAllowed creates a 405 MethodNotAllowedError.
func MethodNotAllowed(message string) *AppError { return KindMethodNotAllowed.New(message) }

// NotAcceptable creates a 406 NotAcceptableError.
func NotAcceptable(message string) *AppError { return KindNotAcceptable.New(message) }

// RequestTimeout creates a 408 RequestTimeoutError.
func RequestTimeout(message string) *AppError { return KindRequestTimeout.New(message) }

// Conflict creates a 409 ConflictError.
func Conflict(message string) *AppError { return KindConflict.New(message) }

// PayloadTooLarge creates a 413 PayloadTooLargeError.
func PayloadTooLarge(message string) *AppError { return KindPayloadTooLarge.New(message) }

// TooManyRequests creates a 429 TooManyRequestsError.
func TooManyRequests(message string) *AppError { return KindTooManyRequests.New(message) }

// InternalServer creates a 500 InternalServerError.
func InternalServer(message string) *AppError { return KindInternalServer.New(message) }

// NotImplemented creates a 501 NotImplementedError.
func NotImplemented(message string) *AppError { return KindNotImplemented.New(message) }

// BadGateway creates a 502 BadGatewayError.
func BadGateway(message string) *AppError { return KindBadGateway.New(message) }

// ServiceUnavailable creates a 503 ServiceUnavailableError.
func ServiceUnavailable(message string) *AppError { return KindServiceUnavailable.New(message) }

// GatewayTimeout creates a 504 GatewayTimeoutError.
func GatewayTimeout(message string) *AppError { return KindGatewayTimeout.New(message) }

// HTTPVersionNotSupported creates a 505 HTTPVersionNotSupportedError.
func HTTPVersionNotSupported(message string) *AppError {
	return KindHTTPVersionNotSupported.New(message)
}

// VariantAlsoNegotiates creates a 506 VariantAlsoNegotiatesError.
func VariantAlsoNegotiates(message string) *AppError {
	return KindVariantAlsoNegotiates.New(message)
}

// InsufficientStorage creates a 507 InsufficientStorageError.
func InsufficientStorage(message string) *AppError { return KindInsufficientStorage.New(message) }

// BandwidthLimitExceeded creates a 509 BandwidthLimitExceededError.
func BandwidthLimitExceeded(message string) *AppError {
	return KindBandwidthLimitExceeded.New(message)
}

// NetworkAuthenticationRequired creates a 511 NetworkAuthenticationRequiredError.
func NetworkAuthenticationRequired(message string) *AppError {
	return KindNetworkAuthenticationRequired.New(message)
}
