package errors

import "net/http"

// Kind is a named error preset: a fixed status code, a kind name and the
// message used when the caller supplies none.
type Kind struct {
	Name           string
	StatusCode     int
	DefaultMessage string
}

// New creates an AppError of this kind. Only the message can be overridden.
func (k Kind) New(message string) *AppError {
	if message == "" {
		message = k.DefaultMessage
	}
	return &AppError{Message: message, StatusCode: k.StatusCode, Name: k.Name}
}

// Predefined kinds.
var (
	KindBadRequest = Kind{"BadRequestError", http.StatusBadRequest,
		"It seems there was an error with your request. Please check the data you entered and try again."}
	KindUnauthorized = Kind{"UnauthorizedError", http.StatusUnauthorized,
		"Unauthorized access. Please log in again."}
	KindPaymentRequired = Kind{"PaymentRequiredError", http.StatusPaymentRequired,
		"Payment is required to access this resource."}
	KindForbidden = Kind{"ForbiddenError", http.StatusForbidden,
		"Access denied."}
	KindNotFound = Kind{"NotFoundError", http.StatusNotFound,
		"The requested resource was not found."}
	KindMethodNotAllowed = Kind{"MethodNotAllowedError", http.StatusMethodNotAllowed,
		"The HTTP method used is not allowed for this resource."}
	KindNotAcceptable = Kind{"NotAcceptableError", http.StatusNotAcceptable,
		"The requested resource is not available in a format acceptable to your browser."}
	KindRequestTimeout = Kind{"RequestTimeoutError", http.StatusRequestTimeout,
		"The server timed out waiting for your request."}
	KindConflict = Kind{"ConflictError", http.StatusConflict,
		"A conflict occurred with the current state of the resource."}
	KindPayloadTooLarge = Kind{"PayloadTooLargeError", http.StatusRequestEntityTooLarge,
		"The request payload is too large."}
	KindTooManyRequests = Kind{"TooManyRequestsError", http.StatusTooManyRequests,
		"You have made too many requests in a short period of time."}
	KindInternalServer = Kind{"InternalServerError", http.StatusInternalServerError,
		"An internal server error occurred. Please try again later."}
	KindNotImplemented = Kind{"NotImplementedError", http.StatusNotImplemented,
		"This functionality has not been implemented."}
	KindBadGateway = Kind{"BadGatewayError", http.StatusBadGateway,
		"Received an invalid response from the upstream server."}
	KindServiceUnavailable = Kind{"ServiceUnavailableError", http.StatusServiceUnavailable,
		"The service is currently unavailable."}
	KindGatewayTimeout = Kind{"GatewayTimeoutError", http.StatusGatewayTimeout,
		"The upstream server failed to send a request in time."}
	KindHTTPVersionNotSupported = Kind{"HTTPVersionNotSupportedError", http.StatusHTTPVersionNotSupported,
		"The server does not support the HTTP protocol version used in the request."}
	KindVariantAlsoNegotiates = Kind{"VariantAlsoNegotiatesError", http.StatusVariantAlsoNegotiates,
		"Variant Also Negotiates."}
	KindInsufficientStorage = Kind{"InsufficientStorageError", http.StatusInsufficientStorage,
		"The server is unable to store the representation needed to complete the request."}
	// 509 has no net/http constant.
	KindBandwidthLimitExceeded = Kind{"BandwidthLimitExceededError", 509,
		"Bandwidth limit exceeded."}
	KindNetworkAuthenticationRequired = Kind{"NetworkAuthenticationRequiredError", http.StatusNetworkAuthenticationRequired,
		"Network authentication is required to access this resource."}
)

var predefined = []Kind{
	KindBadRequest,
	KindUnauthorized,
	KindPaymentRequired,
	KindForbidden,
	KindNotFound,
	KindMethodNotAllowed,
	KindNotAcceptable,
	KindRequestTimeout,
	KindConflict,
	KindPayloadTooLarge,
	KindTooManyRequests,
	KindInternalServer,
	KindNotImplemented,
	KindBadGateway,
	KindServiceUnavailable,
	KindGatewayTimeout,
	KindHTTPVersionNotSupported,
	KindVariantAlsoNegotiates,
	KindInsufficientStorage,
	KindBandwidthLimitExceeded,
	KindNetworkAuthenticationRequired,
}

// Kinds returns the predefined kinds ordered by status code.
func Kinds() []Kind {
	out := make([]Kind, len(predefined))
	copy(out, predefined)
	return out
}

// KindByName returns the predefined kind with the given name.
func KindByName(name string) (Kind, bool) {
	for _, k := range predefined {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// KindByStatus returns the predefined kind for an HTTP status code.
func KindByStatus(code int) (Kind, bool) {
	for _, k := range predefined {
		if k.StatusCode == code {
			return k, true
		}
	}
	return Kind{}, false
}
