package errors

import (
	stderrors "errors"
	"reflect"
)

// ErrorResponse is the JSON envelope returned to clients:
// {"error":{"message":"...","type":"..."}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Message: e.Message,
			Type:    e.Name,
		},
	}
}

// AsKnown finds the first error in err's chain that implements Known.
// A nil pointer matching Known, such as a typed-nil *AppError returned as
// an error, does not count.
func AsKnown(err error) (Known, bool) {
	var known Known
	if stderrors.As(err, &known) && !isNil(known) {
		return known, true
	}
	return nil, false
}

// AsNamer finds the first error in err's chain that implements Namer,
// skipping nil pointers like AsKnown.
func AsNamer(err error) (Namer, bool) {
	var named Namer
	if stderrors.As(err, &named) && !isNil(named) {
		return named, true
	}
	return nil, false
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return v == nil
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err's chain holds a Known error of the given kind.
func IsKind(err error, kind Kind) bool {
	known, ok := AsKnown(err)
	return ok && known.Kind() == kind.Name && known.HTTPStatus() == kind.StatusCode
}
