package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/kbukum/errguard/errors"
	"github.com/kbukum/errguard/logger"
)

// fallbackType is reported when a failure carries no kind name.
const fallbackType = "Error"

// convention identifies how a wrapped handler delivers its response.
type convention int

const (
	imperative convention = iota
	valueReturning
)

func (c convention) String() string {
	if c == valueReturning {
		return "value"
	}
	return "imperative"
}

func (c convention) label() string {
	if c == valueReturning {
		return LabelValue
	}
	return LabelImperative
}

// Wrapper turns handler failures into JSON error responses. It is immutable
// after New and safe for concurrent use.
type Wrapper struct {
	opts      Options
	telemetry *telemetry
}

// New creates a Wrapper. Unset options take their defaults.
func New(opts Options) *Wrapper {
	opts.ApplyDefaults()
	return &Wrapper{
		opts:      opts,
		telemetry: newTelemetry(opts.Meter, opts.Fallback),
	}
}

// Options returns the effective options, defaults applied.
func (w *Wrapper) Options() Options {
	return w.opts
}

// PanicError is the error recorded when a wrapped handler panics.
type PanicError struct {
	Value any
	Stack []byte
}

// Error returns the string representation of the panic.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error, so a panicked
// *errors.AppError keeps its status code.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// capture runs fn and converts a panic into a *PanicError.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func capture(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// failure is the classified, formatted outcome of one failed invocation.
type failure struct {
	status   int
	body     any
	fallback apperrors.ErrorBody
}

// fail logs, classifies and formats err. If that panics, for instance on
// an error value whose methods dereference a nil receiver, the default
// envelope is used.
func (w *Wrapper) fail(conv convention, err error, r *http.Request) (f failure) {
	defer func() {
		if v := recover(); v != nil {
			fallback := apperrors.ErrorBody{Message: w.opts.DefaultMessage, Type: fallbackType}
			f = failure{
				status:   w.opts.DefaultStatusCode,
				body:     apperrors.ErrorResponse{Error: fallback},
				fallback: fallback,
			}
			w.report(func() {
				w.opts.Fallback.Error("Error handling failure panicked", map[string]interface{}{
					logger.FieldLabel: conv.label(),
					logger.FieldError: fmt.Sprintf("%v", v),
				})
			})
		}
	}()

	w.log(conv.label(), err)

	status, message, known := w.classify(err)
	kind := kindOf(err)
	fallback := apperrors.ErrorBody{Message: message, Type: kind}

	w.telemetry.record(requestContext(r), conv, err, status, kind, known)

	return failure{
		status:   status,
		body:     w.format(err, r, fallback),
		fallback: fallback,
	}
}

// classify returns the status and message to expose for err. Only Known
// errors are trusted; anything else gets the configured defaults whatever
// fields it carries.
func (w *Wrapper) classify(err error) (status int, message string, known bool) {
	k, ok := apperrors.AsKnown(err)
	if !ok {
		return w.opts.DefaultStatusCode, w.opts.DefaultMessage, false
	}

	status = k.HTTPStatus()
	if status < 100 || status > 599 {
		status = w.opts.DefaultStatusCode
	}
	message = k.PublicMessage()
	if message == "" {
		message = w.opts.DefaultMessage
	}
	return status, message, true
}

// kindOf returns the kind name reported in the envelope "type" field.
func kindOf(err error) string {
	if k, ok := apperrors.AsKnown(err); ok && k.Kind() != "" {
		return k.Kind()
	}
	if named, ok := apperrors.AsNamer(err); ok && named.Kind() != "" {
		return named.Kind()
	}
	return fallbackType
}

// format builds the response body. The formatter fallback is the bare
// ErrorBody, without the outer "error" key.
func (w *Wrapper) format(err error, r *http.Request, fallback apperrors.ErrorBody) any {
	if w.opts.FormatError == nil {
		return apperrors.ErrorResponse{Error: fallback}
	}

	body, ferr := w.callFormatter(err, r)
	if ferr != nil {
		w.report(func() {
			w.opts.Fallback.Error("Error formatting error response", map[string]interface{}{
				logger.FieldError: ferr.Error(),
				"original_error":  err.Error(),
			})
		})
		return fallback
	}
	return body
}

func (w *Wrapper) callFormatter(err error, r *http.Request) (body any, ferr error) {
	defer func() {
		if v := recover(); v != nil {
			ferr = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return w.opts.FormatError(err, r)
}

// log invokes the configured LogFunc. A panicking LogFunc is reported on the
// fallback channel and otherwise ignored.
func (w *Wrapper) log(label string, err error) {
	defer func() {
		if v := recover(); v != nil {
			w.report(func() {
				w.opts.Fallback.Warn("Error logger panicked", map[string]interface{}{
					logger.FieldLabel: label,
					logger.FieldError: fmt.Sprintf("%v", v),
				})
			})
		}
	}()
	w.opts.Logger(label, err)
}

// report runs a best-effort secondary log call.
func (w *Wrapper) report(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// encode marshals the failure body, falling back to the minimal body when
// the formatter returned something that cannot be encoded.
func (w *Wrapper) encode(f failure) []byte {
	_, b := w.encodable(f)
	return b
}

// encodable returns the body to send and its encoding: the failure body
// when it marshals, otherwise the minimal fallback body.
func (w *Wrapper) encodable(f failure) (any, []byte) {
	b, err := json.Marshal(f.body)
	if err == nil {
		return f.body, b
	}
	w.report(func() {
		w.opts.Fallback.Error("Error encoding error response", logger.ErrorFields("encode", err))
	})
	b, _ = json.Marshal(f.fallback)
	return f.fallback, b
}

// dropped logs a failure whose response could not be sent because the
// handler had already started writing.
func (w *Wrapper) dropped(r *http.Request, f failure) {
	fields := map[string]interface{}{logger.FieldStatus: f.status}
	if r != nil {
		fields[logger.FieldMethod] = r.Method
		fields[logger.FieldPath] = r.URL.Path
	}
	w.report(func() {
		w.opts.Fallback.Warn("Response already written, error response dropped", fields)
	})
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
