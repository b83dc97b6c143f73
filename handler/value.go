package handler

import (
	"net/http"

	"github.com/kbukum/errguard/logger"
)

// ValueHandler returns its response instead of writing it. A nil response
// with a nil error means 204 No Content.
type ValueHandler func(r *http.Request) (*Response, error)

// Value wraps a value-returning handler. The returned handler never fails:
// errors and panics become JSON error responses, and a successful response
// is passed through as the same value.
func (w *Wrapper) Value(h ValueHandler) ValueHandler {
	return func(r *http.Request) (*Response, error) {
		var resp *Response
		err := capture(func() error {
			var herr error
			resp, herr = h(r)
			return herr
		})
		if err != nil {
			f := w.fail(valueReturning, err, r)
			return newJSONBytes(f.status, w.encode(f)), nil
		}
		if resp == nil {
			return NoContent(), nil
		}
		return resp, nil
	}
}

// Handler adapts a value-returning handler to http.Handler.
func (w *Wrapper) Handler(h ValueHandler) http.Handler {
	wrapped := w.Value(h)
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		resp, _ := wrapped(r)
		if err := resp.Render(rw); err != nil {
			w.report(func() {
				w.opts.Fallback.Warn("Failed to write response", logger.ErrorFields("render", err))
			})
		}
	})
}

// WrapValue is shorthand for New(opts).Value(h).
func WrapValue(h ValueHandler, opts Options) ValueHandler {
	return New(opts).Value(h)
}
