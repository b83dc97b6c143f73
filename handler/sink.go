package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sink is a response object written to imperatively: set the status, then
// emit a JSON body. *gin.Context satisfies it.
type Sink interface {
	Status(code int)
	JSON(code int, obj any)
}

// writtenSink is implemented by sinks that can tell whether the response
// has already been started.
type writtenSink interface {
	Written() bool
}

// SinkHandler is an imperative handler for any Sink.
type SinkHandler func(r *http.Request, s Sink) error

// GinHandler is a Gin handler that may fail.
type GinHandler func(c *gin.Context) error

// HTTPHandler is a net/http handler that may fail.
type HTTPHandler func(w http.ResponseWriter, r *http.Request) error

// Sink wraps an imperative handler for an arbitrary Sink.
func (w *Wrapper) Sink(h SinkHandler) func(r *http.Request, s Sink) {
	return func(r *http.Request, s Sink) {
		w.serveSink(r, s, func() error { return h(r, s) })
	}
}

// Gin wraps a failing Gin handler. On failure the error envelope is written
// and the rest of the chain is aborted.
func (w *Wrapper) Gin(h GinHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		w.serveSink(c.Request, ginSink{c: c}, func() error { return h(c) })
	}
}

// HTTP wraps a failing net/http handler.
func (w *Wrapper) HTTP(h HTTPHandler) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		tw := newTrackingWriter(rw)
		err := capture(func() error { return h(tw, r) })
		if err == nil {
			return
		}

		f := w.fail(imperative, err, r)
		if tw.wroteHeader {
			w.dropped(r, f)
			return
		}
		tw.Header().Set("Content-Type", contentTypeJSON)
		tw.WriteHeader(f.status)
		_, _ = tw.Write(w.encode(f))
	}
}

func (w *Wrapper) serveSink(r *http.Request, s Sink, run func() error) {
	err := capture(run)
	if err == nil {
		return
	}

	f := w.fail(imperative, err, r)
	if ws, ok := s.(writtenSink); ok && ws.Written() {
		w.dropped(r, f)
		return
	}
	body, _ := w.encodable(f)
	s.Status(f.status)
	s.JSON(f.status, body)
}

// WrapGin is shorthand for New(opts).Gin(h).
func WrapGin(h GinHandler, opts Options) gin.HandlerFunc {
	return New(opts).Gin(h)
}

// WrapHTTP is shorthand for New(opts).HTTP(h).
func WrapHTTP(h HTTPHandler, opts Options) http.HandlerFunc {
	return New(opts).HTTP(h)
}

type ginSink struct {
	c *gin.Context
}

func (s ginSink) Status(code int) { s.c.Status(code) }

func (s ginSink) JSON(code int, obj any) { s.c.AbortWithStatusJSON(code, obj) }

func (s ginSink) Written() bool { return s.c.Writer.Written() }

// trackingWriter records whether the handler started the response.
// It delegates Flush and Unwrap so streaming keeps working.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func newTrackingWriter(w http.ResponseWriter) *trackingWriter {
	return &trackingWriter{ResponseWriter: w}
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.wroteHeader = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	tw.wroteHeader = true
	return tw.ResponseWriter.Write(b)
}

// Flush implements http.Flusher.
func (tw *trackingWriter) Flush() {
	if f, ok := tw.ResponseWriter.(http.Flusher); ok {
		tw.wroteHeader = true
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (tw *trackingWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}
