package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json"

// Response is the value produced by value-returning handlers.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NoContent returns a 204 response with no body and no Content-Type.
func NoContent() *Response {
	return &Response{StatusCode: http.StatusNoContent, Header: http.Header{}}
}

// NewJSON returns a response carrying v encoded as JSON.
func NewJSON(status int, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response body: %w", err)
	}
	return newJSONBytes(status, b), nil
}

func newJSONBytes(status int, body []byte) *Response {
	h := http.Header{}
	h.Set("Content-Type", contentTypeJSON)
	return &Response{StatusCode: status, Header: h, Body: body}
}

// ContentType returns the Content-Type header, or "" when unset.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Render writes the response to w.
func (r *Response) Render(w http.ResponseWriter) error {
	for k, values := range r.Header {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(r.Body) == 0 {
		return nil
	}
	if _, err := w.Write(r.Body); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
