// Package handler wraps HTTP handlers so that any failure inside them,
// returned or panicked, becomes a structured JSON error response.
//
// Errors implementing errors.Known (every *errors.AppError does) keep their
// status code and message. Anything else is collapsed to the configured
// default status and message so internal details never reach the client.
//
// Two response conventions are supported through explicit entry points:
//
//   - Imperative: the handler writes to a response sink (Gin, HTTP, Sink).
//     On failure the wrapper sets the status and writes the JSON envelope.
//   - Value-returning: the handler returns a *Response (Value, Handler).
//     On failure the wrapper returns a JSON *Response instead; a nil result
//     becomes 204 No Content.
//
// # Usage
//
//	w := handler.New(handler.Options{})
//	engine.POST("/users", w.Gin(func(c *gin.Context) error {
//	    return errors.BadRequest("Name is required.")
//	}))
//	// 400 {"error":{"message":"Name is required.","type":"BadRequestError"}}
package handler
