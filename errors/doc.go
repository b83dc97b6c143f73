// Package errors provides the application error taxonomy used by errguard.
//
// An AppError carries a client-safe message, the HTTP status code it maps
// to, and a kind name that is echoed into the JSON error envelope. The
// predefined kinds cover the common 4xx and 5xx statuses; applications add
// their own by declaring a Kind value or by implementing Known.
//
//	return errors.BadRequest("Name is required.")
//
//	var KindTeapot = errors.Kind{Name: "TeapotError", StatusCode: 418, DefaultMessage: "I'm a teapot."}
//	return KindTeapot.New("")
package errors
