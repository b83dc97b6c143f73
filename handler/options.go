package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/errguard/logger"
)

// Log labels passed to LogFunc so operators can tell which path failed.
const (
	LabelImperative = "Error in route handler"
	LabelValue      = "Error in value route handler"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultStatusCode = http.StatusInternalServerError
	DefaultMessage    = "An internal server error occurred. Please try again later."
)

// LogFunc observes a handler failure. It must not affect the response.
type LogFunc func(label string, err error)

// FormatFunc builds the response body for a failure, replacing the default
// envelope. Returning an error (or panicking) selects the fallback body.
type FormatFunc func(err error, r *http.Request) (any, error)

// Config holds the file-loadable part of the wrapper options.
type Config struct {
	DefaultStatusCode int    `yaml:"default_status_code" mapstructure:"default_status_code"`
	DefaultMessage    string `yaml:"default_message" mapstructure:"default_message"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.DefaultStatusCode == 0 {
		c.DefaultStatusCode = DefaultStatusCode
	}
	if c.DefaultMessage == "" {
		c.DefaultMessage = DefaultMessage
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultStatusCode < 400 || c.DefaultStatusCode > 599 {
		return fmt.Errorf("errors.default_status_code must be between 400 and 599 (got: %d)", c.DefaultStatusCode)
	}
	return nil
}

// Options configures a Wrapper. Nil functions are treated as absent.
type Options struct {
	Config

	// Logger receives every failure with a convention label. Defaults to an
	// error-level entry on Fallback.
	Logger LogFunc
	// FormatError replaces the default envelope when set.
	FormatError FormatFunc
	// Fallback is the log channel for the wrapper's own problems: failing
	// formatters, panicking loggers, responses that were already written.
	Fallback *logger.Logger
	// Meter, when set, receives a failure counter.
	Meter metric.Meter
}

// ApplyDefaults fills in the default status, message and log channels.
func (o *Options) ApplyDefaults() {
	o.Config.ApplyDefaults()
	if o.Fallback == nil {
		o.Fallback = logger.WithComponent("handler")
	}
	if o.Logger == nil {
		o.Logger = fallbackLogFunc(o.Fallback)
	}
}

// fallbackLogFunc logs failures on l at error level.
func fallbackLogFunc(l *logger.Logger) LogFunc {
	return func(label string, err error) {
		fields := map[string]interface{}{
			logger.FieldError: err.Error(),
			logger.FieldType:  kindOf(err),
		}
		var pe *PanicError
		if stderrors.As(err, &pe) {
			fields["stack"] = string(pe.Stack)
		}
		l.Error(label, fields)
	}
}
