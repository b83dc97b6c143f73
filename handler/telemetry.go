package handler

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/errguard/logger"
)

// MetricFailures counts handler failures.
const MetricFailures = "handler.failures"

type telemetry struct {
	failures metric.Int64Counter
}

func newTelemetry(m metric.Meter, log *logger.Logger) *telemetry {
	t := &telemetry{}
	if m == nil {
		return t
	}
	counter, err := m.Int64Counter(MetricFailures,
		metric.WithDescription("Handler failures converted to error responses"),
	)
	if err != nil {
		log.Warn("Failed to create failure counter", logger.ErrorFields("metric", err))
		return t
	}
	t.failures = counter
	return t
}

// record marks the active span as failed and counts the failure.
func (t *telemetry) record(ctx context.Context, conv convention, err error, status int, kind string, known bool) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		span.SetAttributes(
			attribute.Int("http.response.status_code", status),
			attribute.String("error.type", kind),
		)
	}

	if t.failures == nil {
		return
	}
	t.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("convention", conv.String()),
		attribute.String("type", kind),
		attribute.Int("status", status),
		attribute.Bool("known", known),
	))
}
