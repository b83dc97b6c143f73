// Package observability sets up OpenTelemetry tracing and metrics for
// errguard services.
//
// Setup installs global tracer and meter providers exporting over OTLP
// HTTP. The handler package records failures on the active span and on
// the handler.failures counter when given a meter:
//
//	p, err := observability.Setup(ctx, cfg.Observability)
//	defer p.Shutdown(ctx)
//	w := handler.New(handler.Options{Meter: p.MeterFor("errguard")})
package observability
