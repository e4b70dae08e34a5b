// Package observability wires optional OpenTelemetry tracing and metrics
// into the shell. Everything is off unless Config.Enabled is set; without a
// provider the global otel no-op implementations absorb spans and counters.
//
// Setup:
//
//	shutdown, err := observability.Setup(ctx, &cfg.Observability)
//	defer shutdown(context.Background())
//
// Spans:
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanDBQuery)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("sql"))
//	metrics.RecordQuery(ctx, "sqlite:gollama.db", "select", "ok", duration)
package observability
