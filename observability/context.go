package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext tracks a single traced operation such as one SQL
// statement issued over IPC.
type OperationContext struct {
	Component     string
	OperationName string
	Database      string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(component, operationName, database string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		Component:     component,
		OperationName: operationName,
		Database:      database,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// Start starts the span for the operation.
func (oc *OperationContext) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrComponent, oc.Component),
		attribute.String(AttrOperationName, oc.OperationName),
	)
	if oc.Database != "" {
		span.SetAttributes(attribute.String(AttrDatabase, oc.Database))
	}
	return ctx, span
}

// End ends the span and records the query metrics.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, err error) {
	duration := time.Since(oc.StartTime)
	status := "ok"

	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordQuery(ctx, oc.Database, oc.OperationName, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, oc.OperationName, oc.Component)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
