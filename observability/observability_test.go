package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("gollama")

	if cfg.ServiceName != "gollama" {
		t.Errorf("expected ServiceName 'gollama', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true for the local endpoint")
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if cfg.Enabled {
		t.Error("expected export disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig("svc"), false},
		{"rate too high", Config{SampleRate: 1.5}, true},
		{"negative rate", Config{SampleRate: -0.1}, true},
		{"enabled without name", Config{Enabled: true, SampleRate: 1}, true},
		{"negative interval", Config{ServiceName: "svc", Interval: -time.Second}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetupDisabled(t *testing.T) {
	cfg := DefaultConfig("svc")
	shutdown, err := Setup(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestSetupNilConfig(t *testing.T) {
	shutdown, err := Setup(context.Background(), nil)
	if err != nil || shutdown == nil {
		t.Fatalf("expected no-op setup, got err=%v", err)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRequest(ctx, "GET", 200, 5*time.Millisecond)
	metrics.RecordQuery(ctx, "sqlite:gollama.db", "select", "ok", 2*time.Millisecond)
	metrics.DatabaseOpened(ctx, 1)
	metrics.DatabaseOpened(ctx, -1)
	metrics.RecordError(ctx, "execute", "sql")
}

func TestOperationContext(t *testing.T) {
	oc := NewOperationContext("sql", "select", "sqlite::memory:", nil)

	if oc.Component != "sql" {
		t.Errorf("expected Component 'sql', got %s", oc.Component)
	}
	if oc.OperationName != "select" {
		t.Errorf("expected OperationName 'select', got %s", oc.OperationName)
	}
	if oc.StartTime.IsZero() {
		t.Error("expected StartTime to be set")
	}

	ctx, span := oc.Start(context.Background(), SpanDBQuery)
	oc.End(ctx, span, nil)
}

func TestOperationContextRecordsSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	metrics, _ := NewMetrics(noop.NewMeterProvider().Meter("test"))
	oc := NewOperationContext("sql", "execute", "sqlite::memory:", metrics)
	ctx, span := oc.Start(context.Background(), SpanDBExec)
	oc.End(ctx, span, fmt.Errorf("constraint failed"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanDBExec {
		t.Errorf("expected span %q, got %q", SpanDBExec, spans[0].Name)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}
}

func TestOperationContextDuration(t *testing.T) {
	oc := NewOperationContext("sql", "select", "", nil)
	oc.StartTime = time.Now().Add(-50 * time.Millisecond)

	duration := oc.Duration()
	if duration < 45*time.Millisecond || duration > 500*time.Millisecond {
		t.Errorf("expected duration around 50ms, got %v", duration)
	}
}

func TestSetSpanAttribute(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), "test-attrs")

	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "string-slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := len(spans[0].Attributes); got != 6 {
		t.Errorf("expected 6 attributes, got %d", got)
	}
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), fmt.Errorf("no span error"))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()

	if span == nil || ctx == nil {
		t.Fatal("expected non-nil span and context")
	}
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected span from context")
	}
}
