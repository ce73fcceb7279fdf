package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerUsesGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)

	_, span := Tracer("adventure").Start(context.Background(), "adventure.command")
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, expected 1", len(spans))
	}
	if got := spans[0].InstrumentationScope().Name; got != "bash-bonanza/adventure" {
		t.Errorf("scope name = %q, expected bash-bonanza/adventure", got)
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "x")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("NoopTracer() produced a valid span context")
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), "custom")
	if err != nil {
		t.Fatalf("newResource() failed: %v", err)
	}
	v, ok := res.Set().Value(attribute.Key("service.name"))
	if !ok || v.AsString() != "custom" {
		t.Errorf("service.name = %v, expected custom", v.AsString())
	}
}
