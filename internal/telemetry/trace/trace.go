package trace

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

// CloseFunc flushes and stops a provider.
type CloseFunc func(ctx context.Context) error

// TraceProviderBuilder -.
type TraceProviderBuilder struct {
	name     string
	exporter sdktrace.SpanExporter
}

func NewTraceProviderBuilder(name string) *TraceProviderBuilder {
	return &TraceProviderBuilder{name: name}
}

func (b *TraceProviderBuilder) SetExporter(exp sdktrace.SpanExporter) *TraceProviderBuilder {
	b.exporter = exp
	return b
}

func (b *TraceProviderBuilder) Build() (*sdktrace.TracerProvider, CloseFunc, error) {
	if b.exporter == nil {
		return nil, nil, errors.New("trace provider: exporter is required")
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(b.name),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(b.exporter),
		sdktrace.WithResource(res),
	)

	return tp, tp.Shutdown, nil
}
