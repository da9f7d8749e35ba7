package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"arithma_tech/config"
	"arithma_tech/internal/telemetry/trace/exporter"
)

// InitGlobalProvider installs the exporter selected by cfg as the global tracer provider.
// With exporter "none" the global no-op provider stays in place and a no-op CloseFunc is returned.
func InitGlobalProvider(ctx context.Context, name string, cfg config.OTEL) (CloseFunc, error) {
	var (
		spanExporter sdktrace.SpanExporter
		err          error
	)

	switch cfg.Exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "jaeger":
		spanExporter, err = exporter.NewJaeger(cfg.JaegerEndpoint)
	case "otlp":
		spanExporter, err = exporter.NewOTLP(ctx, cfg.OTLPEndpoint)
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
	if err != nil {
		return nil, err
	}

	tracerProvider, closeFn, err := NewTraceProviderBuilder(name).
		SetExporter(spanExporter).
		Build()
	if err != nil {
		return nil, err
	}

	// set global propagator to tracecontext (the default is no-op).
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tracerProvider)

	return closeFn, nil
}
