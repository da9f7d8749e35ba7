package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"arithma_tech/config"
)

func TestBuildRequiresExporter(t *testing.T) {
	_, _, err := NewTraceProviderBuilder("arithma").Build()
	assert.Error(t, err)
}

func TestBuildExportsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp, closeFn, err := NewTraceProviderBuilder("arithma").SetExporter(exp).Build()
	require.NoError(t, err)

	ctx := context.Background()
	_, span := tp.Tracer("test").Start(ctx, "Request")
	span.End()
	require.NoError(t, tp.ForceFlush(ctx))

	// Shutdown resets the in-memory exporter, so read the spans first.
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "Request", spans[0].Name)

	require.NoError(t, closeFn(ctx))
}

func TestInitGlobalProviderNone(t *testing.T) {
	closeFn, err := InitGlobalProvider(context.Background(), "arithma", config.OTEL{Exporter: "none"})
	require.NoError(t, err)
	assert.NoError(t, closeFn(context.Background()))

	_, err = InitGlobalProvider(context.Background(), "arithma", config.OTEL{Exporter: "zipkin"})
	assert.Error(t, err)
}
