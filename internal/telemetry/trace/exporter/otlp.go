package exporter

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"google.golang.org/grpc"
)

const dialTimeout = 5 * time.Second

// NewOTLP exports spans over OTLP/gRPC. It blocks until the collector answers or the dial times out.
func NewOTLP(ctx context.Context, endpoint string) (*otlptrace.Exporter, error) {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	traceClient := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithBlock()))

	traceExp, err := otlptrace.New(ctx, traceClient)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter %s: %w", endpoint, err)
	}
	return traceExp, nil
}
