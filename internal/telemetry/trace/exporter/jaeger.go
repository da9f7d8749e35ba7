package exporter

import (
	"fmt"
	"net"
	"strings"

	"go.opentelemetry.io/otel/exporters/jaeger"
)

// NewJaeger exports spans to jaeger. An http(s) endpoint targets the collector,
// a bare host:port targets the UDP agent.
func NewJaeger(endpoint string) (*jaeger.Exporter, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("jaeger exporter: endpoint is not configured")
	}

	var opt jaeger.EndpointOption
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		opt = jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint))
	} else {
		host, port, err := net.SplitHostPort(endpoint)
		if err != nil {
			return nil, fmt.Errorf("jaeger exporter: agent endpoint %q: %w", endpoint, err)
		}
		opt = jaeger.WithAgentEndpoint(jaeger.WithAgentHost(host), jaeger.WithAgentPort(port))
	}

	traceExp, err := jaeger.New(opt)
	if err != nil {
		return nil, fmt.Errorf("jaeger exporter: %w", err)
	}
	return traceExp, nil
}
