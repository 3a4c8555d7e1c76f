package requesterresty

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// OTelConfig configures the OpenTelemetry instrumentation EnableTracing
// installs.
type OTelConfig struct {
	TracerProvider trace.TracerProvider
	Propagators    propagation.TextMapPropagator
	ServiceName    string
}

// DefaultOTelConfig returns a config built from the global tracer
// provider and propagator.
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		TracerProvider: otel.GetTracerProvider(),
		Propagators:    otel.GetTextMapPropagator(),
		ServiceName:    "go-apigen-client",
	}
}

// EnableTracing wraps the client's underlying HTTP transport with
// otelhttp instrumentation, so every dispatched request produces a span
// following OpenTelemetry's HTTP client semantic conventions.
func (c *Client) EnableTracing(config *OTelConfig) error {
	if config == nil {
		config = DefaultOTelConfig()
	}

	httpClient := c.client.Client()
	if httpClient == nil {
		return nil
	}

	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	httpClient.Transport = otelhttp.NewTransport(transport,
		otelhttp.WithTracerProvider(config.TracerProvider),
		otelhttp.WithPropagators(config.Propagators),
	)

	c.logger.Info("tracing enabled", zap.String("service_name", config.ServiceName))
	return nil
}
