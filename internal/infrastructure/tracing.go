package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// ServiceName identifies this binary in trace output
	ServiceName    = "covid-case-report-processor"
	ServiceVersion = "1.0.0"
	tracerName     = "covidcli"
)

// TracingProviders holds the tracing provider and tracer for the run.
// When tracing is disabled both are no-ops and Shutdown does nothing.
type TracingProviders struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
}

// InitializeTracing sets up OpenTelemetry tracing with a stdout exporter.
// Tracing is a development aid for inspecting per-stage timings; it is
// disabled by default and the pipeline only ever records one linear chain
// of spans.
func InitializeTracing(ctx context.Context, enabled bool, logger *slog.Logger) (*TracingProviders, error) {
	if !enabled {
		return &TracingProviders{Tracer: noop.NewTracerProvider().Tracer(tracerName)}, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	logger.InfoContext(ctx, "tracing initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "stdout"))

	return &TracingProviders{
		TracerProvider: tp,
		Tracer:         tp.Tracer(tracerName),
	}, nil
}

// Shutdown flushes and stops the tracer provider
func (p *TracingProviders) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	return p.TracerProvider.Shutdown(ctx)
}
