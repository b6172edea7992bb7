package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// OTLPExporter ships completed visits to an OTLP endpoint as spans.
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool
}

// NewOTLPExporter creates an exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil if endpoint not configured (disabled); a nil exporter is valid
// and all its methods no-op.
func NewOTLPExporter(ctx context.Context) (*OTLPExporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil // Disabled
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "tabdeck"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &OTLPExporter{
		provider: provider,
		tracer:   provider.Tracer("tabdeck/telemetry"),
		enabled:  true,
	}, nil
}

// ExportVisit records one completed visit as a "tab.visit" span with
// explicit start and end timestamps. The batch processor ships it in the
// background, so this never blocks on the network.
func (e *OTLPExporter) ExportVisit(ctx context.Context, v Visit) error {
	if e == nil || !e.enabled {
		return nil
	}
	if v.End.IsZero() {
		return nil // Still open; nothing to export
	}

	_, span := e.tracer.Start(ctx, "tab.visit",
		oteltrace.WithTimestamp(v.Start),
	)
	span.SetAttributes(
		attribute.String("tabdeck.tab.id", v.TabID),
		attribute.Int64("tabdeck.visit.duration_ms", v.Duration().Milliseconds()),
	)
	span.End(oteltrace.WithTimestamp(v.End))
	return nil
}

// Shutdown flushes and closes the exporter.
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
