// Package tracing provides a shared OTel tracer helper.
//
// When no TracerProvider is registered (e.g. in tests or local dev without OTel),
// the global no-op provider is used and all calls are inert.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "civiq-website"

// Start creates a new span as a child of the span in ctx. The caller must end
// the span, typically via defer span.End().
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}
