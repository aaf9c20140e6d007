package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// ExchangeMeta identifies one correlated exchange for telemetry purposes.
type ExchangeMeta struct {
	CorrelationID string // Caller-supplied correlation ID (required)
	Method        string // HTTP method (optional)
	Target        string // Target URI (optional)
}

// SpanName returns the deterministic span name for an exchange.
func (m ExchangeMeta) SpanName() string {
	if m.Method != "" {
		return "dispatch.send " + m.Method
	}
	return "dispatch.send"
}

// Tracer wraps OpenTelemetry tracing with exchange-scoped span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan must honor cancellation/deadlines.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for one exchange.
	StartSpan(ctx context.Context, meta ExchangeMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new client span with exchange metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta ExchangeMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("correlation_id", meta.CorrelationID),
	}
	if meta.Method != "" {
		attrs = append(attrs, attribute.String("http.request.method", meta.Method))
	}
	if meta.Target != "" {
		attrs = append(attrs, attribute.String("url.full", meta.Target))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a no-op tracer.
func NopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta ExchangeMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
