package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

const (
	// errorAttribute is the attribute under which graph and journal report the error message of a failed operation.
	errorAttribute = "error"

	statusAttribute = "status"
	errorEventName  = "exception"
	messageAttr     = "exception.message"

	descriptionFailed    = "Operation failed"
	descriptionCancelled = "Operation cancelled"
	descriptionTimeout   = "Operation timed out"
	descriptionReadOnly  = "Graph is read-only"
)

// TracingCollector implements graph.TracingCollector with an OpenTelemetry tracer.
// Span attributes are strings, as the graph interfaces carry them.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a tracing collector on top of tracer, usually taken from a TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span as a child of the span in ctx and returns the context carrying it.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, graph.SpanContext) {
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan adds attrs, sets the status and ends the span. Spans not created by this collector are ignored.
// An "error" attribute is also recorded as an exception event and becomes the status description.
func (t *TracingCollector) FinishSpan(spanCtx graph.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(toAttributes(attrs)...)

	if message, hasError := attrs[errorAttribute]; hasError {
		otelSpanCtx.span.AddEvent(errorEventName, trace.WithAttributes(attribute.String(messageAttr, message)))
		otelSpanCtx.setSpanStatusWithDescription(status, message)
	} else {
		otelSpanCtx.setSpanStatus(status)
	}

	otelSpanCtx.span.End()
}

var _ graph.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements graph.SpanContext by wrapping an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps status onto the span status.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// Span returns the wrapped OpenTelemetry span.
func (s *OTelSpanContext) Span() trace.Span {
	return s.span
}

func (s *OTelSpanContext) setSpanStatus(status string) {
	s.setSpanStatusWithDescription(status, "")
}

// setSpanStatusWithDescription maps the status strings used by graph and journal to span status codes.
// Unknown statuses are kept as a "status" attribute and leave the code unset.
func (s *OTelSpanContext) setSpanStatusWithDescription(status, description string) {
	switch status {
	case "ok", "success", "completed":
		s.span.SetStatus(codes.Ok, "")
	case "error", "failed", "failure":
		s.span.SetStatus(codes.Error, orDefault(description, descriptionFailed))
	case "cancelled", "canceled":
		s.span.SetStatus(codes.Error, orDefault(description, descriptionCancelled))
	case "timeout":
		s.span.SetStatus(codes.Error, orDefault(description, descriptionTimeout))
	case "read_only":
		s.span.SetStatus(codes.Error, orDefault(description, descriptionReadOnly))
	default:
		s.span.SetAttributes(attribute.String(statusAttribute, status))
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

var _ graph.SpanContext = (*OTelSpanContext)(nil)
