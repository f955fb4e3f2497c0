package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "adflow.app/tracker"

// SpanContext pairs a started span with the context that carries it.
//
//	sc := logger.StartSpan(ctx, "lifecycle.approve")
//	defer sc.End()
//	ctx = sc.Context()
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, opts...)
	return &SpanContext{ctx: ctx, span: span}
}

// StartSpanFromTraceID continues the trace whose id travelled on a stream
// entry. The producer's span id is not propagated, so the new span is parented
// on a synthetic remote context with that trace id. Anything that is not a
// valid hex trace id starts a fresh root.
func StartSpanFromTraceID(ctx context.Context, traceID string, name string, opts ...trace.SpanStartOption) *SpanContext {
	tid, err := trace.TraceIDFromHex(traceID)
	if err != nil {
		return StartSpan(ctx, name, opts...)
	}
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	opts = append(opts, trace.WithLinks(trace.Link{SpanContext: parent}))
	return StartSpan(trace.ContextWithRemoteSpanContext(ctx, parent), name, opts...)
}

func (sc *SpanContext) Context() context.Context { return sc.ctx }

func (sc *SpanContext) End() { sc.span.End() }

// RecordError marks the span failed with err. A nil err is ignored.
func (sc *SpanContext) RecordError(err error) {
	if err == nil {
		return
	}
	sc.span.RecordError(err)
	sc.span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the hex trace id, or "" when no trace is active.
func (sc *SpanContext) TraceID() string {
	if id := sc.span.SpanContext().TraceID(); id.IsValid() {
		return id.String()
	}
	return ""
}
