package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"

	"adflow.app/tracker/core/config"
)

// Setup installs the process-wide slog default for cfg. Production ships
// records to the OTLP log pipeline when a collector is configured and writes
// JSON to stdout otherwise; every other environment gets text at debug level.
func Setup(cfg config.Config) {
	slog.SetDefault(slog.New(NewTraceHandler(baseHandler(cfg, os.Stdout))))
}

func baseHandler(cfg config.Config, w io.Writer) slog.Handler {
	if !cfg.IsProduction() {
		level := slog.LevelInfo
		if cfg.IsDevelopment() {
			level = slog.LevelDebug
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	if cfg.OTel.Enabled() {
		return otelslog.NewHandler(cfg.OTel.ServiceName,
			otelslog.WithLoggerProvider(global.GetLoggerProvider()))
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// TraceHandler stamps records with the active span ids and the LogFields
// found on the context before delegating.
type TraceHandler struct {
	next slog.Handler
}

func NewTraceHandler(next slog.Handler) *TraceHandler {
	return &TraceHandler{next: next}
}

func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	r.AddAttrs(GetLogFields(ctx).attrs()...)
	return h.next.Handle(ctx, r)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewTraceHandler(h.next.WithAttrs(attrs))
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return NewTraceHandler(h.next.WithGroup(name))
}
