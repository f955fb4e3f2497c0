package logger

import (
	"context"
	"log/slog"
)

type fieldsKey struct{}

// LogFields carries tenant and request identifiers that the TraceHandler
// attaches to every record logged with the enriched context.
type LogFields struct {
	RequestID      *string
	OrganizationID *int64
	ProjectID      *int64
	BrandID        *int64
	ActorID        *int64
	MessageID      *string // stream entry id
	Operation      *string // e.g. "approve"
	Component      string  // e.g. "tracker.service.lifecycle"
}

// WithLogFields returns ctx carrying fields layered over whatever fields ctx
// already had. Set values in fields override; unset ones are inherited.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	return context.WithValue(ctx, fieldsKey{}, GetLogFields(ctx).overlay(fields))
}

// GetLogFields returns the fields stored on ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	f, _ := ctx.Value(fieldsKey{}).(LogFields)
	return f
}

func (f LogFields) overlay(top LogFields) LogFields {
	f.RequestID = pick(f.RequestID, top.RequestID)
	f.OrganizationID = pick(f.OrganizationID, top.OrganizationID)
	f.ProjectID = pick(f.ProjectID, top.ProjectID)
	f.BrandID = pick(f.BrandID, top.BrandID)
	f.ActorID = pick(f.ActorID, top.ActorID)
	f.MessageID = pick(f.MessageID, top.MessageID)
	f.Operation = pick(f.Operation, top.Operation)
	if top.Component != "" {
		f.Component = top.Component
	}
	return f
}

func pick[T any](base, top *T) *T {
	if top != nil {
		return top
	}
	return base
}

func (f LogFields) attrs() []slog.Attr {
	out := make([]slog.Attr, 0, 8)
	addString := func(key string, v *string) {
		if v != nil {
			out = append(out, slog.String(key, *v))
		}
	}
	addInt := func(key string, v *int64) {
		if v != nil {
			out = append(out, slog.Int64(key, *v))
		}
	}
	addString("request_id", f.RequestID)
	addInt("organization_id", f.OrganizationID)
	addInt("project_id", f.ProjectID)
	addInt("brand_id", f.BrandID)
	addInt("actor_id", f.ActorID)
	addString("message_id", f.MessageID)
	addString("operation", f.Operation)
	if f.Component != "" {
		out = append(out, slog.String("component", f.Component))
	}
	return out
}

// Ptr returns a pointer to v, for filling LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}
