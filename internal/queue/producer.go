package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// LifecycleEvent announces a committed lifecycle mutation. Consumers treat it
// as a hint and re-read state from the database.
type LifecycleEvent struct {
	EventType      string // activity action, e.g. "creatives_uploaded"
	OrganizationID int64
	ProjectID      *int64
	ActivityLogID  int64
	TraceID        string
	Attempt        int
}

type Producer interface {
	Publish(ctx context.Context, event LifecycleEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, event LifecycleEvent) error {
	if event.Attempt <= 0 {
		event.Attempt = 1
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: eventValues(event),
	}).Err(); err != nil {
		return fmt.Errorf("publish lifecycle event: %w", err)
	}

	p.logger.DebugContext(ctx, "published lifecycle event",
		"event_type", event.EventType,
		"activity_log_id", event.ActivityLogID,
		"attempt", event.Attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

type nopProducer struct{}

// NewNopProducer returns a Producer that drops every event. Used when no
// Redis stream is configured.
func NewNopProducer() Producer {
	return nopProducer{}
}

func (nopProducer) Publish(context.Context, LifecycleEvent) error { return nil }

func (nopProducer) Close() error { return nil }

func eventValues(event LifecycleEvent) map[string]any {
	values := map[string]any{
		"event_type":      event.EventType,
		"organization_id": event.OrganizationID,
		"activity_log_id": event.ActivityLogID,
		"attempt":         event.Attempt,
	}
	if event.ProjectID != nil {
		values["project_id"] = *event.ProjectID
	}
	if event.TraceID != "" {
		values["trace_id"] = event.TraceID
	}
	return values
}
