package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"adflow.app/tracker/common/logger"
)

type ConsumerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	DLQStream string
	BatchSize int64
	Block     time.Duration
	// RequeueDelay is multiplied by the attempt that just failed, so the
	// second retry waits twice as long as the first.
	RequeueDelay time.Duration
}

// MessageProcessor handles one decoded message.
type MessageProcessor func(ctx context.Context, msg Message) error

// RedisConsumer reads lifecycle events through a consumer group. Retries and
// dead letters are written in the same MULTI as the XACK of the original
// entry, so a crash never leaves both copies live.
type RedisConsumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

func NewRedisConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig) (*RedisConsumer, error) {
	// Offset "0": events published before the group existed still get reconciled.
	err := client.XGroupCreateMkStream(ctx, cfg.Stream, cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("create group %s on %s: %w", cfg.Group, cfg.Stream, err)
	}
	return &RedisConsumer{client: client, cfg: cfg}, nil
}

// Read returns the next batch of never-delivered entries. Entries that fail
// to decode are acked and dropped; stale pending entries belong to the
// reclaimer.
func (c *RedisConsumer) Read(ctx context.Context) ([]Message, error) {
	res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, ">"},
		Count:    c.cfg.BatchSize,
		Block:    c.cfg.Block,
	}).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("xreadgroup %s: %w", c.cfg.Stream, err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "tracker.queue.consumer"})

	var batch []Message
	for _, s := range res {
		for _, raw := range s.Messages {
			msg, perr := ParseMessage(raw)
			if perr == nil {
				batch = append(batch, msg)
				continue
			}
			slog.ErrorContext(ctx, "dropping undecodable lifecycle event",
				"error", perr,
				"entry_id", raw.ID)
			if aerr := c.Ack(ctx, Message{ID: raw.ID, Raw: raw}); aerr != nil {
				slog.WarnContext(ctx, "ack of undecodable event failed", "error", aerr)
			}
		}
	}
	return batch, nil
}

func (c *RedisConsumer) Ack(ctx context.Context, msg Message) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, msg.ID).Err(); err != nil {
		return fmt.Errorf("xack %s %s: %w", c.cfg.Stream, msg.ID, err)
	}
	return nil
}

// Requeue waits out the backoff for msg.Attempt, then replaces msg with a copy
// carrying the next attempt number.
func (c *RedisConsumer) Requeue(ctx context.Context, msg Message, reason string) error {
	if wait := c.backoff(msg.Attempt); wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	next := msg.Event()
	next.Attempt = msg.Attempt + 1
	values := eventValues(next)
	if reason != "" {
		values["last_error"] = reason
	}

	if err := c.replace(ctx, msg.ID, c.cfg.Stream, values); err != nil {
		return fmt.Errorf("requeue %s: %w", msg.ID, err)
	}
	slog.InfoContext(ctx, "lifecycle event scheduled for retry",
		"entry_id", msg.ID,
		"next_attempt", next.Attempt,
		"reason", reason)
	return nil
}

// SendDLQ moves msg to the dead-letter stream.
func (c *RedisConsumer) SendDLQ(ctx context.Context, msg Message, reason string) error {
	values := eventValues(msg.Event())
	values["error"] = reason

	if err := c.replace(ctx, msg.ID, c.cfg.DLQStream, values); err != nil {
		return fmt.Errorf("dead-letter %s: %w", msg.ID, err)
	}
	slog.ErrorContext(ctx, "lifecycle event dead-lettered",
		"entry_id", msg.ID,
		"attempts", msg.Attempt,
		"reason", reason,
		"dlq_stream", c.cfg.DLQStream)
	return nil
}

func (c *RedisConsumer) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return c.cfg.RequeueDelay * time.Duration(attempt)
}

func (c *RedisConsumer) replace(ctx context.Context, id, stream string, values map[string]any) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.XAck(ctx, c.cfg.Stream, c.cfg.Group, id)
		pipe.XAdd(ctx, &redis.XAddArgs{Stream: stream, Values: values})
		return nil
	})
	return err
}
