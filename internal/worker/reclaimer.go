package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"adflow.app/tracker/common/logger"
	"adflow.app/tracker/internal/queue"
)

type ReclaimerConfig struct {
	Stream   string
	Group    string
	Consumer string
	// MinIdle is how long an entry must sit unacked before it is taken over.
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// Reclaimer takes over lifecycle events left pending by a worker that died
// between delivery and ack, and feeds them back through the processor.
type Reclaimer struct {
	client    redis.Cmdable
	cfg       ReclaimerConfig
	consumer  Consumer
	processor queue.MessageProcessor

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

func NewReclaimer(client redis.Cmdable, cfg ReclaimerConfig, consumer Consumer, processor queue.MessageProcessor) *Reclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Reclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run sweeps the pending list every Interval until Stop is called or ctx ends.
func (r *Reclaimer) Run(ctx context.Context) {
	r.started.Store(true)
	defer close(r.done)
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "tracker.worker.reclaimer"})

	tick := time.NewTicker(r.cfg.Interval)
	defer tick.Stop()

	slog.InfoContext(ctx, "pending-entry sweeper running",
		"stream", r.cfg.Stream,
		"every", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.quit:
			return
		case <-tick.C:
		}
		n, err := r.ReclaimOnce(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "sweep aborted", "error", err, "reclaimed", n)
		} else if n > 0 {
			slog.InfoContext(ctx, "sweep finished", "reclaimed", n)
		}
	}
}

// Stop ends Run and waits for it to return. Calling it again, or before Run
// was started, does not block.
func (r *Reclaimer) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
	if r.started.Load() {
		<-r.done
	}
}

// ReclaimOnce pages through XAUTOCLAIM until the cursor wraps and returns the
// number of entries taken over.
func (r *Reclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	total := 0
	for cursor := "0-0"; ; {
		page, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    cursor,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return total, fmt.Errorf("xautoclaim %s from %s: %w", r.cfg.Stream, cursor, err)
		}
		for _, raw := range page {
			r.redeliver(ctx, raw)
		}
		total += len(page)
		if next == "" || next == "0-0" {
			return total, nil
		}
		cursor = next
	}
}

func (r *Reclaimer) redeliver(ctx context.Context, raw redis.XMessage) {
	entryID := raw.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &entryID})

	msg, err := queue.ParseMessage(raw)
	if err != nil {
		slog.ErrorContext(ctx, "dropping undecodable pending entry", "error", err)
		if aerr := r.consumer.Ack(ctx, queue.Message{ID: raw.ID, Raw: raw}); aerr != nil {
			slog.WarnContext(ctx, "ack of undecodable entry failed", "error", aerr)
		}
		return
	}

	// The processor settles failures itself; the error is only logged here.
	if err := r.processor(ctx, msg); err != nil {
		slog.WarnContext(ctx, "redelivered event failed", "event_type", msg.EventType, "error", err)
	}
}
