package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"adflow.app/tracker/common/logger"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/queue"
)

type Config struct {
	// MaxAttempts is the attempt number at which a failing event is
	// dead-lettered instead of retried.
	MaxAttempts int
	// IdleBackoff is how long Run pauses after a failed stream read.
	IdleBackoff time.Duration
}

// Worker consumes lifecycle events and reconciles the projects they touch.
type Worker struct {
	consumer   Consumer
	reconciler *Reconciler
	cfg        Config

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

func New(consumer Consumer, reconciler *Reconciler, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.IdleBackoff <= 0 {
		cfg.IdleBackoff = time.Second
	}
	return &Worker{
		consumer:   consumer,
		reconciler: reconciler,
		cfg:        cfg,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run reads batches until Stop is called or ctx ends.
func (w *Worker) Run(ctx context.Context) error {
	w.started.Store(true)
	defer close(w.done)
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "tracker.worker"})
	slog.InfoContext(ctx, "lifecycle worker running", "max_attempts", w.cfg.MaxAttempts)

	for !w.stopping() {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, err := w.consumer.Read(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "stream read failed", "error", err)
			w.pause(ctx)
			continue
		}
		for _, msg := range batch {
			_ = w.HandleMessage(ctx, msg)
		}
	}
	slog.InfoContext(ctx, "lifecycle worker stopped")
	return nil
}

// Stop ends Run and waits for it to return. Calling it again, or before Run
// was started, does not block.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
	if w.started.Load() {
		<-w.done
	}
}

func (w *Worker) stopping() bool {
	select {
	case <-w.quit:
		return true
	default:
		return false
	}
}

func (w *Worker) pause(ctx context.Context) {
	t := time.NewTimer(w.cfg.IdleBackoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-w.quit:
	case <-t.C:
	}
}

// HandleMessage processes msg and settles it: acked on success, otherwise
// requeued or dead-lettered. The returned error is informational.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) error {
	err := w.guarded(ctx, msg)
	if err == nil {
		return nil
	}
	w.settleFailure(ctx, msg, err)
	return err
}

func (w *Worker) guarded(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage handles one event and acks it. Failures leave the entry
// unacked for the caller to settle.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	entryID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:      &entryID,
		OrganizationID: &msg.OrganizationID,
		ProjectID:      msg.ProjectID,
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.process_event")
	defer sc.End()
	ctx = sc.Context()

	slog.DebugContext(ctx, "lifecycle event received",
		"event_type", msg.EventType,
		"activity_log_id", msg.ActivityLogID,
		"attempt", msg.Attempt)

	if projectID, ok := reconcileTarget(msg); ok {
		if _, _, err := w.reconciler.ReconcileProject(ctx, projectID); err != nil {
			sc.RecordError(err)
			return fmt.Errorf("reconcile project %d: %w", projectID, err)
		}
	}

	// A lost ack only means the reclaimer redelivers; reconciling twice is harmless.
	if err := w.consumer.Ack(ctx, msg); err != nil {
		slog.WarnContext(ctx, "ack failed", "error", err)
	}
	return nil
}

// reconcileTarget returns the project whose creative rows the event changed.
func reconcileTarget(msg queue.Message) (int64, bool) {
	if msg.ProjectID == nil {
		return 0, false
	}
	action := model.ActivityAction(msg.EventType)
	if action != model.ActivityCreativesUploaded && action != model.ActivityCreativeDeleted {
		return 0, false
	}
	return *msg.ProjectID, true
}

func (w *Worker) settleFailure(ctx context.Context, msg queue.Message, cause error) {
	log := slog.With("entry_id", msg.ID, "event_type", msg.EventType, "attempt", msg.Attempt)

	if msg.Attempt < w.cfg.MaxAttempts {
		log.WarnContext(ctx, "lifecycle event failed, retrying", "error", cause)
		if err := w.consumer.Requeue(ctx, msg, cause.Error()); err != nil {
			log.ErrorContext(ctx, "requeue failed", "error", err)
		}
		return
	}

	log.ErrorContext(ctx, "lifecycle event exhausted its attempts", "error", cause)
	if err := w.consumer.SendDLQ(ctx, msg, cause.Error()); err != nil {
		log.ErrorContext(ctx, "dead-letter failed", "error", err)
	}
}
