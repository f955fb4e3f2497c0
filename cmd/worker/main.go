package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adflow.app/tracker/common/bootstrap"
	"adflow.app/tracker/common/id"
	"adflow.app/tracker/core/config"
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/worker"
)

const (
	maxAttempts  = 3
	drainTimeout = 30 * time.Second
)

func main() {
	fmt.Println(banner)
	if err := run(); err != nil {
		slog.Error("worker exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	proc, err := bootstrap.Start(ctx, config.ServiceTypeWorker, id.NodeWorker)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		proc.Close(c)
	}()
	pipeline := proc.Config.Pipeline

	client, err := proc.OpenRedis(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	// Loops run on their own context so a signal lets the current batch finish.
	loopCtx := context.WithoutCancel(ctx)

	consumer, err := queue.NewRedisConsumer(loopCtx, client, queue.ConsumerConfig{
		Stream:       pipeline.RedisStream,
		Group:        pipeline.RedisGroup,
		Consumer:     pipeline.RedisConsumer,
		DLQStream:    pipeline.RedisDLQStream,
		BatchSize:    20,
		Block:        5 * time.Second,
		RequeueDelay: time.Second,
	})
	if err != nil {
		return err
	}

	w := worker.New(consumer, worker.NewReconciler(worker.NewTxRunner(proc.DB)), worker.Config{
		MaxAttempts: maxAttempts,
	})
	reclaimer := worker.NewReclaimer(client, worker.ReclaimerConfig{
		Stream:    pipeline.RedisStream,
		Group:     pipeline.RedisGroup,
		Consumer:  pipeline.RedisConsumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  time.Minute,
		BatchSize: 10,
	}, consumer, w.HandleMessage)

	workerDone := make(chan error, 1)
	go func() { workerDone <- w.Run(loopCtx) }()
	go reclaimer.Run(loopCtx)

	slog.InfoContext(ctx, "consuming lifecycle events",
		"stream", pipeline.RedisStream,
		"group", pipeline.RedisGroup,
		"consumer", pipeline.RedisConsumer)

	select {
	case err := <-workerDone:
		reclaimer.Stop()
		return err
	case <-ctx.Done():
	}

	slog.Info("signal received, draining")
	stopped := make(chan struct{})
	go func() {
		// The reclaimer sits idle between ticks; the worker may be mid-batch.
		reclaimer.Stop()
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		slog.Info("worker stopped")
	case <-time.After(drainTimeout):
		slog.Warn("drain timed out, exiting with work in flight")
	}
	return nil
}

const banner = `
████████╗██████╗  █████╗  ██████╗██╗  ██╗███████╗██████╗    ██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗███████╗██████╗
╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝██╔════╝██╔══██╗   ██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██╔════╝██╔══██╗
   ██║   ██████╔╝███████║██║     █████╔╝ █████╗  ██████╔╝   ██║ █╗ ██║██║   ██║██████╔╝█████╔╝ █████╗  ██████╔╝
   ██║   ██╔══██╗██╔══██║██║     ██╔═██╗ ██╔══╝  ██╔══██╗   ██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██╔══╝  ██╔══██╗
   ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗███████╗██║  ██║   ╚███╔███╔╝╚██████╔╝██║  ██║██║  ██╗███████╗██║  ██║
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝    ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`
