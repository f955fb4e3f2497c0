package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/common/logger"
	"adflow.app/tracker/core/config"
	"adflow.app/tracker/core/db"
	"adflow.app/tracker/internal/ctl"
	"adflow.app/tracker/internal/service"
	"adflow.app/tracker/internal/store"
	"adflow.app/tracker/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// stdout carries command output; only warnings reach stderr.
	slog.SetDefault(slog.New(logger.NewTraceHandler(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)))

	if err := id.Init(id.NodeCLI); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := ctl.Run(ctx, os.Args[1:], openBackend(cfg), os.Stdout); err != nil {
		if !errors.Is(err, ctl.ErrUsage) {
			slog.ErrorContext(ctx, "trackerctl failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func openBackend(cfg config.Config) ctl.Opener {
	return func(ctx context.Context) (*ctl.Backend, error) {
		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}

		stores := store.NewStores(database.Queries())
		return &ctl.Backend{
			Catalog:    service.NewCatalogService(stores, service.NewQuotaEnforcer()),
			Reconciler: worker.NewReconciler(worker.NewTxRunner(database)),
			Migrator:   database,
			Close:      database.Close,
		}, nil
	}
}
