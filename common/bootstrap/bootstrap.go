// Package bootstrap brings up the pieces every long-running tracker process
// shares: configuration, telemetry, logging, id generation and the database.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/common/logger"
	"adflow.app/tracker/common/otel"
	"adflow.app/tracker/core/config"
	"adflow.app/tracker/core/db"
)

// Process is a started binary. Close releases what Start acquired.
type Process struct {
	Config config.Config
	DB     *db.DB

	telemetry *otel.Telemetry
}

// Start loads configuration for serviceType and connects to Postgres.
// Telemetry is installed before the logger because production logging
// exports through the OTel log provider.
func Start(ctx context.Context, serviceType config.ServiceType, node int64) (*Process, error) {
	cfg, err := config.Load(serviceType)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	telemetry, err := otel.Setup(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "process starting",
		"service", cfg.OTel.ServiceName,
		"env", cfg.Env,
		"telemetry", telemetry != nil)

	if err := id.Init(node); err != nil {
		_ = telemetry.Shutdown(ctx)
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		_ = telemetry.Shutdown(ctx)
		return nil, fmt.Errorf("database: %w", err)
	}
	slog.InfoContext(ctx, "database connected")

	return &Process{Config: cfg, DB: database, telemetry: telemetry}, nil
}

// OpenRedis connects to the pipeline's Redis and pings it.
func (p *Process) OpenRedis(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(p.Config.Pipeline.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	slog.InfoContext(ctx, "redis connected", "stream", p.Config.Pipeline.RedisStream)
	return client, nil
}

// Close flushes telemetry and closes the pool.
func (p *Process) Close(ctx context.Context) {
	if err := p.telemetry.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "telemetry shutdown", "error", err)
	}
	p.DB.Close()
}
