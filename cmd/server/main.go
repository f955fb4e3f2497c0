package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"adflow.app/tracker/common/bootstrap"
	"adflow.app/tracker/common/id"
	"adflow.app/tracker/core/config"
	"adflow.app/tracker/internal/blob"
	"adflow.app/tracker/internal/http/middleware"
	httprouter "adflow.app/tracker/internal/http/router"
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/service"
	"adflow.app/tracker/internal/store"
)

func main() {
	fmt.Println(banner)
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	proc, err := bootstrap.Start(ctx, config.ServiceTypeServer, id.NodeServer)
	if err != nil {
		return err
	}
	cfg := proc.Config

	shutdownCtx := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), 10*time.Second)
	}
	defer func() {
		c, cancel := shutdownCtx()
		defer cancel()
		proc.Close(c)
	}()

	if cfg.IsDevelopment() {
		if err := proc.DB.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	producer, err := openProducer(ctx, proc)
	if err != nil {
		return err
	}
	defer producer.Close()

	signer, err := openSigner(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	services := service.NewServices(
		store.NewStores(proc.DB.Queries()),
		service.NewTxRunner(proc.DB),
		producer,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newEngine(cfg, services, signer),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("signal received, draining connections")
	c, cancel := shutdownCtx()
	defer cancel()
	if err := srv.Shutdown(c); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// openProducer connects the lifecycle stream. Without REDIS_URL events are
// dropped and creative totals are only repaired by trackerctl reconcile.
func openProducer(ctx context.Context, proc *bootstrap.Process) (queue.Producer, error) {
	if !proc.Config.Pipeline.Enabled() {
		slog.InfoContext(ctx, "lifecycle events disabled, REDIS_URL not set")
		return queue.NewNopProducer(), nil
	}
	client, err := proc.OpenRedis(ctx)
	if err != nil {
		return nil, err
	}
	return queue.NewRedisProducer(client, proc.Config.Pipeline.RedisStream, slog.Default()), nil
}

// openSigner returns a nil Signer when no bucket is configured; the upload
// route then answers 503.
func openSigner(ctx context.Context, cfg config.BlobConfig) (blob.Signer, error) {
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "upload signing disabled, S3 bucket not configured")
		return nil, nil
	}
	signer, err := blob.NewS3Signer(cfg)
	if err != nil {
		return nil, fmt.Errorf("upload signer: %w", err)
	}
	slog.InfoContext(ctx, "upload signing enabled", "bucket", cfg.Bucket)
	return signer, nil
}

func newEngine(cfg config.Config, services *service.Services, signer blob.Signer) *gin.Engine {
	engine := gin.New()

	// The span must exist before Recovery and Logger run so both log with its ids.
	if cfg.OTel.Enabled() {
		engine.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	engine.Use(middleware.Recovery(), middleware.RequestID(), middleware.Logger())

	httprouter.SetupRoutes(engine, services, httprouter.RouterConfig{
		GatewayAPIKey: cfg.Identity.GatewayAPIKey,
		Signer:        signer,
		Limiter:       middleware.NewRateLimiter(cfg.Limits.PerSecond, cfg.Limits.Burst),
	})
	return engine
}

const banner = `
████████╗██████╗  █████╗  ██████╗██╗  ██╗███████╗██████╗    ███████╗███████╗██████╗ ██╗   ██╗███████╗██████╗
╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝██╔════╝██╔══██╗   ██╔════╝██╔════╝██╔══██╗██║   ██║██╔════╝██╔══██╗
   ██║   ██████╔╝███████║██║     █████╔╝ █████╗  ██████╔╝   ███████╗█████╗  ██████╔╝██║   ██║█████╗  ██████╔╝
   ██║   ██╔══██╗██╔══██║██║     ██╔═██╗ ██╔══╝  ██╔══██╗   ╚════██║██╔══╝  ██╔══██╗╚██╗ ██╔╝██╔══╝  ██╔══██╗
   ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗███████╗██║  ██║   ███████║███████╗██║  ██║ ╚████╔╝ ███████╗██║  ██║
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚══════╝╚══════╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝
`
