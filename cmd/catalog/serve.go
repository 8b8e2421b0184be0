package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/catalog/internal/catalog/cache"
	"github.com/gartstein/catalog/internal/catalog/clock"
	"github.com/gartstein/catalog/internal/catalog/config"
	"github.com/gartstein/catalog/internal/catalog/controller"
	"github.com/gartstein/catalog/internal/catalog/db"
	"github.com/gartstein/catalog/internal/catalog/events"
	"github.com/gartstein/catalog/internal/catalog/handlers"
	"github.com/gartstein/catalog/internal/catalog/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := initLogger()
	defer syncLogger(logger)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := make(map[string]handlers.HealthCheck)

	var source controller.SnapshotSource
	switch cfg.Storage {
	case config.StoragePostgres:
		repo, err := db.NewRepository(ctx, initDatabase(cfg))
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer repo.Close()
		source = repo
		checks["database"] = repo.HealthCheck
	default:
		source = store.NewFileSource(cfg.DataDir)
	}

	if cfg.RedisURL != "" {
		client, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()

		snapshots := cache.New(client, source, cfg.CacheTTL, logger)
		source = snapshots
		checks["redis"] = snapshots.HealthCheck

		if len(cfg.KafkaBrokers) > 0 {
			consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.GroupID, cfg.Topic, logger)
			consumer.RegisterHandler(invalidateOnImport(snapshots, logger))
			consumer.Start(ctx)
			defer stopConsumer(stop, consumer)
		}
	}

	svc := controller.NewCatalogService(source, clock.NewSystem(), initLimits(cfg), logger)

	handler, err := handlers.NewHTTPHandler(
		handlers.NewCatalogHandler(svc, logger),
		handlers.RouterOptions{
			PublicDir:    cfg.PublicDir,
			CORSOrigins:  cfg.CORSOrigins,
			HealthChecks: checks,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to build HTTP routes: %w", err)
	}

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	server.RegisterHTTPHandler(handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	return waitForShutdown(ctx, server, errCh, logger)
}

func invalidateOnImport(c *cache.Cache, logger *zap.Logger) func(context.Context, events.Event) error {
	return func(ctx context.Context, ev events.Event) error {
		if ev.Type != events.CollectionImported {
			return nil
		}
		logger.Info("Collection re-imported, dropping cached snapshot",
			zap.String("collection", string(ev.Collection)),
			zap.Int("records", ev.Records),
		)
		return c.Invalidate(ctx, ev.Collection)
	}
}

// stopConsumer cancels the consume loop and waits for it before closing the reader.
func stopConsumer(stop context.CancelFunc, consumer *events.Consumer) {
	stop()
	<-consumer.Done()
	consumer.Close()
}

// waitForShutdown blocks until ctx is done or a server fails, then shuts down servers.
func waitForShutdown(ctx context.Context, server *handlers.Server, errCh <-chan error, logger *zap.Logger) error {
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			server.Stop()
			return fmt.Errorf("failed to start servers: %w", err)
		}
	}

	server.SetServing(false)
	server.Stop()
	logger.Info("Servers stopped properly")
	return nil
}
