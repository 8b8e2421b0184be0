package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gartstein/catalog/internal/catalog/db"
	"github.com/gartstein/catalog/internal/catalog/events"
	"github.com/gartstein/catalog/internal/catalog/models"
	"github.com/gartstein/catalog/internal/catalog/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var allCollections = []models.Collection{models.Companies, models.Moments, models.Drops}

var importCmd = &cobra.Command{
	Use:   "import [collection...]",
	Short: "Copy the JSON snapshots from the data directory into the database",
	Long: "Reads <DATA_DIR>/<collection>.json and replaces the stored collection with it. " +
		"With no arguments every collection is imported. When KAFKA_BROKERS is set, " +
		"a collection_imported event is published for each imported collection.",
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	logger := initLogger()
	defer syncLogger(logger)

	collections, err := parseCollections(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	repo, err := db.NewRepository(ctx, initDatabase(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = events.NewProducer(ctx, cfg.KafkaBrokers, logger, cfg.Topic)
		if err != nil {
			return fmt.Errorf("failed to initialize Kafka producer: %w", err)
		}
		defer producer.Close()
	}

	files := store.NewFileSource(cfg.DataDir)
	for _, c := range collections {
		data, err := files.Load(ctx, c)
		if err != nil {
			return err
		}
		n, err := repo.Replace(ctx, c, data)
		if err != nil {
			return err
		}
		logger.Info("Imported collection",
			zap.String("collection", string(c)),
			zap.String("file", files.Path(c)),
			zap.Int("records", n),
		)
		if producer != nil {
			producer.Produce(events.CollectionImported, c, n)
		}
	}
	return nil
}

func parseCollections(args []string) ([]models.Collection, error) {
	if len(args) == 0 {
		return allCollections, nil
	}
	out := make([]models.Collection, 0, len(args))
	for _, arg := range args {
		c := models.Collection(arg)
		known := false
		for _, k := range allCollections {
			if k == c {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown collection %q", arg)
		}
		out = append(out, c)
	}
	return out, nil
}
