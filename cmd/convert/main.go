package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/config"
	"github.com/souk-intel/service-bestsellers/internal/events"
	"github.com/souk-intel/service-bestsellers/internal/ingest"
	"github.com/souk-intel/service-bestsellers/internal/logger"
	"github.com/souk-intel/service-bestsellers/internal/store"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	source := flag.String("source", cfg.Dataset.SourceFile, "spreadsheet export to convert")
	output := flag.String("output", cfg.Dataset.Path, "dataset file to write")
	flag.Parse()

	zapLogger, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := store.Open(*output, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open dataset store", zap.Error(err))
	}
	listingRepo := store.NewListingRepository(db)

	converter := ingest.NewConverter(listingRepo, zapLogger)

	zapLogger.Info("Reading source workbook, this can take a minute for large exports",
		zap.String("source", *source))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := converter.Convert(ctx, *source, *output)
	if err != nil {
		zapLogger.Fatal("Conversion failed", zap.Error(err))
	}

	zapLogger.Info("🎉 Dataset written",
		zap.String("output", *output),
		zap.Int("rows", result.RowCount),
		zap.Int64("source_bytes", result.SourceBytes),
		zap.Int64("output_bytes", result.OutputBytes),
		zap.Float64("shrink_ratio", result.ShrinkRatio()),
	)

	// Announce the import so a running server refreshes its snapshot
	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL)
		if err != nil {
			zapLogger.Warn("Failed to connect to NATS, server will not auto-refresh", zap.Error(err))
			return
		}
		defer nc.Close()

		publisher := events.NewPublisher(nc, zapLogger)
		publisher.PublishDatasetImported(&events.DatasetImportedEvent{
			ImportID:   result.ImportID,
			SourceFile: *source,
			RowCount:   result.RowCount,
			Timestamp:  time.Now().UTC(),
		})
		_ = nc.Flush()
	}
}
