// Command txnhistory-import copies CSV statements into the SQLite dataset
// container read by DATA_BACKEND=sqlite, replacing what it held before.
package main

import (
	"context"
	"os"

	"txnhistory/internal/backend"
	"txnhistory/internal/cli"
	"txnhistory/internal/dataset"
	"txnhistory/internal/log"
	"txnhistory/internal/storage"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentStorage)
	logger.Info("Starting txnhistory-import")

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()
	ctx = log.WithContext(ctx, logger)

	// Always read CSV here, whatever backend the viewer is configured for
	res, err := backend.NewFactory(logger).CreateSources(ctx, backend.Config{
		Type:         backend.CSVBackend,
		DatasetPaths: cfg.DatasetPaths,
		HasHeader:    cfg.HasHeader,
		DateLayouts:  cfg.DateLayouts,
	})
	if err != nil {
		logger.Error("Failed to open CSV statements", log.FieldError, err)
		os.Exit(1)
	}

	records, err := dataset.LoadAll(ctx, res.Sources...)
	if err != nil {
		logger.Error("Failed to load CSV statements", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, log.FieldPath, cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	n, err := repo.Import(ctx, records)
	if err != nil {
		logger.Error("Import failed", log.FieldError, err)
		repo.Close()
		os.Exit(1)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Could not count stored transactions", log.FieldError, err)
	}
	logger.Info("Import complete",
		log.FieldRecords, n,
		"stored", total,
		log.FieldPath, cfg.SQLiteDBPath)
}
