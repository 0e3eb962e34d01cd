// Package cli provides common CLI initialization utilities shared by
// cmd/txnhistory and cmd/txnhistory-import.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"txnhistory/internal/backend"
	"txnhistory/internal/config"
	"txnhistory/internal/core"
	"txnhistory/internal/dataset"
	"txnhistory/internal/log"
)

// SetupLogger initializes structured logging at the given level and makes
// it the default logger. Logs go to stderr so stdout stays free for reports.
func SetupLogger(level string, component string) *log.Logger {
	return setupLogger(os.Stderr, level, component)
}

func setupLogger(w io.Writer, level string, component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level, _ = log.ParseLevel(level)
	cfg.Component = component
	cfg.Output = w
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		os.Exit(1)
	}
	return cfg
}

// LoadDataset opens the configured sources and blocks until every record
// is loaded. Any failure wraps core.ErrDatasetLoad.
func LoadDataset(ctx context.Context, logger *log.Logger, cfg *config.Config) ([]core.Record, error) {
	start := time.Now()
	ctx = log.WithContext(ctx, logger)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDatasetLoad, err)
	}

	res, err := backend.NewFactory(logger).CreateSources(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDatasetLoad, err)
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Warn("Failed to close dataset sources", log.FieldError, err)
		}
	}()

	records, err := dataset.LoadAll(ctx, res.Sources...)
	if err != nil {
		return nil, err
	}

	log.NewStructuredLogger(logger).LogDatasetLoaded(ctx, bcfg.Type.String(), len(res.Sources), len(records), time.Since(start).Milliseconds())
	return records, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
