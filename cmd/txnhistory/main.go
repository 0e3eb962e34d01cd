package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"txnhistory/internal/cli"
	"txnhistory/internal/config"
	"txnhistory/internal/core"
	"txnhistory/internal/log"
	"txnhistory/internal/report"
	"txnhistory/internal/search"
	"txnhistory/internal/session"
)

func main() {
	// Load .env file for local development
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentApp)
	logger.Info("Starting txnhistory", log.FieldOperation, log.OpStartup)

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		errorType := log.ErrorTypeInternal
		if errors.Is(err, core.ErrDatasetLoad) {
			errorType = log.ErrorTypeDataset
		}
		logger.Error("txnhistory failed", log.FieldError, err, log.FieldErrorType, errorType)
		cancel()
		os.Exit(1)
	}
	logger.Info("txnhistory stopped", log.FieldOperation, log.OpShutdown)
}

// run loads the dataset, draws the baseline, runs the initial query and then
// treats every input line as a new query until input ends or ctx is done.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) error {
	records, err := cli.LoadDataset(ctx, logger, cfg)
	if err != nil {
		return err
	}

	engine := search.New(search.Options{
		CacheSize: cfg.PatternCacheSize,
		CacheTTL:  cfg.PatternCacheTTL,
	}, logger)

	sess, err := session.New(records, cfg.ChartOptions(), engine, report.NewPrinter(out), logger)
	if err != nil {
		return err
	}
	if err := sess.Start(ctx); err != nil {
		return err
	}

	if cfg.InitialQuery != "" {
		if err := handleQuery(ctx, sess, logger, cfg.InitialQuery); err != nil {
			return err
		}
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read queries: %w", err)
					}
				default:
				}
				logger.Debug("Pattern cache", "stats", fmt.Sprintf("%+v", engine.PatternStats()))
				return nil
			}
			if err := handleQuery(ctx, sess, logger, strings.TrimRight(line, "\r")); err != nil {
				return err
			}
		}
	}
}

// handleQuery applies one query. Invalid patterns are reported and skipped.
func handleQuery(ctx context.Context, sess *session.Session, logger *log.Logger, query string) error {
	_, err := sess.OnQueryChanged(ctx, query)
	if errors.Is(err, core.ErrInvalidQuery) {
		logger.Warn("Ignoring invalid query", log.FieldQuery, query, log.FieldError, err)
		return nil
	}
	return err
}
