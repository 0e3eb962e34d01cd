package backend

import (
	"context"
	"errors"
	"fmt"

	"txnhistory/internal/dataset"
	"txnhistory/internal/log"
	"txnhistory/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// SourcesResult contains the configured sources and an optional cleanup function
type SourcesResult struct {
	Sources []dataset.Source
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one
func (r *SourcesResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates dataset sources based on configuration
type Factory interface {
	// CreateSources opens every dataset container named by config
	CreateSources(ctx context.Context, config Config) (*SourcesResult, error)
}

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new source factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSources implements Factory.CreateSources
func (f *DefaultFactory) CreateSources(ctx context.Context, config Config) (*SourcesResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		return f.createCSVSources(ctx, config)
	case SQLiteBackend:
		return f.createSQLiteSource(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createCSVSources(ctx context.Context, config Config) (*SourcesResult, error) {
	opts := dataset.CSVOptions{
		HasHeader:   config.HasHeader,
		DateLayouts: config.DateLayouts,
	}

	sources := make([]dataset.Source, len(config.DatasetPaths))
	for i, path := range config.DatasetPaths {
		sources[i] = dataset.NewCSVSource(path, opts)
	}

	f.logger.InfoContext(ctx, "Initialized CSV backend",
		log.FieldSources, len(sources),
		"paths", config.DatasetPaths)

	return &SourcesResult{Sources: sources}, nil
}

func (f *DefaultFactory) createSQLiteSource(ctx context.Context, config Config) (*SourcesResult, error) {
	repo, err := storage.OpenExisting(config.SQLiteDBPath)
	if err != nil {
		if errors.Is(err, storage.ErrDatabaseNotFound) {
			return nil, fmt.Errorf("failed to open SQLite dataset (import one with txnhistory-import): %w", err)
		}
		return nil, fmt.Errorf("failed to open SQLite dataset: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)

	return &SourcesResult{
		Sources: []dataset.Source{repo},
		Cleanup: repo.Close,
	}, nil
}
