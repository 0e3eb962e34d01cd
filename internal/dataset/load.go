package dataset

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"txnhistory/internal/core"
	"txnhistory/internal/log"
)

// LoadAll reads every source concurrently and merges the records by date.
// It logs through the logger carried by ctx, if any.
// Records with equal dates keep source order, then container order. Any
// failure aborts the whole load and wraps core.ErrDatasetLoad.
func LoadAll(ctx context.Context, sources ...Source) ([]core.Record, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", core.ErrDatasetLoad)
	}

	start := time.Now()
	parts := make([][]core.Record, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			records, err := src.ListRecords(gctx)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", core.ErrDatasetLoad, src.Name(), err)
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := slices.Concat(parts...)
	if merged == nil {
		merged = []core.Record{}
	}
	slices.SortStableFunc(merged, func(a, b core.Record) int {
		return a.Date.Compare(b.Date)
	})

	log.FromContext(ctx).WithComponent(log.ComponentDataset).InfoContext(ctx, "Dataset merged",
		log.FieldSources, len(sources),
		log.FieldRecords, len(merged),
		log.FieldDuration, time.Since(start).Milliseconds())

	return merged, nil
}
