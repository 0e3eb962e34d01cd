package dataset

import (
	"context"

	"txnhistory/internal/core"
)

// Ports for inbound dataset adapters.
type (
	// Source yields the transaction records held by one dataset container.
	Source interface {
		// Name identifies the source in logs and errors.
		Name() string
		// ListRecords returns every record in container order.
		ListRecords(ctx context.Context) ([]core.Record, error)
	}
)
