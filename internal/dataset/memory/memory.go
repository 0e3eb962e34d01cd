// Package memory provides an in-process dataset source, used for fixtures
// and for datasets assembled by other tools.
package memory

import (
	"context"
	"slices"
	"sync"

	"txnhistory/internal/core"
)

type Store struct {
	mu      sync.Mutex
	name    string
	records []core.Record
}

func New(name string, records ...core.Record) *Store {
	if name == "" {
		name = "memory"
	}
	return &Store{name: name, records: slices.Clone(records)}
}

// Add appends records to the store.
func (s *Store) Add(records ...core.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Name implements dataset.Source
func (s *Store) Name() string {
	return s.name
}

// ListRecords returns a copy of the stored records.
func (s *Store) ListRecords(ctx context.Context) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
