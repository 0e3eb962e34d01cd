// Package session owns the chart state for one user: the baseline over the
// whole dataset and at most one active search overlay.
//
// A Session is not safe for concurrent use. Callers drive it from a single
// goroutine, one query change at a time.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"txnhistory/internal/chart"
	"txnhistory/internal/core"
	"txnhistory/internal/log"
	"txnhistory/internal/search"
)

// Renderer draws models produced by the session. Implementations live
// outside the core; the session never draws anything itself.
type Renderer interface {
	DrawBaseline(ctx context.Context, model chart.BaselineModel) error
	DrawOverlay(ctx context.Context, set *ResultSet) error
	Remove(ctx context.Context, id string) error
}

// ResultSet is everything derived from one query
type ResultSet struct {
	ID      string             `json:"id"`
	Query   string             `json:"query"`
	Queries []string           `json:"queries"`
	Results []search.Result    `json:"results"`
	Overlay chart.OverlayModel `json:"overlay"`
	Totals  search.Totals      `json:"totals"`
}

// Matched returns the number of matches per sub-query
func (rs *ResultSet) Matched() []int {
	counts := make([]int, len(rs.Results))
	for i, r := range rs.Results {
		counts[i] = r.Count
	}
	return counts
}

type Session struct {
	records    []core.Record
	opts       chart.Options
	engine     *search.Engine
	renderer   Renderer
	logger     *log.Logger
	structured *log.StructuredLogger

	baseline chart.BaselineModel
	extent   [2]time.Time
	active   *ResultSet
}

// New prepares a session over records and computes the baseline chart.
// It fails only when opts cannot be laid out.
func New(records []core.Record, opts chart.Options, engine *search.Engine, renderer Renderer, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSession)

	baseline, err := chart.Baseline(records, opts)
	if err != nil {
		return nil, fmt.Errorf("build baseline: %w", err)
	}

	return &Session{
		records:    records,
		opts:       opts,
		engine:     engine,
		renderer:   renderer,
		logger:     logger,
		structured: log.NewStructuredLogger(logger),
		baseline:   baseline,
		extent:     baseline.Extent,
	}, nil
}

// Start draws the baseline chart
func (s *Session) Start(ctx context.Context) error {
	if err := s.renderer.DrawBaseline(ctx, s.baseline); err != nil {
		return fmt.Errorf("draw baseline: %w", err)
	}
	s.logger.InfoContext(ctx, "Baseline drawn",
		log.FieldRecords, len(s.records),
		log.FieldBuckets, len(s.baseline.Credits))
	return nil
}

// Baseline returns the whole-dataset chart model
func (s *Session) Baseline() chart.BaselineModel {
	return s.baseline
}

// Active returns the result set currently on display, or nil
func (s *Session) Active() *ResultSet {
	return s.active
}

// OnQueryChanged reacts to a new query. An empty query clears the overlay.
// An invalid query returns an error wrapping core.ErrInvalidQuery and
// leaves the display untouched. Otherwise the previous overlay is cleared
// and the new one shown.
func (s *Session) OnQueryChanged(ctx context.Context, query string) (*ResultSet, error) {
	if query == "" {
		return nil, s.Clear(ctx)
	}

	if _, _, err := s.engine.CompileAll(query); err != nil {
		s.structured.LogError(ctx, "Query rejected", err, log.ComponentSession, log.OpSearch,
			log.NewFields().WithErrorType(log.ErrorTypeQuery).WithQuery(query, len(search.SplitQuery(query))))
		return nil, err
	}

	if err := s.Clear(ctx); err != nil {
		return nil, err
	}

	set, err := s.Compute(query)
	if err != nil {
		s.structured.LogError(ctx, "Failed to build result set", err, log.ComponentChart, log.OpStack,
			log.NewFields().WithErrorType(log.ErrorTypeInternal).WithQuery(query, len(search.SplitQuery(query))))
		return nil, err
	}
	if err := s.Show(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Compute runs the search and builds the overlay without touching the display.
func (s *Session) Compute(query string) (*ResultSet, error) {
	results, err := s.engine.SearchAll(s.records, query)
	if err != nil {
		return nil, err
	}

	overlay, err := chart.Overlay(
		search.CreditLayers(results),
		search.DebitLayers(results),
		s.extent,
		s.baseline.Geometry,
		s.opts,
	)
	if err != nil {
		return nil, fmt.Errorf("build overlay: %w", err)
	}

	queries := make([]string, len(results))
	for i, r := range results {
		queries[i] = r.Query
	}

	return &ResultSet{
		ID:      uuid.NewString(),
		Query:   query,
		Queries: queries,
		Results: results,
		Overlay: overlay,
		Totals:  search.ComputeTotals(results),
	}, nil
}

// Show draws set and makes it the active result set, clearing any previous one.
func (s *Session) Show(ctx context.Context, set *ResultSet) error {
	if set == nil {
		return nil
	}
	if s.active != nil {
		if err := s.Clear(ctx); err != nil {
			return err
		}
	}

	if err := s.renderer.DrawOverlay(ctx, set); err != nil {
		s.structured.LogError(ctx, "Failed to draw overlay", err, log.ComponentSession, log.OpShow,
			log.NewFields().WithErrorType(log.ErrorTypeRender))
		return fmt.Errorf("draw overlay: %w", err)
	}
	s.active = set
	s.structured.LogSearch(ctx, set.Query, set.Matched(), set.ID)
	return nil
}

// Clear removes the active overlay, if any. The set is dropped even when
// the renderer fails to remove it.
func (s *Session) Clear(ctx context.Context) error {
	if s.active == nil {
		return nil
	}
	id := s.active.ID
	s.active = nil

	if err := s.renderer.Remove(ctx, id); err != nil {
		s.structured.LogError(ctx, "Failed to remove overlay", err, log.ComponentSession, log.OpClear,
			log.NewFields().WithErrorType(log.ErrorTypeRender))
		return fmt.Errorf("remove overlay %s: %w", id, err)
	}
	s.logger.DebugContext(ctx, "Overlay cleared", log.FieldResultSetID, id)
	return nil
}
