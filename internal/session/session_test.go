package session

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"txnhistory/internal/chart"
	"txnhistory/internal/core"
	"txnhistory/internal/search"
)

type call struct {
	op string
	id string
}

type recordingRenderer struct {
	calls      []call
	overlayErr error
	removeErr  error
}

func (r *recordingRenderer) DrawBaseline(_ context.Context, _ chart.BaselineModel) error {
	r.calls = append(r.calls, call{op: "baseline"})
	return nil
}

func (r *recordingRenderer) DrawOverlay(_ context.Context, set *ResultSet) error {
	r.calls = append(r.calls, call{op: "overlay", id: set.ID})
	return r.overlayErr
}

func (r *recordingRenderer) Remove(_ context.Context, id string) error {
	r.calls = append(r.calls, call{op: "remove", id: id})
	return r.removeErr
}

func records() []core.Record {
	rec := func(m, d int, desc, cr, dr string) core.Record {
		return core.Record{
			Date:        core.NewDate(2021, m, d),
			Description: desc,
			Credit:      decimal.RequireFromString(cr),
			Debit:       decimal.RequireFromString(dr),
		}
	}
	return []core.Record{
		rec(1, 3, "ITUNES STORE", "0", "0.99"),
		rec(1, 9, "GOOGLE PLAY", "0", "4.99"),
		rec(2, 1, "SALARY ACME", "2000", "0"),
		rec(3, 2, "ITUNES STORE", "0", "1.99"),
	}
}

func newSession(t *testing.T) (*Session, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	s, err := New(records(), chart.DefaultOptions(), search.New(search.DefaultOptions(), nil), r, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, r
}

func TestSession_StartDrawsBaseline(t *testing.T) {
	s, r := newSession(t)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if len(r.calls) != 1 || r.calls[0].op != "baseline" {
		t.Fatalf("unexpected renderer calls %v", r.calls)
	}
	if got := len(s.Baseline().Credits); got != 3 {
		t.Fatalf("baseline buckets = %d, want 3", got)
	}
}

func TestSession_QueryReplacesActiveSet(t *testing.T) {
	ctx := context.Background()
	s, r := newSession(t)

	first, err := s.OnQueryChanged(ctx, "itunes|google")
	if err != nil {
		t.Fatalf("OnQueryChanged() error: %v", err)
	}
	if s.Active() != first {
		t.Fatalf("first set not active")
	}
	if len(first.Results) != 2 || first.Results[0].Count != 2 || first.Results[1].Count != 1 {
		t.Fatalf("unexpected results %+v", first.Matched())
	}
	if len(first.Overlay.Debits) != 2 || first.Overlay.Debits[1].Colour != "#fdd0a2" {
		t.Fatalf("unexpected overlay layers %+v", first.Overlay.Debits)
	}
	if first.Totals.Transactions != 3 || first.Totals.DebitTransactions != 3 {
		t.Fatalf("unexpected totals %+v", first.Totals)
	}

	second, err := s.OnQueryChanged(ctx, "salary")
	if err != nil {
		t.Fatalf("OnQueryChanged() error: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("result set IDs must differ")
	}

	want := []call{
		{op: "overlay", id: first.ID},
		{op: "remove", id: first.ID},
		{op: "overlay", id: second.ID},
	}
	if len(r.calls) != len(want) {
		t.Fatalf("renderer calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("call %d = %v, want %v", i, r.calls[i], want[i])
		}
	}
}

func TestSession_InvalidQueryLeavesDisplay(t *testing.T) {
	ctx := context.Background()
	s, r := newSession(t)

	active, err := s.OnQueryChanged(ctx, "itunes")
	if err != nil {
		t.Fatalf("OnQueryChanged() error: %v", err)
	}
	calls := len(r.calls)

	if _, err := s.OnQueryChanged(ctx, "google|[bad"); !errors.Is(err, core.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if s.Active() != active {
		t.Fatalf("active set changed after invalid query")
	}
	if len(r.calls) != calls {
		t.Fatalf("renderer touched after invalid query: %v", r.calls[calls:])
	}
}

func TestSession_EmptyQueryClears(t *testing.T) {
	ctx := context.Background()
	s, r := newSession(t)

	set, err := s.OnQueryChanged(ctx, "itunes")
	if err != nil {
		t.Fatalf("OnQueryChanged() error: %v", err)
	}
	got, err := s.OnQueryChanged(ctx, "")
	if err != nil || got != nil {
		t.Fatalf("OnQueryChanged(\"\") = %v, %v", got, err)
	}
	if s.Active() != nil {
		t.Fatalf("expected no active set")
	}
	if last := r.calls[len(r.calls)-1]; last != (call{op: "remove", id: set.ID}) {
		t.Fatalf("last call = %v, want remove %s", last, set.ID)
	}

	// clearing again is a no-op
	before := len(r.calls)
	if err := s.Clear(ctx); err != nil || len(r.calls) != before {
		t.Fatalf("second Clear() touched renderer: %v", err)
	}
}

func TestSession_NoMatchesStillShows(t *testing.T) {
	s, _ := newSession(t)
	set, err := s.OnQueryChanged(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("OnQueryChanged() error: %v", err)
	}
	if set.Results[0].Count != 0 || set.Totals.Transactions != 0 {
		t.Fatalf("expected empty result, got %+v", set.Results[0])
	}
	if len(set.Overlay.Credits) != 1 || len(set.Overlay.Credits[0].Bars) != 0 {
		t.Fatalf("expected one empty credit layer, got %+v", set.Overlay.Credits)
	}
}

func TestSession_RendererFailure(t *testing.T) {
	ctx := context.Background()
	s, r := newSession(t)
	r.overlayErr = errors.New("canvas gone")

	if _, err := s.OnQueryChanged(ctx, "itunes"); !errors.Is(err, r.overlayErr) {
		t.Fatalf("expected renderer error, got %v", err)
	}
	if s.Active() != nil {
		t.Fatalf("failed overlay must not become active")
	}
}

func TestSession_RemoveFailureStillDropsSet(t *testing.T) {
	ctx := context.Background()
	s, r := newSession(t)
	if _, err := s.OnQueryChanged(ctx, "itunes"); err != nil {
		t.Fatalf("OnQueryChanged() error: %v", err)
	}

	r.removeErr = errors.New("stale handle")
	if err := s.Clear(ctx); !errors.Is(err, r.removeErr) {
		t.Fatalf("expected remove error, got %v", err)
	}
	if s.Active() != nil {
		t.Fatalf("set should be dropped even when removal fails")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := chart.DefaultOptions()
	opts.NodeWidth = -1
	if _, err := New(nil, opts, search.New(search.DefaultOptions(), nil), &recordingRenderer{}, nil); err == nil {
		t.Fatalf("expected error for invalid options")
	}
}
