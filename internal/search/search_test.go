package search

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"txnhistory/internal/core"
)

func rec(y, m, d int, desc, credit, debit string) core.Record {
	return core.Record{
		Date:        core.NewDate(y, m, d),
		Description: desc,
		Credit:      decimal.RequireFromString(credit),
		Debit:       decimal.RequireFromString(debit),
	}
}

func fixture() []core.Record {
	return []core.Record{
		rec(2021, 1, 3, "ITUNES STORE 1234", "0", "0.99"),
		rec(2021, 1, 9, "GOOGLE PLAY APPS", "0", "4.99"),
		rec(2021, 2, 1, "SALARY ACME LTD", "2000", "0"),
		rec(2021, 2, 14, "itunes store refund", "0.99", "0"),
		rec(2021, 3, 2, "ITUNES STORE 5678", "0", "1.99"),
	}
}

func TestSearchAll_SplitsOnPipe(t *testing.T) {
	records := []core.Record{
		rec(2021, 1, 1, "ITUNES STORE", "0", "1"),
		rec(2021, 1, 2, "GOOGLE PLAY", "0", "2"),
	}
	e := New(DefaultOptions(), nil)

	results, err := e.SearchAll(records, "itunes|google")
	if err != nil {
		t.Fatalf("SearchAll() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Query != "itunes" || results[0].Count != 1 || results[0].Matched[0].Description != "ITUNES STORE" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Query != "google" || results[1].Count != 1 || results[1].Matched[0].Description != "GOOGLE PLAY" {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
}

func TestSearchAll_InvalidPatternRejectsWholeQuery(t *testing.T) {
	e := New(DefaultOptions(), nil)

	results, err := e.SearchAll(fixture(), "itunes|(unclosed")
	if !errors.Is(err, core.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results on error, got %d", len(results))
	}
}

func TestSearchAll_EmptyPieceMatchesEverything(t *testing.T) {
	e := New(DefaultOptions(), nil)
	results, err := e.SearchAll(fixture(), "salary|")
	if err != nil {
		t.Fatalf("SearchAll() error: %v", err)
	}
	if results[1].Count != len(fixture()) {
		t.Fatalf("empty sub-query matched %d, want %d", results[1].Count, len(fixture()))
	}
}

func TestSearch_SplitsRollupsBySign(t *testing.T) {
	e := New(DefaultOptions(), nil)
	res, err := e.Search(fixture(), "itunes")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if res.Count != 3 {
		t.Fatalf("Count = %d, want 3", res.Count)
	}

	wantCredits := []core.Point{{Bucket: core.NewDate(2021, 2, 1), Value: 0.99}}
	if diff := cmp.Diff(wantCredits, res.Credits); diff != "" {
		t.Fatalf("credits mismatch (-want +got):\n%s", diff)
	}
	wantDebits := []core.Point{
		{Bucket: core.NewDate(2021, 1, 1), Value: 0.99},
		{Bucket: core.NewDate(2021, 3, 1), Value: 1.99},
	}
	if diff := cmp.Diff(wantDebits, res.Debits); diff != "" {
		t.Fatalf("debits mismatch (-want +got):\n%s", diff)
	}

	// statistics include the zero amounts of every match
	if res.CreditStats.Count != 3 || res.DebitStats.Count != 3 {
		t.Fatalf("stats counts = %d/%d, want 3/3", res.CreditStats.Count, res.DebitStats.Count)
	}
	if res.DebitStats.Median != core.Defined(0.99) {
		t.Fatalf("debit median = %v, want 0.99", res.DebitStats.Median)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	e := New(DefaultOptions(), nil)
	res, err := e.Search(fixture(), "nothing-like-this")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	want := Stats{}
	if diff := cmp.Diff(want, res.CreditStats); diff != "" {
		t.Fatalf("credit stats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, res.DebitStats); diff != "" {
		t.Fatalf("debit stats mismatch (-want +got):\n%s", diff)
	}
	if len(res.Credits) != 0 || len(res.Debits) != 0 || len(res.Descriptions) != 0 {
		t.Fatalf("expected empty aggregates, got %+v", res)
	}
}

func TestCompile_CachesPatterns(t *testing.T) {
	e := New(Options{CacheSize: 4}, nil)
	for i := 0; i < 3; i++ {
		if _, err := e.Compile("tesco"); err != nil {
			t.Fatalf("Compile() error: %v", err)
		}
	}
	if s := e.PatternStats(); s.Hits != 2 || s.Size != 1 {
		t.Fatalf("unexpected cache stats %+v", s)
	}
}

func TestSplitQuery(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"itunes", []string{"itunes"}},
		{"itunes|google", []string{"itunes", "google"}},
		{"a||b", []string{"a", "", "b"}},
		{"(a|b)", []string{"(a", "b)"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitQuery(tt.in)); diff != "" {
				t.Fatalf("SplitQuery(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	e := New(DefaultOptions(), nil)
	results, err := e.SearchAll(fixture(), "itunes|salary")
	if err != nil {
		t.Fatalf("SearchAll() error: %v", err)
	}

	got := ComputeTotals(results)
	if got.Transactions != 4 {
		t.Fatalf("Transactions = %d, want 4", got.Transactions)
	}
	if got.CreditTransactions != 2 || got.DebitTransactions != 2 {
		t.Fatalf("credit/debit transactions = %d/%d, want 2/2", got.CreditTransactions, got.DebitTransactions)
	}
	if math.Abs(got.CreditAmount-2000.99) > 1e-9 {
		t.Fatalf("CreditAmount = %v, want 2000.99", got.CreditAmount)
	}
}
