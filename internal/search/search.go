// Package search filters transactions by description and summarises the
// matches for each sub-query.
//
// A query is split on the literal "|" before any pattern is compiled, so
// "itunes|google" runs two independent case-insensitive searches. A single
// pattern therefore can never use "|" as alternation.
package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"txnhistory/internal/cache"
	"txnhistory/internal/core"
	"txnhistory/internal/log"
	"txnhistory/internal/rollup"
)

// Separator splits a query into sub-queries
const Separator = "|"

// Result holds the matches and derived aggregates for one sub-query
type Result struct {
	Query        string             `json:"query"`
	Matched      []core.Record      `json:"-"`
	Count        int                `json:"count"`
	Credits      []core.Point       `json:"credits"`
	Debits       []core.Point       `json:"debits"`
	CreditStats  Stats              `json:"credit_stats"`
	DebitStats   Stats              `json:"debit_stats"`
	Descriptions []DescriptionGroup `json:"descriptions"`
}

// Totals aggregates across every sub-query of a search
type Totals struct {
	Transactions       int     `json:"transactions"`
	CreditTransactions int     `json:"credit_transactions"`
	CreditAmount       float64 `json:"credit_amount"`
	DebitTransactions  int     `json:"debit_transactions"`
	DebitAmount        float64 `json:"debit_amount"`
}

// Options configures the compiled-pattern cache
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultOptions returns the cache sizing used when nothing is configured
func DefaultOptions() Options {
	return Options{CacheSize: 64, CacheTTL: 30 * time.Minute}
}

// Engine runs searches over an in-memory dataset
type Engine struct {
	patterns *cache.LRUCache[*regexp.Regexp]
	logger   *log.Logger
}

// New creates an engine. A nil logger discards output.
func New(opts Options, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Discard()
	}
	return &Engine{
		patterns: cache.NewLRUCache[*regexp.Regexp](opts.CacheSize, opts.CacheTTL),
		logger:   logger.WithComponent(log.ComponentSearch),
	}
}

// SplitQuery splits on the literal separator. Empty pieces are kept and
// match every record.
func SplitQuery(query string) []string {
	return strings.Split(query, Separator)
}

// Compile builds a case-insensitive pattern for one sub-query.
// Syntax errors wrap core.ErrInvalidQuery.
func (e *Engine) Compile(query string) (*regexp.Regexp, error) {
	return e.patterns.GetOrCreate(query, func() (*regexp.Regexp, error) {
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", core.ErrInvalidQuery, query, err)
		}
		return re, nil
	})
}

// CompileAll compiles every sub-query of query, stopping at the first failure.
func (e *Engine) CompileAll(query string) ([]string, []*regexp.Regexp, error) {
	if n := e.patterns.CleanExpired(); n > 0 {
		e.logger.Debug("Expired cached patterns", "removed", n)
	}

	queries := SplitQuery(query)
	patterns := make([]*regexp.Regexp, len(queries))
	for i, q := range queries {
		re, err := e.Compile(q)
		if err != nil {
			return nil, nil, err
		}
		patterns[i] = re
	}
	return queries, patterns, nil
}

// Search runs one sub-query without splitting it.
func (e *Engine) Search(records []core.Record, query string) (Result, error) {
	re, err := e.Compile(query)
	if err != nil {
		return Result{}, err
	}
	return run(records, query, re), nil
}

// SearchAll splits query and searches each piece. Every pattern is compiled
// before any records are scanned, so an invalid piece yields no results.
func (e *Engine) SearchAll(records []core.Record, query string) ([]Result, error) {
	queries, patterns, err := e.CompileAll(query)
	if err != nil {
		e.logger.Debug("Rejected query", log.FieldQuery, query, log.FieldError, err)
		return nil, err
	}

	results := make([]Result, len(queries))
	for i, q := range queries {
		results[i] = run(records, q, patterns[i])
	}

	e.logger.Debug("Search complete",
		log.FieldQuery, query,
		log.FieldSubQueries, len(queries),
		log.FieldRecords, len(records))
	return results, nil
}

// PatternStats exposes the compiled-pattern cache counters
func (e *Engine) PatternStats() cache.Stats {
	return e.patterns.Stats()
}

func run(records []core.Record, query string, re *regexp.Regexp) Result {
	matched := make([]core.Record, 0)
	for _, r := range records {
		if re.MatchString(r.Description) {
			matched = append(matched, r)
		}
	}

	return Result{
		Query:        query,
		Matched:      matched,
		Count:        len(matched),
		Credits:      rollup.Filtered(matched, core.Credit, core.Record.IsCredit),
		Debits:       rollup.Filtered(matched, core.Debit, core.Record.IsDebit),
		CreditStats:  SummarizeField(matched, core.Credit),
		DebitStats:   SummarizeField(matched, core.Debit),
		Descriptions: GroupDescriptions(matched),
	}
}

// ComputeTotals adds up counts and amounts across results. Credit and debit
// transactions are matched records carrying a positive amount.
func ComputeTotals(results []Result) Totals {
	var t Totals
	for _, res := range results {
		t.Transactions += res.Count
		t.CreditAmount += res.CreditStats.Total
		t.DebitAmount += res.DebitStats.Total
		for _, r := range res.Matched {
			if r.IsCredit() {
				t.CreditTransactions++
			}
			if r.IsDebit() {
				t.DebitTransactions++
			}
		}
	}
	return t
}

// CreditLayers returns each result's credit rollup
func CreditLayers(results []Result) [][]core.Point {
	layers := make([][]core.Point, len(results))
	for i, r := range results {
		layers[i] = r.Credits
	}
	return layers
}

// DebitLayers returns each result's debit rollup
func DebitLayers(results []Result) [][]core.Point {
	layers := make([][]core.Point, len(results))
	for i, r := range results {
		layers[i] = r.Debits
	}
	return layers
}
