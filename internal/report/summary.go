// Package report turns search results into human-readable summaries and
// provides a plain-text Renderer for terminals.
package report

import (
	"github.com/dustin/go-humanize"

	"txnhistory/internal/core"
	"txnhistory/internal/search"
	"txnhistory/internal/session"
)

// QuerySummary is the per-query block of a search summary
type QuerySummary struct {
	Query        string       `json:"query"`
	Count        int          `json:"count"`
	Credit       search.Stats `json:"credit"`
	Debit        search.Stats `json:"debit"`
	Keys         []string     `json:"keys"`
	Descriptions []string     `json:"descriptions"`
}

// Summary covers every query of a result set plus the cross-query totals
type Summary struct {
	Queries []QuerySummary `json:"queries"`
	Totals  search.Totals  `json:"totals"`
}

// Summaries extracts the summary of a result set. A nil set gives an empty summary.
func Summaries(set *session.ResultSet) Summary {
	if set == nil {
		return Summary{Queries: []QuerySummary{}}
	}

	out := Summary{
		Queries: make([]QuerySummary, len(set.Results)),
		Totals:  set.Totals,
	}
	for i, r := range set.Results {
		descs := make([]string, len(r.Descriptions))
		for j, g := range r.Descriptions {
			descs[j] = g.Joined
		}
		out.Queries[i] = QuerySummary{
			Query:        r.Query,
			Count:        r.Count,
			Credit:       r.CreditStats,
			Debit:        r.DebitStats,
			Keys:         search.Keys(r.Descriptions),
			Descriptions: descs,
		}
	}
	return out
}

// FormatAmount renders an amount with thousands separators and at most two decimals
func FormatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// FormatMeasure renders a statistic, or "undefined" when there is no data
func FormatMeasure(m core.Measure) string {
	if !m.Valid {
		return m.String()
	}
	return FormatAmount(m.Value)
}
