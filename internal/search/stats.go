package search

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"txnhistory/internal/core"
)

// Stats summarises one amount field across a set of matched records
type Stats struct {
	Count    int          `json:"count"`
	Total    float64      `json:"total"`
	Mean     core.Measure `json:"mean"`
	Median   core.Measure `json:"median"`
	Variance core.Measure `json:"variance"`
	StdDev   core.Measure `json:"stddev"`
}

// Summarize computes count, total, mean, median, sample variance and
// standard deviation. Mean and median need one value, variance and
// standard deviation need two; otherwise they are undefined.
func Summarize(values []decimal.Decimal) Stats {
	s := Stats{Count: len(values)}
	if len(values) == 0 {
		return s
	}

	total := decimal.Sum(decimal.Zero, values...)
	s.Total = total.InexactFloat64()
	mean := total.Div(decimal.NewFromInt(int64(len(values)))).InexactFloat64()
	s.Mean = core.Defined(mean)
	s.Median = core.Defined(median(values))

	if len(values) < 2 {
		return s
	}

	var sq float64
	for _, v := range values {
		d := v.InexactFloat64() - mean
		sq += d * d
	}
	variance := sq / float64(len(values)-1)
	s.Variance = core.Defined(variance)
	s.StdDev = core.Defined(math.Sqrt(variance))
	return s
}

// SummarizeField collects field from every record, zeros included.
func SummarizeField(records []core.Record, field core.Field) Stats {
	values := make([]decimal.Decimal, len(records))
	for i, r := range records {
		values[i] = r.Amount(field)
	}
	return Summarize(values)
}

func median(values []decimal.Decimal) float64 {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2].InexactFloat64()
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2)).InexactFloat64()
}
