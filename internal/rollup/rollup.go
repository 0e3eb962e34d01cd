// Package rollup groups transaction records into calendar-month buckets.
package rollup

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"txnhistory/internal/core"
)

// Monthly sums the chosen field per calendar month.
//
// Buckets are the first day of each month at midnight UTC. One point is
// emitted per month that has at least one record, in the order months are
// first seen. Empty input gives an empty, non-nil slice.
func Monthly(records []core.Record, field core.Field) []core.Point {
	index := make(map[int64]int)
	buckets := make([]time.Time, 0)
	sums := make([]decimal.Decimal, 0)

	for _, r := range records {
		b := core.MonthStart(r.Date)
		key := b.Unix()
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, b)
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(r.Amount(field))
	}

	points := make([]core.Point, len(buckets))
	for i, b := range buckets {
		points[i] = core.Point{Bucket: b, Value: sums[i].InexactFloat64()}
	}
	return points
}

// Filtered rolls up only the records for which keep returns true.
func Filtered(records []core.Record, field core.Field, keep func(core.Record) bool) []core.Point {
	selected := make([]core.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			selected = append(selected, r)
		}
	}
	return Monthly(selected, field)
}

// Sorted returns a copy of points ordered by ascending bucket.
func Sorted(points []core.Point) []core.Point {
	out := slices.Clone(points)
	if out == nil {
		out = []core.Point{}
	}
	slices.SortStableFunc(out, func(a, b core.Point) int {
		return a.Bucket.Compare(b.Bucket)
	})
	return out
}

// Total adds up the point values.
func Total(points []core.Point) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum
}
