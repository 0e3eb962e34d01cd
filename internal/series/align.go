// Package series reconciles parallel monthly series onto a shared set of buckets.
package series

import (
	"slices"
	"time"

	"txnhistory/internal/core"
)

// Buckets returns the sorted union of buckets across every series.
func Buckets(list [][]core.Point) []time.Time {
	seen := make(map[int64]struct{})
	out := make([]time.Time, 0)
	for _, s := range list {
		for _, p := range s {
			key := p.Bucket.UnixNano()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, p.Bucket)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// Align zero-fills every series so they all carry the union of buckets,
// each sorted ascending. Inputs are left untouched and aligning an already
// aligned set returns an identical set.
func Align(list [][]core.Point) [][]core.Point {
	buckets := Buckets(list)
	out := make([][]core.Point, len(list))
	for i, s := range list {
		values := make(map[int64]float64, len(s))
		for _, p := range s {
			values[p.Bucket.UnixNano()] += p.Value
		}
		aligned := make([]core.Point, len(buckets))
		for j, b := range buckets {
			aligned[j] = core.Point{Bucket: b, Value: values[b.UnixNano()]}
		}
		out[i] = aligned
	}
	return out
}

// IsAligned reports whether every series carries the same buckets in the same order.
func IsAligned(list [][]core.Point) bool {
	if len(list) == 0 {
		return true
	}
	first := list[0]
	for _, s := range list[1:] {
		if len(s) != len(first) {
			return false
		}
		for j := range s {
			if !s[j].Bucket.Equal(first[j].Bucket) {
				return false
			}
		}
	}
	for j := 1; j < len(first); j++ {
		if !first[j-1].Bucket.Before(first[j].Bucket) {
			return false
		}
	}
	return true
}
