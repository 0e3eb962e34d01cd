package chart

import (
	"errors"
	"time"

	"txnhistory/internal/core"
	"txnhistory/internal/series"
)

// ErrUnalignedLayers is returned when layers do not share buckets index by index
var ErrUnalignedLayers = errors.New("layers are not aligned")

// StackedPoint is a point resting on the cumulative value of the layers below it
type StackedPoint struct {
	Bucket time.Time `json:"bucket"`
	Base   float64   `json:"base"`
	Value  float64   `json:"value"`
}

// Stack computes base offsets, first layer at the bottom.
// Layers must come out of series.Align.
func Stack(layers [][]core.Point) ([][]StackedPoint, error) {
	out := make([][]StackedPoint, len(layers))
	if len(layers) == 0 {
		return out, nil
	}
	if !series.IsAligned(layers) {
		return nil, ErrUnalignedLayers
	}

	n := len(layers[0])

	base := make([]float64, n)
	for i, l := range layers {
		stacked := make([]StackedPoint, n)
		for j, p := range l {
			stacked[j] = StackedPoint{Bucket: p.Bucket, Base: base[j], Value: p.Value}
			base[j] += p.Value
		}
		out[i] = stacked
	}
	return out, nil
}

// MaxStacked returns the tallest stack, summing layer values per index.
// Layers are expected to be aligned; shorter layers count as zero.
func MaxStacked(layers [][]core.Point) float64 {
	var sums []float64
	for _, l := range layers {
		for j, p := range l {
			if j >= len(sums) {
				sums = append(sums, 0)
			}
			sums[j] += p.Value
		}
	}
	var m float64
	for _, s := range sums {
		if s > m {
			m = s
		}
	}
	return m
}

// MaxValue returns the largest single value, or 0 for no points
func MaxValue(series []core.Point) float64 {
	var m float64
	for _, p := range series {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}
