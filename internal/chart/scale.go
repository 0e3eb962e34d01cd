package chart

import (
	"time"

	"txnhistory/internal/core"
)

// TimeScale maps dates linearly onto a pixel range
type TimeScale struct {
	Domain [2]time.Time `json:"domain"`
	Range  [2]float64   `json:"range"`
}

// NewTimeScale widens extent outwards to whole months and maps it onto rng.
func NewTimeScale(extent [2]time.Time, rng [2]float64) TimeScale {
	return TimeScale{
		Domain: [2]time.Time{floorMonth(extent[0]), ceilMonth(extent[1])},
		Range:  rng,
	}
}

// Map converts t to a pixel position. A zero-width domain maps to Range[0].
func (s TimeScale) Map(t time.Time) float64 {
	span := s.Domain[1].Sub(s.Domain[0])
	if span == 0 {
		return s.Range[0]
	}
	ratio := float64(t.Sub(s.Domain[0])) / float64(span)
	return s.Range[0] + ratio*(s.Range[1]-s.Range[0])
}

// LinearScale maps values linearly onto a pixel range
type LinearScale struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// NewLinearScale creates a linear scale
func NewLinearScale(domain, rng [2]float64) LinearScale {
	return LinearScale{Domain: domain, Range: rng}
}

// Map converts v to a pixel length. A zero-width domain maps to Range[0].
func (s LinearScale) Map(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return s.Range[0]
	}
	return s.Range[0] + (v-s.Domain[0])/span*(s.Range[1]-s.Range[0])
}

// Scales pairs the horizontal time scale with the vertical value scale
type Scales struct {
	X TimeScale   `json:"x"`
	Y LinearScale `json:"y"`
}

// ComputeScales builds both scales for a chart area
func ComputeScales(timeExtent [2]time.Time, valueExtent, xRange, yRange [2]float64) Scales {
	return Scales{
		X: NewTimeScale(timeExtent, xRange),
		Y: NewLinearScale(valueExtent, yRange),
	}
}

// DateExtent returns the earliest and latest record dates.
func DateExtent(records []core.Record) ([2]time.Time, bool) {
	var extent [2]time.Time
	if len(records) == 0 {
		return extent, false
	}
	extent[0], extent[1] = records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(extent[0]) {
			extent[0] = r.Date
		}
		if r.Date.After(extent[1]) {
			extent[1] = r.Date
		}
	}
	return extent, true
}

func floorMonth(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return core.MonthStart(t)
}

func ceilMonth(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	m := core.MonthStart(t)
	if m.Equal(t) {
		return m
	}
	return m.AddDate(0, 1, 0)
}
