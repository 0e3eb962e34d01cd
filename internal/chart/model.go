package chart

import (
	"time"

	"txnhistory/internal/core"
	"txnhistory/internal/rollup"
	"txnhistory/internal/series"
)

// Bar is one pixel-ready rectangle
type Bar struct {
	Bucket time.Time `json:"bucket"`
	Value  float64   `json:"value"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// LinePoint is one vertex of the balance line
type LinePoint struct {
	Date    time.Time `json:"date"`
	Balance float64   `json:"balance"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
}

// Layer is one stacked overlay series with its colour
type Layer struct {
	Index  int            `json:"index"`
	Colour string         `json:"colour"`
	Points []StackedPoint `json:"points"`
	Bars   []Bar          `json:"bars"`
}

// BaselineModel is the initial chart over the whole dataset
type BaselineModel struct {
	Geometry     Geometry     `json:"geometry"`
	Scales       Scales       `json:"scales"`
	Extent       [2]time.Time `json:"extent"`
	Credits      []core.Point `json:"credits"`
	Debits       []core.Point `json:"debits"`
	CreditBars   []Bar        `json:"credit_bars"`
	DebitBars    []Bar        `json:"debit_bars"`
	Balance      []LinePoint  `json:"balance"`
	CreditColour string       `json:"credit_colour"`
	DebitColour  string       `json:"debit_colour"`
}

// OverlayModel is the stacked search overlay drawn in the overlay band
type OverlayModel struct {
	Geometry Geometry `json:"geometry"`
	Scales   Scales   `json:"scales"`
	Credits  []Layer  `json:"credits"`
	Debits   []Layer  `json:"debits"`
}

// Baseline builds the whole-dataset chart: monthly credits above the centre
// line, debits below it and a balance line through every record. The value
// domain is twice the largest monthly total so both halves fit.
func Baseline(records []core.Record, opts Options) (BaselineModel, error) {
	if err := opts.Validate(); err != nil {
		return BaselineModel{}, err
	}

	credits := rollup.Sorted(rollup.Monthly(records, core.Credit))
	debits := rollup.Sorted(rollup.Monthly(records, core.Debit))
	geom := opts.Geometry(len(credits))
	extent, _ := DateExtent(records)

	crdrmax := max(MaxValue(credits), MaxValue(debits))
	height := geom.ChartHeight
	scales := ComputeScales(extent, [2]float64{0, crdrmax * 2}, [2]float64{0, geom.Width}, [2]float64{0, height})

	m := BaselineModel{
		Geometry:     geom,
		Scales:       scales,
		Extent:       extent,
		Credits:      credits,
		Debits:       debits,
		CreditBars:   make([]Bar, len(credits)),
		DebitBars:    make([]Bar, len(debits)),
		Balance:      make([]LinePoint, len(records)),
		CreditColour: opts.CreditColour,
		DebitColour:  opts.DebitColour,
	}

	for i, p := range credits {
		h := scales.Y.Map(p.Value)
		m.CreditBars[i] = Bar{
			Bucket: p.Bucket,
			Value:  p.Value,
			X:      scales.X.Map(p.Bucket) + geom.BarWidth/2,
			Y:      height/2 - h,
			Width:  geom.BarWidth,
			Height: h,
		}
	}
	for i, p := range debits {
		m.DebitBars[i] = Bar{
			Bucket: p.Bucket,
			Value:  p.Value,
			X:      scales.X.Map(p.Bucket) + geom.BarWidth/2,
			Y:      height / 2,
			Width:  geom.BarWidth,
			Height: scales.Y.Map(p.Value),
		}
	}
	for i, r := range records {
		balance := r.Balance.InexactFloat64()
		m.Balance[i] = LinePoint{
			Date:    r.Date,
			Balance: balance,
			X:       scales.X.Map(r.Date),
			Y:       height/2 - scales.Y.Map(balance),
		}
	}
	return m, nil
}

// Overlay aligns and stacks per-query credit and debit series inside the
// overlay band. The time axis spans extent so it matches the baseline.
func Overlay(credits, debits [][]core.Point, extent [2]time.Time, geom Geometry, opts Options) (OverlayModel, error) {
	credits = series.Align(credits)
	debits = series.Align(debits)

	crStacked, err := Stack(credits)
	if err != nil {
		return OverlayModel{}, err
	}
	drStacked, err := Stack(debits)
	if err != nil {
		return OverlayModel{}, err
	}

	top := geom.OverlayTop
	height := geom.OverlayBottom - geom.OverlayTop
	crmax := MaxStacked(credits)
	drmax := MaxStacked(debits)
	scales := ComputeScales(extent, [2]float64{0, crmax + drmax}, [2]float64{0, geom.Width}, [2]float64{0, height})

	m := OverlayModel{
		Geometry: geom,
		Scales:   scales,
		Credits:  make([]Layer, len(crStacked)),
		Debits:   make([]Layer, len(drStacked)),
	}

	for i, layer := range crStacked {
		bars := make([]Bar, len(layer))
		for j, p := range layer {
			bars[j] = Bar{
				Bucket: p.Bucket,
				Value:  p.Value,
				X:      scales.X.Map(p.Bucket) + geom.BarWidth/2,
				Y:      top + height/2 - scales.Y.Map(p.Base+p.Value),
				Width:  geom.BarWidth,
				Height: scales.Y.Map(p.Value),
			}
		}
		m.Credits[i] = Layer{Index: i, Colour: opts.CreditLayerColour(i), Points: layer, Bars: bars}
	}
	for i, layer := range drStacked {
		bars := make([]Bar, len(layer))
		for j, p := range layer {
			bars[j] = Bar{
				Bucket: p.Bucket,
				Value:  p.Value,
				X:      scales.X.Map(p.Bucket) + geom.BarWidth/2,
				Y:      top + height/2 + scales.Y.Map(p.Base),
				Width:  geom.BarWidth,
				Height: scales.Y.Map(p.Value),
			}
		}
		m.Debits[i] = Layer{Index: i, Colour: opts.DebitLayerColour(i), Points: layer, Bars: bars}
	}
	return m, nil
}
