// Package chart turns monthly series into pixel-ready models: scales,
// stacked layers, bar geometry and colours. It never draws anything itself.
package chart

import (
	"fmt"
	"strings"
)

// Margin is the space kept free around the drawing area
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Options enumerates every recognised chart setting
type Options struct {
	// Size of the node the chart is drawn into, margins included
	NodeWidth  float64
	NodeHeight float64
	Margin     Margin

	// Baseline chart height as a fraction of the inner height
	ChartFraction float64

	// Search overlay band, as fractions of the inner height
	OverlayTop    float64
	OverlayBottom float64

	// Baseline bar colours
	CreditColour string
	DebitColour  string

	// Single colour for every overlay layer; empty uses the palettes
	OverlayCreditColour string
	OverlayDebitColour  string

	CreditPalette []string
	DebitPalette  []string
}

// DefaultCreditPalette colours stacked credit layers, bottom first
var DefaultCreditPalette = []string{"#3182bd", "#c6dbef", "#31a354", "#c7e9c0", "#00ff00"}

// DefaultDebitPalette colours stacked debit layers, bottom first
var DefaultDebitPalette = []string{"#e6550d", "#fdd0a2", "#756bb1", "#dadaeb", "#ff0000"}

// DefaultOptions returns the standard chart layout
func DefaultOptions() Options {
	return Options{
		NodeWidth:     1200,
		NodeHeight:    700,
		Margin:        Margin{Top: 30, Right: 20, Bottom: 20, Left: 20},
		ChartFraction: 0.65,
		OverlayTop:    0.65,
		OverlayBottom: 0.85,
		CreditColour:  "rgb(0, 200, 0)",
		DebitColour:   "rgb(200, 0, 0)",
		CreditPalette: append([]string(nil), DefaultCreditPalette...),
		DebitPalette:  append([]string(nil), DefaultDebitPalette...),
	}
}

// Validate checks the layout is drawable
func (o Options) Validate() error {
	var errors []string

	if o.NodeWidth <= 0 || o.NodeHeight <= 0 {
		errors = append(errors, fmt.Sprintf("invalid chart size %vx%v: must be positive", o.NodeWidth, o.NodeHeight))
	} else {
		if w := o.innerWidth(); w <= 0 {
			errors = append(errors, fmt.Sprintf("margins leave no drawing width (%v)", w))
		}
		if h := o.innerHeight(); h <= 0 {
			errors = append(errors, fmt.Sprintf("margins leave no drawing height (%v)", h))
		}
	}

	if o.ChartFraction <= 0 || o.ChartFraction > 1 {
		errors = append(errors, fmt.Sprintf("invalid chart fraction %v: must be in (0, 1]", o.ChartFraction))
	}

	if o.OverlayTop < 0 || o.OverlayBottom > 1 || o.OverlayTop >= o.OverlayBottom {
		errors = append(errors, fmt.Sprintf("invalid overlay band [%v, %v]: need 0 <= top < bottom <= 1", o.OverlayTop, o.OverlayBottom))
	}

	if len(o.CreditPalette) == 0 && o.OverlayCreditColour == "" {
		errors = append(errors, "credit palette cannot be empty without an overlay credit colour")
	}
	if len(o.DebitPalette) == 0 && o.OverlayDebitColour == "" {
		errors = append(errors, "debit palette cannot be empty without an overlay debit colour")
	}

	if len(errors) > 0 {
		return fmt.Errorf("chart options validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// CreditLayerColour returns the colour of the i-th credit layer
func (o Options) CreditLayerColour(i int) string {
	return pick(o.CreditPalette, o.OverlayCreditColour, i)
}

// DebitLayerColour returns the colour of the i-th debit layer
func (o Options) DebitLayerColour(i int) string {
	return pick(o.DebitPalette, o.OverlayDebitColour, i)
}

func pick(palette []string, override string, i int) string {
	if override != "" {
		return override
	}
	if len(palette) == 0 || i < 0 {
		return ""
	}
	return palette[i%len(palette)]
}

func (o Options) innerWidth() float64 {
	return o.NodeWidth - o.Margin.Left - o.Margin.Right
}

func (o Options) innerHeight() float64 {
	return o.NodeHeight - o.Margin.Top - o.Margin.Bottom
}

// Geometry holds the pixel dimensions shared by the baseline and overlay
type Geometry struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ChartHeight   float64 `json:"chart_height"`
	BarWidth      float64 `json:"bar_width"`
	OverlayTop    float64 `json:"overlay_top"`
	OverlayBottom float64 `json:"overlay_bottom"`
}

// Geometry lays out the chart for the given number of baseline credit
// buckets. Bars are one pixel narrower than their slot.
func (o Options) Geometry(buckets int) Geometry {
	width := o.innerWidth()
	height := o.innerHeight()

	barWidth := width
	if buckets > 0 {
		barWidth = width/float64(buckets) - 1
	}
	if barWidth < 0 {
		barWidth = 0
	}

	return Geometry{
		Width:         width,
		Height:        height,
		ChartHeight:   height * o.ChartFraction,
		BarWidth:      barWidth,
		OverlayTop:    height * o.OverlayTop,
		OverlayBottom: height * o.OverlayBottom,
	}
}
