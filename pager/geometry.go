// SPDX-License-Identifier: Unlicense OR MIT

package pager

import (
	"image"
	"math"

	"gioui.org/cardpager/snap"
)

// Geometry is the layout of equally sized cards in a viewport. All
// values are in pixels.
type Geometry struct {
	// Viewport is the visible area.
	Viewport image.Point
	// Card is the size of a single card.
	Card image.Point
	// Inset is the space before the first card, and after the last.
	Inset int
	// Spacing is the gap between adjacent cards.
	Spacing int
}

// NewGeometry computes the card layout for a viewport. Cards span the
// viewport width minus margin on both sides and three quarters of the
// viewport height, the height of the area the pager is given.
func NewGeometry(viewport image.Point, margin, spacing int) Geometry {
	if margin < 0 {
		margin = 0
	}
	if spacing < 0 {
		spacing = 0
	}
	w := viewport.X - 2*margin
	if w < 1 {
		w = 1
	}
	return Geometry{
		Viewport: viewport,
		Card:     image.Pt(w, viewport.Y*3/4),
		Inset:    margin,
		Spacing:  spacing,
	}
}

// PageWidth is the distance between the leading edges of adjacent
// cards.
func (g Geometry) PageWidth() int {
	return g.Card.X + g.Spacing
}

// Metrics returns the snap metrics for content scrolled to offset.
func (g Geometry) Metrics(offset float32) snap.Metrics {
	return snap.Metrics{
		ContentOffsetX: offset,
		LeftInset:      float32(g.Inset),
		PageWidth:      float32(g.PageWidth()),
	}
}

// Offset returns the content offset showing card i.
func (g Geometry) Offset(i int) float32 {
	return g.Metrics(0).Offset(i)
}

// CardX returns the viewport position of the leading edge of card i
// for content scrolled to offset.
func (g Geometry) CardX(i int, offset float32) float32 {
	return float32(i*g.PageWidth()) - offset
}

// CardPixel is CardX rounded to the nearest pixel.
func (g Geometry) CardPixel(i int, offset float32) int {
	return int(math.Round(float64(g.CardX(i, offset))))
}

// Visible returns the range [first, last) of the n cards that
// intersect the viewport for content scrolled to offset.
func (g Geometry) Visible(n int, offset float32) (first, last int) {
	pw := float32(g.PageWidth())
	first = int((offset - float32(g.Card.X)) / pw)
	if first < 0 {
		first = 0
	}
	for first < n && g.CardX(first, offset)+float32(g.Card.X) <= 0 {
		first++
	}
	last = first
	for last < n && g.CardX(last, offset) < float32(g.Viewport.X) {
		last++
	}
	return first, last
}
