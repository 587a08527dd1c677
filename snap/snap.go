// SPDX-License-Identifier: Unlicense OR MIT

/*
Package snap computes where a paged scroll surface should come to
rest after a drag.

A surface scrolling horizontally through equally sized pages reports
its current content offset, its left content inset, the width of one
page and the velocity of the fling that ended the drag. TargetOffset
picks the page to settle on and returns the content offset that shows
it:

	page = (offset + inset) / pageWidth
	velocity >  threshold: round page up
	velocity < -threshold: round page down
	otherwise:             round page to nearest, ties away from zero
	target = max(page, 0) * pageWidth - inset

Calculations are pure and may run concurrently.
*/
package snap

import (
	"math"
)

// maxPage bounds page indices so they convert to int on every
// platform. It also rejects +Inf positions from tiny page widths.
const maxPage = math.MaxInt32

// Metrics describe the state of a scroll surface at the end of
// a drag. All values are in the surface's coordinate space.
type Metrics struct {
	// ContentOffsetX is the current horizontal content offset.
	// A surface resting on the first page with a left inset has
	// offset -LeftInset.
	ContentOffsetX float32
	// LeftInset is the padding before the first page.
	LeftInset float32
	// PageWidth is the distance between two adjacent pages: the
	// item width plus the spacing between items.
	PageWidth float32
}

// Velocity is the fling velocity measured at drag release. A positive
// X moves the content towards higher offsets, that is to the next page.
type Velocity struct {
	X float32
}

// Result is the outcome of a snap calculation.
type Result struct {
	// TargetOffsetX is the content offset the surface must settle
	// at.
	TargetOffsetX float32
	// Page is the index of the page at TargetOffsetX.
	Page int
}

// Calculator computes snap targets. The zero value uses a
// velocity threshold of zero, so any movement at release picks
// a direction.
type Calculator struct {
	// Threshold is the velocity magnitude below which the fling
	// direction is ignored and the nearest page wins.
	Threshold float32
}

// TargetOffset is shorthand for Calculator{Threshold: threshold}.TargetOffset(m, v).
func TargetOffset(m Metrics, v Velocity, threshold float32) (Result, error) {
	return Calculator{Threshold: threshold}.TargetOffset(m, v)
}

// TargetOffset returns the page and content offset the surface described
// by m should settle at after a drag released with velocity v.
func (c Calculator) TargetOffset(m Metrics, v Velocity) (Result, error) {
	if err := c.check(m, v); err != nil {
		return Result{}, err
	}
	page := float64(m.Page())
	vx := float64(v.X)
	th := float64(c.Threshold)
	switch {
	case vx > th:
		page = math.Ceil(page)
	case vx < -th:
		page = math.Floor(page)
	default:
		page = math.Round(page)
	}
	if page < 0 {
		page = 0
	}
	if page > maxPage {
		return Result{}, &InputError{Field: "page position", Value: m.Page()}
	}
	p := int(page)
	return Result{TargetOffsetX: m.Offset(p), Page: p}, nil
}

func (c Calculator) check(m Metrics, v Velocity) error {
	switch {
	case !finite(m.PageWidth) || m.PageWidth <= 0:
		return &ConfigError{Field: "page width", Value: m.PageWidth}
	case !finite(m.ContentOffsetX):
		return &InputError{Field: "content offset", Value: m.ContentOffsetX}
	case !finite(m.LeftInset):
		return &InputError{Field: "left inset", Value: m.LeftInset}
	case !finite(v.X):
		return &InputError{Field: "velocity", Value: v.X}
	case !finite(c.Threshold) || c.Threshold < 0:
		return &InputError{Field: "velocity threshold", Value: c.Threshold}
	}
	return nil
}

// Page returns the fractional page position of the content offset.
func (m Metrics) Page() float32 {
	return (m.ContentOffsetX + m.LeftInset) / m.PageWidth
}

// Offset returns the content offset at which page is shown.
func (m Metrics) Offset(page int) float32 {
	return float32(page)*m.PageWidth - m.LeftInset
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
