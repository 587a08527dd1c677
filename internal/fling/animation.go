// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Animation glides a value towards a target with a cubic ease-out.
// The duration grows with the distance to travel.
type Animation struct {
	from, to float32
	start    time.Time
	duration time.Duration
	active   bool
}

const (
	// durationPerDp is the time spent per dp of travel.
	durationPerDp = 1200 * time.Microsecond
	minDuration   = 120 * time.Millisecond
	maxDuration   = 400 * time.Millisecond
)

// Start an animation from the value from to the value to at time now.
// pxPerDp scales the distance to device independent pixels.
func (a *Animation) Start(now time.Time, from, to, pxPerDp float32) {
	if pxPerDp <= 0 {
		pxPerDp = 1
	}
	dist := math.Abs(float64(to-from)) / float64(pxPerDp)
	d := time.Duration(dist * float64(durationPerDp))
	switch {
	case d < minDuration:
		d = minDuration
	case d > maxDuration:
		d = maxDuration
	}
	*a = Animation{
		from:     from,
		to:       to,
		start:    now,
		duration: d,
		active:   from != to,
	}
}

// Active reports whether the animation is in progress.
func (a *Animation) Active() bool {
	return a.active
}

// Target returns the value the animation ends at.
func (a *Animation) Target() float32 {
	return a.to
}

// Stop the animation, leaving the value where it is.
func (a *Animation) Stop() {
	a.active = false
}

// Tick computes the value at time now and reports whether the
// animation is still in progress. The final tick returns the
// exact target.
func (a *Animation) Tick(now time.Time) (float32, bool) {
	if !a.active {
		return a.to, false
	}
	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		a.active = false
		return a.to, false
	}
	if elapsed < 0 {
		elapsed = 0
	}
	p := float64(elapsed) / float64(a.duration)
	ease := 1 - math.Pow(1-p, 3)
	return a.from + float32(ease)*(a.to-a.from), true
}
