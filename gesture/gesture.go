// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture detects horizontal drags of paged content.

Drag accepts low level pointer events and reduces them to scroll
distances while a pointer is down, and to a fling velocity when the
pointer is released. Distances and velocities are expressed in the
content's direction: dragging the finger to the left moves the content
towards higher offsets and yields positive values.
*/
package gesture

import (
	"gioui.org/io/pointer"

	"gioui.org/cardpager/internal/fling"
)

// Drag tracks a single pointer dragging content along the
// horizontal axis.
type Drag struct {
	pressed  bool
	dragging bool
	pid      pointer.ID
	start    float32
	last     float32

	estimator fling.Extrapolation
}

// Event is a reduced drag action.
type Event struct {
	Kind Kind
	// Delta is the content movement since the previous event, for
	// KindDrag and KindScroll.
	Delta float32
	// Velocity is the fling velocity at release in pixels per
	// second, for KindRelease.
	Velocity float32
	// Grab is set on the first KindDrag of a gesture, when the drag
	// exceeds the touch slop and the pointer should be claimed.
	Grab      bool
	PointerID pointer.ID
}

// Kind of a drag Event.
type Kind uint8

const (
	// KindPress is reported when a pointer goes down. Any running
	// content animation should stop.
	KindPress Kind = iota
	// KindDrag is reported for movement past the touch slop.
	KindDrag
	// KindRelease is reported when the pointer is released or the
	// gesture is cancelled. The content should settle.
	KindRelease
	// KindScroll is reported for mouse wheel and trackpad
	// scrolling.
	KindScroll
)

// Dragging reports whether a pointer is down.
func (d *Drag) Dragging() bool {
	return d.pressed
}

// Update processes a pointer event. slop is the distance in pixels
// a pointer must travel before the content follows it. Update reports
// false for events that do not affect the content.
func (d *Drag) Update(slop float32, e pointer.Event) (Event, bool) {
	switch e.Kind {
	case pointer.Press:
		if d.pressed {
			break
		}
		if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
			break
		}
		x := e.Position.X
		*d = Drag{pressed: true, pid: e.PointerID, start: x, last: x}
		d.estimator.Sample(e.Time, -x)
		return Event{Kind: KindPress, PointerID: e.PointerID}, true
	case pointer.Drag:
		if !d.pressed || d.pid != e.PointerID {
			break
		}
		x := e.Position.X
		d.estimator.Sample(e.Time, -x)
		var grab bool
		if !d.dragging {
			if dist := x - d.start; dist < slop && dist > -slop {
				break
			}
			d.dragging = true
			grab = true
		}
		delta := d.last - x
		d.last = x
		return Event{Kind: KindDrag, Delta: delta, Grab: grab, PointerID: d.pid}, true
	case pointer.Release:
		if !d.pressed || d.pid != e.PointerID {
			break
		}
		var v float32
		if d.dragging {
			d.estimator.Sample(e.Time, -e.Position.X)
			est := d.estimator.Estimate()
			if dist := est.Distance; dist >= slop || dist <= -slop {
				v = est.Velocity
			}
		}
		d.pressed = false
		d.dragging = false
		return Event{Kind: KindRelease, Velocity: v, PointerID: d.pid}, true
	case pointer.Cancel:
		// Cancel events carry no pointer ID; they end every pointer.
		if !d.pressed {
			break
		}
		d.pressed = false
		d.dragging = false
		return Event{Kind: KindRelease, PointerID: d.pid}, true
	case pointer.Scroll:
		if d.pressed || e.Scroll.X == 0 {
			break
		}
		return Event{Kind: KindScroll, Delta: e.Scroll.X}, true
	}
	return Event{}, false
}

func (k Kind) String() string {
	switch k {
	case KindPress:
		return "Press"
	case KindDrag:
		return "Drag"
	case KindRelease:
		return "Release"
	case KindScroll:
		return "Scroll"
	default:
		panic("invalid Kind")
	}
}
