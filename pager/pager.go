// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pager implements a horizontally scrolling list of cards that
comes to rest on card boundaries.

Cards are narrower than the viewport so the neighbouring cards peek in
from the sides. When a drag ends, the pager asks a snap.Calculator for
the card to settle on, using the content offset, the left inset, the
page width and the release velocity, and animates the content to the
returned offset. A single fling can therefore move across several
cards.
*/
package pager

import (
	"image"
	"log"
	"math"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"gioui.org/cardpager/gesture"
	"gioui.org/cardpager/internal/fling"
	"gioui.org/cardpager/snap"
)

// Pager displays n cards and pages between them. The zero value is
// usable, with no margins.
type Pager struct {
	// Margin is the distance between the viewport edges and a
	// centered card.
	Margin unit.Dp
	// Spacing is the gap between adjacent cards.
	Spacing unit.Dp
	// Threshold is the release velocity, in dp per second, below
	// which the fling direction is ignored and the nearest card
	// wins.
	Threshold float32
	// OnSettle, if set, is called with the card index each time the
	// content comes to rest after a drag, a wheel scroll or ScrollTo.
	OnSettle func(page int)

	geo  Geometry
	n    int
	init bool
	// offset is the content offset in pixels. The first card rests
	// at -geo.Inset.
	offset float32
	page   int

	drag gesture.Drag
	anim fling.Animation
	// settling is set while an animation started by a snap runs.
	settling bool
	wheelAt  time.Time
	wheeling bool
	// scrollTo is the card requested by ScrollTo.
	scrollTo int
	pending  bool
}

// Element lays out the card at index.
type Element func(gtx layout.Context, index int) layout.Dimensions

const (
	// wheelSettle is the idle time after a wheel scroll before the
	// content snaps.
	wheelSettle = 150 * time.Millisecond
	touchSlop   = unit.Dp(3)
	inf         = 1e6
)

// Page returns the card the pager rests on, or is settling towards.
func (p *Pager) Page() int {
	return p.page
}

// Dragging reports whether a pointer is dragging the content.
func (p *Pager) Dragging() bool {
	return p.drag.Dragging()
}

// Jump moves the content to a card without animation. It takes
// effect at the next Layout.
func (p *Pager) Jump(page int) {
	p.page = page
	p.pending = false
	p.init = false
	p.anim.Stop()
	p.settling = false
	p.wheeling = false
}

// ScrollTo animates the content to a card at the next Layout.
func (p *Pager) ScrollTo(page int) {
	p.scrollTo = page
	p.pending = true
}

// Layout the pager with n cards. Only the visible cards are laid
// out, each with exact constraints of the card size.
func (p *Pager) Layout(gtx layout.Context, n int, w Element) layout.Dimensions {
	p.n = n
	p.layoutGeometry(gtx)
	p.update(gtx)

	size := gtx.Constraints.Max
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, p)

	y := (size.Y - p.geo.Card.Y) / 2
	first, last := p.geo.Visible(n, p.offset)
	cgtx := gtx
	cgtx.Constraints = layout.Exact(p.geo.Card)
	for i := first; i < last; i++ {
		t := op.Offset(image.Pt(p.geo.CardPixel(i, p.offset), y)).Push(gtx.Ops)
		w(cgtx, i)
		t.Pop()
	}
	return layout.Dimensions{Size: size}
}

// layoutGeometry recomputes the card layout and keeps the content on
// the current card when the viewport changes.
func (p *Pager) layoutGeometry(gtx layout.Context) {
	geo := NewGeometry(gtx.Constraints.Max, gtx.Dp(p.Margin), gtx.Dp(p.Spacing))
	if !p.init {
		p.init = true
		p.geo = geo
		p.page = p.clamp(p.page)
		p.offset = geo.Offset(p.page)
		return
	}
	if geo != p.geo {
		p.geo = geo
		p.anim.Stop()
		p.settling = false
		p.offset = geo.Offset(p.clamp(p.page))
	}
}

func (p *Pager) update(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  p,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: pointer.ScrollRange{Min: -inf, Max: inf},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if de, ok := p.drag.Update(float32(gtx.Dp(touchSlop)), e); ok {
			if de.Grab {
				gtx.Execute(pointer.GrabCmd{Tag: p, ID: de.PointerID})
			}
			p.handle(gtx, de)
		}
	}
	if p.pending {
		p.pending = false
		p.anim.Stop()
		p.startSettle(gtx, p.clamp(p.scrollTo))
	}
	if p.wheeling {
		if at := p.wheelAt.Add(wheelSettle); gtx.Now.Before(at) {
			gtx.Execute(op.InvalidateCmd{At: at})
		} else {
			p.wheeling = false
			p.release(gtx, 0)
		}
	}
	p.animate(gtx)
}

// handle applies a drag event to the content.
func (p *Pager) handle(gtx layout.Context, e gesture.Event) {
	switch e.Kind {
	case gesture.KindPress:
		p.anim.Stop()
		p.settling = false
		p.wheeling = false
	case gesture.KindDrag:
		p.offset += e.Delta
	case gesture.KindScroll:
		p.anim.Stop()
		p.settling = false
		p.offset += e.Delta
		p.wheelAt = gtx.Now
		p.wheeling = true
		gtx.Execute(op.InvalidateCmd{At: gtx.Now.Add(wheelSettle)})
	case gesture.KindRelease:
		p.release(gtx, e.Velocity)
	}
}

// release decides the card to settle on for content released with
// velocity, in pixels per second, and starts moving towards it.
func (p *Pager) release(gtx layout.Context, velocity float32) {
	calc := snap.Calculator{Threshold: p.Threshold * gtx.Metric.PxPerDp}
	res, err := calc.TargetOffset(p.geo.Metrics(p.offset), snap.Velocity{X: velocity})
	page := res.Page
	if err != nil {
		log.Printf("pager: %v", err)
		page = p.nearest()
	}
	p.startSettle(gtx, p.clamp(page))
}

func (p *Pager) startSettle(gtx layout.Context, page int) {
	p.page = page
	p.anim.Start(gtx.Now, p.offset, p.geo.Offset(page), gtx.Metric.PxPerDp)
	p.settling = true
	if !p.anim.Active() {
		p.settle()
	}
}

func (p *Pager) animate(gtx layout.Context) {
	if !p.anim.Active() {
		return
	}
	v, active := p.anim.Tick(gtx.Now)
	p.offset = v
	if active {
		gtx.Execute(op.InvalidateCmd{})
		return
	}
	p.settle()
}

func (p *Pager) settle() {
	if !p.settling {
		return
	}
	p.settling = false
	if p.OnSettle != nil {
		p.OnSettle(p.page)
	}
}

// nearest returns the card closest to the content offset.
func (p *Pager) nearest() int {
	pos := float64(p.geo.Metrics(p.offset).Page())
	if math.IsNaN(pos) || pos < 0 {
		return 0
	}
	if pos > float64(p.n) {
		return p.n
	}
	return int(math.Round(pos))
}

// clamp limits page to the cards of the last Layout.
func (p *Pager) clamp(page int) int {
	if page > p.n-1 {
		page = p.n - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}
