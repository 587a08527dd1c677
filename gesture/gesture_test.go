// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

const slop = 3

func touch(kind pointer.Kind, x float32, t time.Duration) pointer.Event {
	return pointer.Event{
		Kind:     kind,
		Source:   pointer.Touch,
		Position: f32.Pt(x, 100),
		Time:     t,
	}
}

// swipe returns a touch drag from x0 to x1 in n steps of 10ms.
func swipe(x0, x1 float32, n int) []pointer.Event {
	events := []pointer.Event{touch(pointer.Press, x0, 0)}
	for i := 1; i <= n; i++ {
		x := x0 + (x1-x0)*float32(i)/float32(n)
		events = append(events, touch(pointer.Drag, x, time.Duration(i)*10*time.Millisecond))
	}
	return append(events, touch(pointer.Release, x1, time.Duration(n)*10*time.Millisecond))
}

func run(d *Drag, events []pointer.Event) []Event {
	var out []Event
	for _, e := range events {
		if ev, ok := d.Update(slop, e); ok {
			out = append(out, ev)
		}
	}
	return out
}

func TestSwipe(t *testing.T) {
	for _, tc := range []struct {
		label  string
		x0, x1 float32
		dir    float32
	}{
		{label: "finger left advances", x0: 300, x1: 100, dir: 1},
		{label: "finger right retreats", x0: 100, x1: 300, dir: -1},
	} {
		t.Run(tc.label, func(t *testing.T) {
			var d Drag
			events := run(&d, swipe(tc.x0, tc.x1, 10))
			if got := events[0].Kind; got != KindPress {
				t.Fatalf("first event: got %v, want Press", got)
			}
			last := events[len(events)-1]
			if last.Kind != KindRelease {
				t.Fatalf("last event: got %v, want Release", last.Kind)
			}
			if last.Velocity*tc.dir <= 0 {
				t.Errorf("velocity %v has the wrong sign", last.Velocity)
			}
			var total float32
			grabs := 0
			for _, e := range events[1 : len(events)-1] {
				if e.Kind != KindDrag {
					t.Fatalf("got %v during drag", e.Kind)
				}
				if e.Grab {
					grabs++
				}
				total += e.Delta
			}
			if grabs != 1 {
				t.Errorf("got %d grabs, want 1", grabs)
			}
			if want := tc.x0 - tc.x1; total != want {
				t.Errorf("total delta: got %v, want %v", total, want)
			}
			if d.Dragging() {
				t.Error("still dragging after release")
			}
		})
	}
}

func TestSlop(t *testing.T) {
	var d Drag
	events := run(&d, []pointer.Event{
		touch(pointer.Press, 100, 0),
		touch(pointer.Drag, 101, 10*time.Millisecond),
		touch(pointer.Drag, 98, 20*time.Millisecond),
		touch(pointer.Release, 99, 30*time.Millisecond),
	})
	if len(events) != 2 {
		t.Fatalf("got %d events, want press and release: %+v", len(events), events)
	}
	if v := events[1].Velocity; v != 0 {
		t.Errorf("tap velocity: got %v, want 0", v)
	}
}

func TestCancel(t *testing.T) {
	var d Drag
	events := swipe(300, 100, 5)
	events[len(events)-1].Kind = pointer.Cancel
	got := run(&d, events)
	last := got[len(got)-1]
	if last.Kind != KindRelease || last.Velocity != 0 {
		t.Errorf("got %+v, want release without velocity", last)
	}
}

func TestCancelWithoutPointerID(t *testing.T) {
	var d Drag
	events := swipe(300, 100, 5)
	for i := range events[:len(events)-1] {
		events[i].PointerID = 3
	}
	events[len(events)-1] = pointer.Event{Kind: pointer.Cancel}
	got := run(&d, events)
	last := got[len(got)-1]
	if last.Kind != KindRelease || last.Velocity != 0 || last.PointerID != 3 {
		t.Errorf("got %+v, want release of pointer 3 without velocity", last)
	}
	if d.Dragging() {
		t.Fatal("still dragging after cancel")
	}
	press := touch(pointer.Press, 200, time.Second)
	press.PointerID = 4
	if ev, ok := d.Update(slop, press); !ok || ev.Kind != KindPress {
		t.Errorf("press after cancel: got %+v, %v", ev, ok)
	}
}

func TestCancelWhileIdle(t *testing.T) {
	var d Drag
	if _, ok := d.Update(slop, pointer.Event{Kind: pointer.Cancel}); ok {
		t.Error("cancel without a pressed pointer was reported")
	}
}

func TestSecondPointerIgnored(t *testing.T) {
	var d Drag
	d.Update(slop, touch(pointer.Press, 100, 0))
	other := touch(pointer.Drag, 10, time.Millisecond)
	other.PointerID = 2
	if _, ok := d.Update(slop, other); ok {
		t.Error("drag from a second pointer was reported")
	}
	other.Kind = pointer.Press
	if _, ok := d.Update(slop, other); ok {
		t.Error("press from a second pointer was reported")
	}
}

func TestMouseButtons(t *testing.T) {
	var d Drag
	press := pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonSecondary}
	if _, ok := d.Update(slop, press); ok {
		t.Error("secondary button press was reported")
	}
	press.Buttons = pointer.ButtonPrimary
	if _, ok := d.Update(slop, press); !ok {
		t.Error("primary button press was not reported")
	}
}

func TestWheel(t *testing.T) {
	var d Drag
	ev, ok := d.Update(slop, pointer.Event{Kind: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(12, 0)})
	if !ok || ev.Kind != KindScroll || ev.Delta != 12 {
		t.Errorf("got %+v, %v", ev, ok)
	}
	if _, ok := d.Update(slop, pointer.Event{Kind: pointer.Scroll, Source: pointer.Mouse, Scroll: f32.Pt(0, 12)}); ok {
		t.Error("vertical scroll was reported")
	}
}
