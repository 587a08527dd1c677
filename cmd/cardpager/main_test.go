// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"image"
	"path/filepath"
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"gioui.org/cardpager/config"
	"gioui.org/cardpager/internal/state"
)

func TestApplyFlags(t *testing.T) {
	conf := config.Default()
	*cards = 3
	*margin = 20
	*threshold = 7
	t.Cleanup(func() { *cards, *margin, *threshold = 0, 0, 0 })
	applyFlags(&conf, map[string]bool{"cards": true, "margin": true})
	if conf.Cards != 3 || conf.Margin != 20 {
		t.Errorf("set flags not applied: %+v", conf)
	}
	if conf.Threshold != 0 {
		t.Errorf("unset threshold flag applied: %g", conf.Threshold)
	}
}

func TestRestoreLastCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := state.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), stateName, 4); err != nil {
		t.Fatal(err)
	}
	s.Close()

	conf := config.Default()
	conf.StatePath = path
	u, err := newUI(conf)
	if err != nil {
		t.Fatal(err)
	}
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(375, 667)),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Now:         time.Unix(0, 0),
	}
	u.Layout(gtx)
	if got := u.pager.Page(); got != 4 {
		t.Errorf("page: got %d, want 4", got)
	}

	u.settled(5)
	u.settled(6)
	if err := u.Close(); err != nil {
		t.Fatal(err)
	}
	s, err = state.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	page, ok, err := s.Load(context.Background(), stateName)
	if err != nil || !ok || page != 6 {
		t.Errorf("got %d, %v, %v; want 6 saved", page, ok, err)
	}
}

func TestSettledWithoutStore(t *testing.T) {
	u, err := newUI(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	u.settled(2)
	if err := u.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewUIBadColor(t *testing.T) {
	conf := config.Default()
	conf.Card = "nocolor"
	if _, err := newUI(conf); err == nil {
		t.Error("newUI accepted an unknown color")
	}
}

func BenchmarkUI(b *testing.B) {
	u, err := newUI(config.Default())
	if err != nil {
		b.Fatal(err)
	}
	var ops op.Ops
	now := time.Unix(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ops.Reset()
		gtx := layout.Context{
			Ops:         &ops,
			Constraints: layout.Exact(image.Pt(375, 667)),
			Metric:      unit.Metric{PxPerDp: 2, PxPerSp: 2},
			Now:         now.Add(time.Duration(i) * 16 * time.Millisecond),
		}
		u.Layout(gtx)
	}
}
