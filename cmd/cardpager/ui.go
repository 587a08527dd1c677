// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"image"
	"image/color"
	"log"
	"strconv"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"gioui.org/cardpager/config"
	"gioui.org/cardpager/internal/state"
	"gioui.org/cardpager/pager"
)

// stateName keys the pager position in the state store.
const stateName = "cards"

// UI is the card pager screen.
type UI struct {
	theme      *material.Theme
	pager      pager.Pager
	cards      int
	top        unit.Dp
	background color.NRGBA
	card       color.NRGBA
	store      *state.Store
	// saves carries settled pages to the saver goroutine. Only the
	// latest unsaved page is kept.
	saves chan int
	saved chan struct{}
}

func run(w *app.Window, conf config.Config) error {
	u, err := newUI(conf)
	if err != nil {
		return err
	}
	defer u.Close()
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			u.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func newUI(conf config.Config) (*UI, error) {
	bg, err := config.ParseColor(conf.Background)
	if err != nil {
		return nil, err
	}
	card, err := config.ParseColor(conf.Card)
	if err != nil {
		return nil, err
	}
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	u := &UI{
		theme:      th,
		cards:      conf.Cards,
		top:        unit.Dp(conf.Top),
		background: bg,
		card:       card,
	}
	u.pager = pager.Pager{
		Margin:    unit.Dp(conf.Margin),
		Spacing:   unit.Dp(conf.Spacing),
		Threshold: conf.Threshold,
		OnSettle:  u.settled,
	}
	if conf.StatePath != "" {
		if err := u.restore(conf.StatePath); err != nil {
			log.Printf("cardpager: %v", err)
		}
	}
	return u, nil
}

// restore opens the state store and jumps to the saved card.
func (u *UI) restore(path string) error {
	s, err := state.Open(path)
	if err != nil {
		return err
	}
	u.store = s
	u.saves = make(chan int, 1)
	u.saved = make(chan struct{})
	go u.saver(u.saves, u.saved)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	page, ok, err := s.Load(ctx, stateName)
	if err != nil {
		return err
	}
	if ok {
		u.pager.Jump(page)
	}
	return nil
}

func (u *UI) settled(page int) {
	if *verbose {
		log.Printf("page %d", page)
	}
	if u.saves == nil {
		return
	}
	for {
		select {
		case u.saves <- page:
			return
		default:
		}
		// Replace a page the saver has not picked up yet.
		select {
		case <-u.saves:
		default:
		}
	}
}

// saver writes settled pages to the store off the frame loop.
func (u *UI) saver(saves <-chan int, saved chan<- struct{}) {
	defer close(saved)
	for page := range saves {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := u.store.Save(ctx, stateName, page); err != nil {
			log.Printf("cardpager: %v", err)
		}
		cancel()
	}
}

// Close waits for pending saves and releases the state store.
func (u *UI) Close() error {
	if u.saves != nil {
		close(u.saves)
		<-u.saved
		u.saves = nil
	}
	return u.store.Close()
}

// Layout the screen: the background and, below the top inset, the
// pager.
func (u *UI) Layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, u.background)
	return layout.Inset{Top: u.top}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return u.pager.Layout(gtx, u.cards, u.layoutCard)
	})
}

func (u *UI) layoutCard(gtx layout.Context, i int) layout.Dimensions {
	size := gtx.Constraints.Min
	paint.FillShape(gtx.Ops, u.card, clip.Rect(image.Rectangle{Max: size}).Op())
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		l := material.H3(u.theme, strconv.Itoa(i))
		l.Alignment = text.Middle
		return l.Layout(gtx)
	})
}
