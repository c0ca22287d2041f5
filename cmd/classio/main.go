// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The classio command runs the classio watchface in a desktop window.
//
// The face shows the host clock and battery, and the connection state
// of a Bluetooth peer when one is given with -addr. Pressing S saves a
// PNG image of the face.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/x/explorer"

	"github.com/kortschak/classio/face"
	"github.com/kortschak/classio/surface"
)

func main() {
	addr := flag.String("addr", "", "bluetooth address of the peer to show connection state for")
	power := flag.String("power", "", "sysfs power supply directory (detected when empty)")
	peer := flag.Bool("peer-battery", false, "show the battery level of the peer instead of the host")
	backlog := flag.Int("backlog", 16, "maximum number of pending sensor events")
	out := flag.String("png", "", "render the face to a PNG file and exit")
	flag.Parse()
	if *peer && *addr == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg := config{
		addr:    *addr,
		power:   *power,
		peer:    *peer,
		backlog: *backlog,
	}

	surf, err := surface.New(surface.Screen(), surface.NewIcons())
	if err != nil {
		log.Fatal(err)
	}

	if *out != "" {
		err = render(*out, cfg, surf)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	update := make(chan image.Image, 1)
	w, err := newWatch(context.Background(), cfg, surf, update)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		w.Close()
		os.Exit(0)
	}()

	go func() {
		win := new(app.Window)
		win.Option(app.Title("classio"), app.Size(2*surface.Width, 2*surface.Height))
		if err := loop(win, update); err != nil {
			log.Fatal(err)
		}
		w.Close()
		os.Exit(0)
	}()
	app.Main()
}

// render writes a single frame of the face to the PNG file at path.
func render(path string, cfg config, surf *surface.Surface) error {
	battery, _, err := batterySource(cfg)
	if err != nil {
		return err
	}
	c := face.NewController(nil)
	err = surf.Apply(c.Initial(face.Sample(time.Now()), battery, face.ConnectivityState{}))
	if err != nil {
		return fmt.Errorf("failed to render face: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = png.Encode(f, surf.Snapshot())
	return errors.Join(err, f.Close())
}

// preview shows face frames in a window.
type preview struct {
	expl *explorer.Explorer
	face image.Image // most recent frame, nil until the first arrives
	ops  op.Ops
}

// loop shows frames received on update until the window is closed.
func loop(w *app.Window, update <-chan image.Image) error {
	p := preview{expl: explorer.NewExplorer(w)}

	// Window events are forwarded so they can be selected with frame
	// updates. Each must be handled before the next is requested.
	events := make(chan event.Event)
	handled := make(chan struct{})
	go func() {
		for {
			e := w.Event()
			events <- e
			<-handled
			if _, ok := e.(app.DestroyEvent); ok {
				return
			}
		}
	}()

	for {
		select {
		case p.face = <-update:
			w.Invalidate()
		case e := <-events:
			done, err := p.handle(e)
			handled <- struct{}{}
			if done {
				return err
			}
		}
	}
}

// handle processes a window event, reporting whether the window has
// been destroyed.
func (p *preview) handle(e event.Event) (done bool, err error) {
	p.expl.ListenEvents(e)
	switch e := e.(type) {
	case app.DestroyEvent:
		return true, e.Err
	case app.FrameEvent:
		gtx := app.NewContext(&p.ops, e)
		for {
			ev, ok := gtx.Event(key.Filter{Name: "S"})
			if !ok {
				break
			}
			if ev, ok := ev.(key.Event); ok && ev.State == key.Press && p.face != nil {
				go save(p.expl, p.face)
			}
		}
		p.layout(gtx)
		e.Frame(gtx.Ops)
	}
	return false, nil
}

func (p *preview) layout(gtx layout.Context) layout.Dimensions {
	if p.face == nil {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
	src := paint.NewImageOp(p.face)
	src.Filter = paint.FilterNearest
	return widget.Image{Src: src, Fit: widget.Contain}.Layout(gtx)
}

// save asks the user for a destination and writes img to it as a PNG.
func save(expl *explorer.Explorer, img image.Image) {
	f, err := expl.CreateFile("classio.png")
	if err != nil {
		if !errors.Is(err, explorer.ErrUserDecline) {
			log.Printf("failed to create image file: %v", err)
		}
		return
	}
	err = png.Encode(f, img)
	err = errors.Join(err, f.Close())
	if err != nil {
		log.Printf("failed to save image: %v", err)
	}
}
