// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/classio/battery"
	"github.com/kortschak/classio/face"
	"github.com/kortschak/classio/internal/closer"
	"github.com/kortschak/classio/internal/forkbeard"
	"github.com/kortschak/classio/sensor"
	"github.com/kortschak/classio/surface"
)

type config struct {
	addr    string // peer bluetooth address, may be empty
	power   string // sysfs power supply directory, may be empty
	peer    bool   // show the peer's battery level
	backlog int
}

// watch connects the sensor sources to the face controller and the
// display surface.
type watch struct {
	face    *face.Controller
	surface *surface.Surface
	events  *sensor.Dispatcher
	subs    []*sensor.Subscription
	update  chan image.Image

	closers closer.Stack
	cancel  context.CancelFunc
}

// addCloser holds c until the watch is closed. If the watch is already
// closed, c is closed now.
func (w *watch) addCloser(c io.Closer) {
	err := w.closers.Add(c)
	if err != nil {
		log.Printf("failed to close late resource: %v", err)
	}
}

// newWatch returns a running watch. Frames are sent on update, which must
// have a capacity of at least one; unshown frames are replaced.
func newWatch(ctx context.Context, cfg config, surf *surface.Surface, update chan image.Image) (*watch, error) {
	w := &watch{
		surface: surf,
		events:  sensor.NewDispatcher(cfg.backlog),
		update:  update,
	}

	initial, peek, err := batterySource(cfg)
	if err != nil {
		return nil, err
	}
	w.face = face.NewController(peek)

	// Show the face before the first tick arrives. The ticker counts
	// from the same instant so a boundary passed during startup is not
	// lost.
	start := time.Now()
	err = w.apply(w.face.Initial(face.Sample(start), initial, face.ConnectivityState{}))
	if err != nil {
		return nil, err
	}

	w.subs = []*sensor.Subscription{
		w.events.OnMinuteTick(func(c face.ClockSample) { w.show(w.face.MinuteTick(c)) }),
		w.events.OnBattery(func(b face.BatteryState) { w.show(w.face.BatteryChanged(b)) }),
		w.events.OnConnectivity(func(c face.ConnectivityState) { w.show(w.face.ConnectivityChanged(c)) }),
	}
	for _, s := range w.subs {
		log.Printf("subscribed %s", s.ID)
	}
	w.events.SetFaultHandler(func(err error) {
		var hp *sensor.HandlerPanic
		if errors.As(err, &hp) {
			log.Printf("cancelled subscription %s: %v", hp.ID, err)
			return
		}
		log.Print(err)
	})

	ctx, w.cancel = context.WithCancel(ctx)
	go func() {
		err := sensor.TickFrom(ctx, time.Minute, start, time.Now, w.events.Post)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("clock stopped: %v", err)
		}
	}()
	go w.events.Run(ctx)

	if cfg.addr != "" {
		var addr bluetooth.Address
		err = addr.UnmarshalText([]byte(cfg.addr))
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("invalid bluetooth address: %w", err)
		}
		adapter := bluetooth.DefaultAdapter
		err = adapter.Enable()
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to enable bluetooth: %w", err)
		}
		w.addCloser(sensor.WatchConnection(adapter, addr, w.events.Post))
		go w.connect(adapter, addr, cfg.peer)
	}

	return w, nil
}

// batterySource returns the initial battery state and the battery peek
// function for the face controller. When the host has no battery, or the
// peer battery is shown, peek is nil and the face relies on battery events.
func batterySource(cfg config) (initial face.BatteryState, peek func() (face.BatteryState, bool), err error) {
	initial = face.BatteryState{Percent: 100}
	if cfg.peer {
		return initial, nil, nil
	}
	psu, err := hostPowerSupply(cfg.power)
	if err != nil {
		log.Printf("no host battery: %v", err)
		return initial, nil, nil
	}
	st, err := psu.Read()
	if err != nil {
		return initial, nil, fmt.Errorf("failed to read host battery: %w", err)
	}
	peek = func() (face.BatteryState, bool) {
		st, err := psu.Read()
		if err != nil {
			log.Printf("failed to read host battery: %v", err)
			return face.BatteryState{}, false
		}
		return face.BatteryState(st), true
	}
	return face.BatteryState(st), peek, nil
}

func hostPowerSupply(dir string) (battery.PowerSupply, error) {
	if dir != "" {
		return battery.PowerSupply{Dir: dir}, nil
	}
	return battery.FindPowerSupply(battery.SysfsRoot)
}

// connect scans for the peer at addr and connects to it. If peer is true
// the battery level of the peer is posted to the face.
func (w *watch) connect(adapter *bluetooth.Adapter, addr bluetooth.Address, peer bool) {
	fmt.Println("scanning...")
	var (
		dev bluetooth.Device
		err error
	)
	found := false
	scanErr := adapter.Scan(func(adapter *bluetooth.Adapter, res bluetooth.ScanResult) {
		if res.Address != addr {
			return
		}
		fmt.Printf("found device: mac: %s rssi: %d name: %q\n", res.Address, res.RSSI, res.LocalName())
		dev, err = adapter.Connect(res.Address, bluetooth.ConnectionParams{})
		if err != nil {
			log.Printf("failed to connect: %v", err)
		} else {
			found = true
		}
		adapter.StopScan()
	})
	if scanErr != nil {
		log.Printf("failed to scan: %v", scanErr)
		return
	}
	if !found {
		return
	}
	w.addCloser(disconnector{&dev})
	w.events.Post(sensor.ConnectivityChanged{Connectivity: face.ConnectivityState{Connected: true}})

	if !peer {
		return
	}
	level, err := battery.Level(&dev)
	if err != nil {
		if errors.Is(err, forkbeard.ErrNotFound) {
			log.Printf("peer has no battery service")
		} else {
			log.Printf("failed to read peer battery: %v", err)
		}
		return
	}
	w.events.Post(sensor.BatteryChanged{Battery: face.BatteryState{Percent: level}})
	l, err := battery.NewLevelListener(&dev, func(level int, err error) {
		if err != nil {
			log.Printf("failed to get battery level: %v", err)
			return
		}
		w.events.Post(sensor.BatteryChanged{Battery: face.BatteryState{Percent: level}})
	})
	if err != nil {
		log.Printf("failed to listen for battery level: %v", err)
		return
	}
	w.addCloser(l)
}

type disconnector struct {
	dev *bluetooth.Device
}

func (d disconnector) Close() error { return d.dev.Disconnect() }

// show applies writes and logs failures. It is called by the dispatcher.
func (w *watch) show(writes []face.Write) {
	err := w.apply(writes)
	if err != nil {
		log.Printf("failed to update display: %v", err)
	}
}

func (w *watch) apply(writes []face.Write) error {
	err := w.surface.Apply(writes)
	if err != nil {
		return fmt.Errorf("failed to apply display writes: %w", err)
	}
	img := w.surface.Snapshot()
	for {
		select {
		case w.update <- img:
			return nil
		default:
		}
		// Replace a frame that has not yet been shown.
		select {
		case <-w.update:
		default:
		}
	}
}

func (w *watch) Close() error {
	for _, s := range w.subs {
		s.Cancel()
	}
	if w.cancel != nil {
		w.cancel()
	}
	return w.closers.Close()
}
