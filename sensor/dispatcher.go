// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/kortschak/classio/face"
	"github.com/kortschak/classio/internal/ring"
)

// Dispatcher delivers posted events to registered handlers.
//
// Events are held in a bounded backlog. When the backlog is full the
// oldest pending event is dropped. Handlers are called from the goroutine
// calling Run or Flush, one event at a time and in the order the events
// were posted.
type Dispatcher struct {
	mu       sync.Mutex
	queue    *ring.Buffer[Event]
	dropped  int
	handlers [kinds][]*Subscription

	// deliver serialises handler calls.
	deliver sync.Mutex

	ready chan struct{}

	// fault is called with a *HandlerPanic when a handler panics.
	fault func(error)
}

// NewDispatcher returns a new Dispatcher holding at most backlog
// pending events. A backlog less than one is treated as one.
func NewDispatcher(backlog int) *Dispatcher {
	return &Dispatcher{
		queue: ring.NewBuffer[Event](max(backlog, 1)),
		ready: make(chan struct{}, 1),
	}
}

// Subscription is a handler registration.
type Subscription struct {
	// ID is the unique identifier of the subscription.
	ID uuid.UUID

	kind   kind
	handle func(Event)
	d      *Dispatcher
}

// Cancel deregisters the subscription. Cancel is idempotent.
func (s *Subscription) Cancel() {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.handlers[s.kind] = slices.DeleteFunc(s.d.handlers[s.kind], func(e *Subscription) bool {
		return e == s
	})
}

func (d *Dispatcher) subscribe(k kind, h func(Event)) *Subscription {
	s := &Subscription{ID: uuid.New(), kind: k, handle: h, d: d}
	d.mu.Lock()
	d.handlers[k] = append(d.handlers[k], s)
	d.mu.Unlock()
	return s
}

// OnMinuteTick registers h to be called for each MinuteTick.
func (d *Dispatcher) OnMinuteTick(h func(face.ClockSample)) *Subscription {
	return d.subscribe(minuteKind, func(e Event) { h(e.(MinuteTick).Clock) })
}

// OnHourTick registers h to be called for each HourTick.
func (d *Dispatcher) OnHourTick(h func(face.ClockSample)) *Subscription {
	return d.subscribe(hourKind, func(e Event) { h(e.(HourTick).Clock) })
}

// OnBattery registers h to be called for each BatteryChanged.
func (d *Dispatcher) OnBattery(h func(face.BatteryState)) *Subscription {
	return d.subscribe(batteryKind, func(e Event) { h(e.(BatteryChanged).Battery) })
}

// OnConnectivity registers h to be called for each ConnectivityChanged.
func (d *Dispatcher) OnConnectivity(h func(face.ConnectivityState)) *Subscription {
	return d.subscribe(connectivityKind, func(e Event) { h(e.(ConnectivityChanged).Connectivity) })
}

// HandlerPanic is the error reported when a handler panics.
type HandlerPanic struct {
	ID    uuid.UUID // ID of the cancelled subscription
	Event Event
	Value any
}

func (e *HandlerPanic) Error() string {
	return fmt.Sprintf("handler %s panicked on %T: %v", e.ID, e.Event, e.Value)
}

// SetFaultHandler sets the function called when a handler panics. The
// panicking subscription is cancelled and a *HandlerPanic is passed to
// f. If no fault handler is set, handler panics are not recovered.
func (d *Dispatcher) SetFaultHandler(f func(error)) {
	d.mu.Lock()
	d.fault = f
	d.mu.Unlock()
}

// Post queues e for delivery. It does not block and is safe to call
// from event source callbacks.
func (d *Dispatcher) Post(e Event) {
	d.mu.Lock()
	d.dropped += d.queue.Write([]Event{e})
	d.mu.Unlock()
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

// Pending returns the number of events waiting for delivery.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.queue.Len()
}

// Dropped returns the number of events dropped due to a full backlog.
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Flush delivers all pending events and returns the number delivered.
func (d *Dispatcher) Flush() int {
	d.deliver.Lock()
	defer d.deliver.Unlock()
	var n int
	for {
		e, handlers, ok := d.next()
		if !ok {
			return n
		}
		for _, s := range handlers {
			d.call(s, e)
		}
		n++
	}
}

func (d *Dispatcher) call(s *Subscription, e Event) {
	d.mu.Lock()
	fault := d.fault
	d.mu.Unlock()
	if fault != nil {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			s.Cancel()
			fault(&HandlerPanic{ID: s.ID, Event: e, Value: v})
		}()
	}
	s.handle(e)
}

func (d *Dispatcher) next() (Event, []*Subscription, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [1]Event
	if d.queue.Read(buf[:]) == 0 {
		return nil, nil, false
	}
	return buf[0], slices.Clone(d.handlers[buf[0].kind()]), true
}

// Run delivers events as they are posted until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		d.Flush()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.ready:
		}
	}
}
