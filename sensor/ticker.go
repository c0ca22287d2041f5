// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sensor

import (
	"context"
	"fmt"
	"time"

	"github.com/kortschak/classio/face"
)

// Tick posts a clock event at each unit boundary of the local wall
// clock until ctx is cancelled. Valid units are time.Minute, which posts
// MinuteTick events, and time.Hour, which posts HourTick events. If now
// is nil, time.Now is used.
//
// The wait is recalculated from the wall clock after every tick, so
// timer latency does not accumulate.
func Tick(ctx context.Context, unit time.Duration, now func() time.Time, post func(Event)) error {
	if now == nil {
		now = time.Now
	}
	return TickFrom(ctx, unit, now(), now, post)
}

// TickFrom is like Tick, but the first boundary is the one following
// from. If that boundary has already passed when TickFrom is called, the
// first event is posted immediately.
func TickFrom(ctx context.Context, unit time.Duration, from time.Time, now func() time.Time, post func(Event)) error {
	if unit != time.Minute && unit != time.Hour {
		return fmt.Errorf("invalid tick unit: %v", unit)
	}
	if now == nil {
		now = time.Now
	}
	t := from
	for {
		timer := time.NewTimer(nextBoundary(t, unit).Sub(now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		t = now()
		clock := face.Sample(t)
		if unit == time.Hour {
			post(HourTick{Clock: clock})
		} else {
			post(MinuteTick{Clock: clock})
		}
	}
}

// nextBoundary returns the start of the unit following t in t's location.
// Minute boundaries are found on absolute time so that a zone offset
// change between t and the boundary does not skip or repeat a minute.
func nextBoundary(t time.Time, unit time.Duration) time.Time {
	next := t.Truncate(time.Minute).Add(time.Minute)
	if unit == time.Minute {
		return next
	}
	// Step to the next local zero minute. The offset may change within
	// the step, so check the local minute again on arrival.
	for {
		_, mi, _ := next.Clock()
		if mi == 0 {
			return next
		}
		next = next.Add(time.Duration(60-mi) * time.Minute)
	}
}
