// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sensor implements delivery of device sensor events to the
// watchface.
//
// Event sources post events to a Dispatcher which delivers them to
// registered handlers strictly in arrival order, one at a time.
package sensor

import "github.com/kortschak/classio/face"

// Event is a sensor notification.
type Event interface {
	kind() kind
}

type kind int

const (
	minuteKind kind = iota
	hourKind
	batteryKind
	connectivityKind

	kinds
)

// MinuteTick is sent at each minute boundary.
type MinuteTick struct {
	Clock face.ClockSample
}

// HourTick is sent at each hour boundary.
type HourTick struct {
	Clock face.ClockSample
}

// BatteryChanged is sent when the power state changes.
type BatteryChanged struct {
	Battery face.BatteryState
}

// ConnectivityChanged is sent when the Bluetooth link state changes.
type ConnectivityChanged struct {
	Connectivity face.ConnectivityState
}

func (MinuteTick) kind() kind          { return minuteKind }
func (HourTick) kind() kind            { return hourKind }
func (BatteryChanged) kind() kind      { return batteryKind }
func (ConnectivityChanged) kind() kind { return connectivityKind }
