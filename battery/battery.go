// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package battery implements battery state sources for the watchface:
// the standard 180f Bluetooth battery service of a connected peer, and
// the Linux power supply class of the host.
package battery

import (
	"errors"
	"fmt"

	"tinygo.org/x/bluetooth"

	"github.com/kortschak/classio/internal/forkbeard"
)

const (
	ServiceID             = "180f"
	LevelCharacteristicID = "2a19"
)

var (
	batteryService             = must(bluetooth.ParseUUID(ServiceID))
	batteryLevelCharacteristic = must(bluetooth.ParseUUID(LevelCharacteristicID))
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Level returns the battery level for the provided Bluetooth device.
func Level(dev *bluetooth.Device) (int, error) {
	// https://www.bluetooth.com/specifications/specs/battery-service/

	batteryDevice, err := forkbeard.DeviceCharacteristic(dev, batteryService, batteryLevelCharacteristic)
	if err != nil {
		return 0, fmt.Errorf("failed to get battery device characteristic: %w", err)
	}
	resp, err := forkbeard.ReadCharacteristic(batteryDevice)
	if err != nil {
		return 0, fmt.Errorf("failed read battery characteristic: %w", err)
	}
	return parseLevel(resp)
}

func parseLevel(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errors.New("empty battery level")
	}
	if buf[0] > 100 {
		return 0, fmt.Errorf("invalid battery level: %d", buf[0])
	}
	return int(buf[0]), nil
}

// LevelListener implements handling of battery level notifications.
type LevelListener struct {
	char bluetooth.DeviceCharacteristic
}

// NewLevelListener returns a new LevelListener for the provided Bluetooth
// device. The h function is called with received battery levels.
func NewLevelListener(dev *bluetooth.Device, h func(int, error)) (*LevelListener, error) {
	char, err := forkbeard.DeviceCharacteristic(dev, batteryService, batteryLevelCharacteristic)
	if err != nil {
		return nil, fmt.Errorf("failed to get battery device characteristic: %w", err)
	}
	err = char.EnableNotifications(func(buf []byte) {
		h(parseLevel(buf))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enable battery level notifications: %w", err)
	}
	return &LevelListener{char: char}, nil
}

// Close disables battery level notifications from the connected device.
func (l *LevelListener) Close() error { return l.char.EnableNotifications(nil) }
