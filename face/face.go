// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package face implements the display state derivation for the classio
// watchface.
//
// The face shows a two digit hour and minute, an AM/PM icon, a single
// digit battery gauge and a Bluetooth connection indicator. All labels
// are derived from the latest clock, battery and connectivity samples
// and are delivered as a set of region writes for a display surface to
// apply.
package face

import (
	"image"
	"strconv"
	"time"
)

// ClockSample is a wall-clock reading taken at a minute boundary.
type ClockSample struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// Sample returns the ClockSample for t.
func Sample(t time.Time) ClockSample {
	return ClockSample{Hour: t.Hour(), Minute: t.Minute()}
}

// Valid returns whether c is a valid 24-hour clock time.
func (c ClockSample) Valid() bool {
	return 0 <= c.Hour && c.Hour < 24 && 0 <= c.Minute && c.Minute < 60
}

// BatteryState is the power state of the device.
type BatteryState struct {
	Percent  int // 0-100
	Charging bool
}

// Valid returns whether b holds a valid charge percentage.
func (b BatteryState) Valid() bool {
	return 0 <= b.Percent && b.Percent <= 100
}

// ConnectivityState is the Bluetooth link state of the device.
type ConnectivityState struct {
	Connected bool
}

// Period is the half of the day shown by the period icon.
type Period uint8

//go:generate go tool golang.org/x/tools/cmd/stringer -type Period,Icon,Region -output strings.go
const (
	AM Period = iota
	PM
)

// Icon returns the icon resource used to show the period.
func (p Period) Icon() Icon {
	if p == PM {
		return IconPM
	}
	return IconAM
}

// Icon is a reference to an icon resource held by a display surface.
type Icon uint8

const (
	NoIcon Icon = iota
	IconAM
	IconPM
)

// Region is a fixed display area.
type Region uint8

const (
	RegionHour Region = iota
	RegionMinute
	RegionBattery
	RegionConnectivity
	RegionPeriodIcon
)

// Glyphs written to the connectivity region.
const (
	PresenceGlyph = "8"
	BlankGlyph    = " "
)

// ChargingLabel is the battery label shown while the device is charging.
const ChargingLabel = "00"

// IconOrigin is the placement of the period icon.
var IconOrigin = image.Point{X: 114, Y: 100}

// Write is a single update to a display region. A Write carries either
// a text payload or an icon reference placed at Origin.
type Write struct {
	Region Region
	Text   string
	Icon   Icon
	Origin image.Point
}

// IsIcon returns whether w is an icon write.
func (w Write) IsIcon() bool { return w.Icon != NoIcon }

// HourLabel returns the zero padded 12-hour clock label for the
// 24-hour hour h. Both midnight and noon are shown as "12".
func HourLabel(h int) string {
	h %= 12
	if h == 0 {
		h = 12
	}
	return twoDigits(h)
}

// MinuteLabel returns the zero padded label for minute m.
func MinuteLabel(m int) string {
	return twoDigits(m)
}

func twoDigits(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// BatteryLabel returns the battery gauge label for b. The gauge shows
// tens of percent, or ChargingLabel while charging.
func BatteryLabel(b BatteryState) string {
	if b.Charging {
		return ChargingLabel
	}
	return strconv.Itoa(b.Percent / 10)
}

// ConnectivityLabel returns the connectivity glyph for c.
func ConnectivityLabel(c ConnectivityState) string {
	if c.Connected {
		return PresenceGlyph
	}
	return BlankGlyph
}

// PeriodOf returns the period of the 24-hour hour h.
func PeriodOf(h int) Period {
	if h < 12 {
		return AM
	}
	return PM
}

// DisplayState is the complete set of labels shown by the face.
type DisplayState struct {
	Hour         string
	Minute       string
	Battery      string
	Period       Period
	Connectivity string
}

// Derive returns the display state for the provided samples.
func Derive(clock ClockSample, battery BatteryState, conn ConnectivityState) DisplayState {
	return DisplayState{
		Hour:         HourLabel(clock.Hour),
		Minute:       MinuteLabel(clock.Minute),
		Battery:      BatteryLabel(battery),
		Period:       PeriodOf(clock.Hour),
		Connectivity: ConnectivityLabel(conn),
	}
}

// Writes returns the writes for every region of the face.
func (s DisplayState) Writes() []Write {
	return []Write{
		{Region: RegionHour, Text: s.Hour},
		{Region: RegionMinute, Text: s.Minute},
		{Region: RegionBattery, Text: s.Battery},
		periodWrite(s.Period),
		{Region: RegionConnectivity, Text: s.Connectivity},
	}
}

func periodWrite(p Period) Write {
	return Write{Region: RegionPeriodIcon, Icon: p.Icon(), Origin: IconOrigin}
}
