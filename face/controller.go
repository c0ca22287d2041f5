// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

// Controller maps sensor samples to display region writes.
//
// A Controller retains only the most recent battery state so that the
// battery gauge can be redrawn on each minute tick. Its methods must not
// be called concurrently; the sensor dispatcher delivers events one at
// a time.
type Controller struct {
	battery BatteryState
	peek    func() (BatteryState, bool)
}

// NewController returns a new Controller. If peek is not nil, it is called
// on each clock tick to obtain the current battery state. When peek returns
// false, the last battery state delivered to the Controller is used.
func NewController(peek func() (BatteryState, bool)) *Controller {
	return &Controller{peek: peek}
}

// Battery returns the last battery state known to the Controller.
func (c *Controller) Battery() BatteryState {
	return c.battery
}

// Initial returns the writes for all regions of the face. It is used to
// populate the display before the first clock tick arrives.
func (c *Controller) Initial(clock ClockSample, battery BatteryState, conn ConnectivityState) []Write {
	c.battery = battery
	return Derive(clock, battery, conn).Writes()
}

// MinuteTick returns the writes for the hour, minute, battery and period
// icon regions.
func (c *Controller) MinuteTick(clock ClockSample) []Write {
	c.refresh()
	return []Write{
		{Region: RegionHour, Text: HourLabel(clock.Hour)},
		{Region: RegionMinute, Text: MinuteLabel(clock.Minute)},
		{Region: RegionBattery, Text: BatteryLabel(c.battery)},
		periodWrite(PeriodOf(clock.Hour)),
	}
}

// HourTick returns the writes for the hour and battery regions.
func (c *Controller) HourTick(clock ClockSample) []Write {
	c.refresh()
	return []Write{
		{Region: RegionHour, Text: HourLabel(clock.Hour)},
		{Region: RegionBattery, Text: BatteryLabel(c.battery)},
	}
}

func (c *Controller) refresh() {
	if c.peek == nil {
		return
	}
	b, ok := c.peek()
	if ok {
		c.battery = b
	}
}

// BatteryChanged records the battery state and returns the write for the
// battery region.
func (c *Controller) BatteryChanged(battery BatteryState) []Write {
	c.battery = battery
	return []Write{{Region: RegionBattery, Text: BatteryLabel(battery)}}
}

// ConnectivityChanged returns the write for the connectivity region.
func (c *Controller) ConnectivityChanged(conn ConnectivityState) []Write {
	return []Write{{Region: RegionConnectivity, Text: ConnectivityLabel(conn)}}
}
