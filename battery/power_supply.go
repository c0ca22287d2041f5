// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package battery

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// SysfsRoot is the location of the Linux power supply class.
const SysfsRoot = "/sys/class/power_supply"

// Status is the state of a power supply.
type Status struct {
	Percent  int
	Charging bool
}

// PowerSupply is a Linux power supply class device.
type PowerSupply struct {
	// Dir is the sysfs directory of the device,
	// for example /sys/class/power_supply/BAT0.
	Dir string
}

// FindPowerSupply returns the first battery type power supply under root.
func FindPowerSupply(root string) (PowerSupply, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return PowerSupply{}, fmt.Errorf("failed to read power supplies: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	for _, n := range names {
		dir := filepath.Join(root, n)
		typ, err := readAttr(dir, "type")
		if err != nil {
			continue
		}
		if string(typ) == "Battery" {
			return PowerSupply{Dir: dir}, nil
		}
	}
	return PowerSupply{}, errors.New("no battery power supply found")
}

// Read returns the current status of the power supply.
func (p PowerSupply) Read() (Status, error) {
	capacity, err := readAttr(p.Dir, "capacity")
	if err != nil {
		return Status{}, err
	}
	percent, err := strconv.Atoi(string(capacity))
	if err != nil {
		return Status{}, fmt.Errorf("invalid battery capacity: %w", err)
	}
	if percent < 0 || percent > 100 {
		return Status{}, fmt.Errorf("invalid battery capacity: %d", percent)
	}
	status, err := readAttr(p.Dir, "status")
	if err != nil {
		return Status{}, err
	}
	// "Full" is reported by some supplies while on external power after
	// charging completes; it is not shown as charging.
	return Status{Percent: percent, Charging: string(status) == "Charging"}, nil
}

func readAttr(dir, name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read power supply %s: %w", name, err)
	}
	return bytes.TrimSpace(b), nil
}
