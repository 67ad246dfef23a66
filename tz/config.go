// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tz

import (
	"fmt"

	"github.com/usbarmory/GoTEE-m/mem"
)

// PeripheralAssignment attributes a peripheral, identified by its
// peripheral ID (address bits 12 to 19).
type PeripheralAssignment struct {
	ID     int
	Domain mem.Domain
}

// PinAssignment attributes a GPIO pin.
type PinAssignment struct {
	Port   int
	Pin    int
	Domain mem.Domain
}

// DPPIAssignment attributes a DPPI channel.
type DPPIAssignment struct {
	Port    int
	Channel int
	Domain  mem.Domain
}

// Config represents a TrustZone partition.
type Config struct {
	// Target describes the attribution granularity
	Target *mem.Target
	// Regions holds the memory layout, the last Non-secure RAM region
	// holds the Non-secure main stack.
	Regions []mem.Region

	Peripherals []PeripheralAssignment
	Pins        []PinAssignment
	DPPI        []DPPIAssignment
}

func checkDomain(d mem.Domain) error {
	if d != mem.Secure && d != mem.NonSecure {
		return fmt.Errorf("%w, invalid domain %s", ErrConfig, d)
	}

	return nil
}

// Validate checks that the partition can be enforced on its target.
func (c *Config) Validate() (err error) {
	if c == nil || c.Target == nil {
		return fmt.Errorf("%w, missing target", ErrConfig)
	}

	if err = mem.Validate(c.Target, c.Regions); err != nil {
		return
	}

	t := c.Target
	seen := make(map[string]bool)

	unique := func(key string) error {
		if seen[key] {
			return fmt.Errorf("%w, %s assigned twice", ErrConfig, key)
		}

		seen[key] = true

		return nil
	}

	for _, p := range c.Peripherals {
		if p.ID < 0 || p.ID >= t.Peripherals {
			return fmt.Errorf("%w, peripheral %d out of range", ErrConfig, p.ID)
		}

		if err = checkDomain(p.Domain); err != nil {
			return
		}

		if err = unique(fmt.Sprintf("peripheral %d", p.ID)); err != nil {
			return
		}
	}

	for _, p := range c.Pins {
		if p.Port < 0 || p.Port >= t.GPIOPorts || p.Pin < 0 || p.Pin >= t.GPIOPins {
			return fmt.Errorf("%w, pin P%d.%02d out of range", ErrConfig, p.Port, p.Pin)
		}

		if err = checkDomain(p.Domain); err != nil {
			return
		}

		if err = unique(fmt.Sprintf("pin P%d.%02d", p.Port, p.Pin)); err != nil {
			return
		}
	}

	for _, d := range c.DPPI {
		if d.Port < 0 || d.Port >= t.DPPIPorts || d.Channel < 0 || d.Channel >= t.DPPIChannels {
			return fmt.Errorf("%w, DPPI channel %d.%d out of range", ErrConfig, d.Port, d.Channel)
		}

		if err = checkDomain(d.Domain); err != nil {
			return
		}

		if err = unique(fmt.Sprintf("DPPI channel %d.%d", d.Port, d.Channel)); err != nil {
			return
		}
	}

	return
}

// NonSecureCallable returns the Non-secure Callable region.
func (c *Config) NonSecureCallable() mem.Region {
	r, _ := mem.NonSecureCallableRegion(c.Regions)
	return r
}

// StackTop returns the initial Non-secure main stack pointer.
func (c *Config) StackTop() uint32 {
	sp, _ := mem.NonSecureStackTop(c.Target, c.Regions)
	return sp
}

// domainOf returns the layout attribution of addr, memory not covered by
// any region is Secure.
func domainOf(regions []mem.Region, addr uint32) mem.Domain {
	for _, r := range regions {
		if r.Contains(addr) {
			return r.Domain
		}
	}

	return mem.Secure
}
