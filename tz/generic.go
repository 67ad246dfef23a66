// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tz

import (
	"fmt"

	"github.com/usbarmory/GoTEE-m/armv8m/sau"
	"github.com/usbarmory/GoTEE-m/mem"
)

// SAU is a Controller using the architectural Security Attribution Unit
// alone. Non-secure regions, the Non-secure Callable region and the
// address window of each Non-secure peripheral are allocated to SAU
// regions in this order.
type SAU struct {
	sau    *sau.SAU
	target *mem.Target

	// next free SAU region
	next int
}

// NewSAU returns a Controller for an SAU instance.
func NewSAU(s *sau.SAU, t *mem.Target) *SAU {
	return &SAU{
		sau:    s,
		target: t,
	}
}

func (c *SAU) add(r mem.Region, nsc bool) (err error) {
	if c.next >= c.sau.Regions() {
		return fmt.Errorf("%w, no SAU region left for %s", ErrUnsupported, r)
	}

	if _, err = c.sau.SetRegion(c.next, r.Start, r.End, nsc); err != nil {
		return
	}

	c.next++

	return
}

// ConfigureMemory implements Controller.
func (c *SAU) ConfigureMemory(regions []mem.Region) (err error) {
	c.next = 0

	for _, r := range regions {
		if r.Domain != mem.NonSecure {
			continue
		}

		if err = c.add(r, false); err != nil {
			return
		}
	}

	return
}

// ConfigureNSC implements Controller.
func (c *SAU) ConfigureNSC(r mem.Region) error {
	return c.add(r, true)
}

// ConfigurePeripherals implements Controller, GPIO pins and DPPI channels
// cannot be attributed by the SAU.
func (c *SAU) ConfigurePeripherals(periph []PeripheralAssignment, pins []PinAssignment, dppi []DPPIAssignment) (err error) {
	if len(pins) > 0 {
		return fmt.Errorf("%w, SAU cannot attribute GPIO pins", ErrUnsupported)
	}

	if len(dppi) > 0 {
		return fmt.Errorf("%w, SAU cannot attribute DPPI channels", ErrUnsupported)
	}

	for _, p := range periph {
		if p.Domain != mem.NonSecure {
			continue
		}

		if err = c.add(c.target.Peripheral(p.ID), false); err != nil {
			return
		}
	}

	return
}

// Activate implements Controller, SAU regions left over from a previous
// configuration are disabled.
func (c *SAU) Activate() (err error) {
	for n := c.next; n < c.sau.Regions(); n++ {
		if err = c.sau.DisableRegion(n); err != nil {
			return
		}
	}

	c.sau.Enable()

	return
}

// Attribute implements Controller.
func (c *SAU) Attribute(addr uint32) mem.Domain {
	if !c.sau.Enabled() {
		if c.sau.AllNonSecure() {
			return mem.NonSecure
		}

		return mem.Secure
	}

	for n := 0; n < c.sau.Regions(); n++ {
		r, err := c.sau.Region(n)

		if err != nil || !r.Enabled || addr < r.Start || addr >= r.End {
			continue
		}

		if r.NSC {
			return mem.NonSecureCallable
		}

		return mem.NonSecure
	}

	return mem.Secure
}
