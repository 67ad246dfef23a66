// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tz

import (
	"fmt"

	"github.com/usbarmory/GoTEE-m/armv8m/sau"
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/soc/nordic/spu"
)

// nscInstance is the FLASHNSC instance used for the Non-secure Callable
// region.
const nscInstance = 0

// SPU is a Controller using the Nordic System Protection Unit, the SAU is
// disabled and delegates the attribution to the SPU.
type SPU struct {
	spu    *spu.SPU
	sau    *sau.SAU
	target *mem.Target
}

// NewSPU returns a Controller for an SPU instance.
func NewSPU(p *spu.SPU, s *sau.SAU, t *mem.Target) *SPU {
	return &SPU{
		spu:    p,
		sau:    s,
		target: t,
	}
}

// ConfigureMemory implements Controller, every flash and RAM region is
// attributed.
func (c *SPU) ConfigureMemory(regions []mem.Region) (err error) {
	t := c.target

	for n := 0; n < t.FlashRegions(); n++ {
		addr := t.FlashBase + uint32(n)*t.FlashRegionSize
		secure := domainOf(regions, addr) != mem.NonSecure

		if _, err = c.spu.SetFlashRegion(n, secure); err != nil {
			return
		}
	}

	for n := 0; n < t.RAMRegions(); n++ {
		addr := t.RAMBase + uint32(n)*t.RAMRegionSize
		secure := domainOf(regions, addr) != mem.NonSecure

		if _, err = c.spu.SetRAMRegion(n, secure); err != nil {
			return
		}
	}

	return
}

// ConfigureNSC implements Controller, the region must end on a flash
// region boundary.
func (c *SPU) ConfigureNSC(r mem.Region) error {
	t := c.target
	n := int((r.Start - t.FlashBase) / t.FlashRegionSize)

	if end := t.FlashBase + uint32(n+1)*t.FlashRegionSize; r.End != end {
		return fmt.Errorf("%w, %s does not end at flash region %d boundary %#.8x", ErrConfig, r, n, end)
	}

	return c.spu.SetFlashNSC(nscInstance, n, r.Size())
}

// ConfigurePeripherals implements Controller.
func (c *SPU) ConfigurePeripherals(periph []PeripheralAssignment, pins []PinAssignment, dppi []DPPIAssignment) (err error) {
	for _, p := range periph {
		if err = c.spu.SetPeripheral(p.ID, p.Domain != mem.NonSecure); err != nil {
			return
		}
	}

	for _, p := range pins {
		if err = c.spu.SetPin(p.Port, p.Pin, p.Domain != mem.NonSecure); err != nil {
			return
		}
	}

	for _, d := range dppi {
		if err = c.spu.SetDPPIChannel(d.Port, d.Channel, d.Domain != mem.NonSecure); err != nil {
			return
		}
	}

	return
}

// Activate implements Controller.
func (c *SPU) Activate() error {
	if !c.spu.TrustZone() {
		return fmt.Errorf("%w, SPU lacks TrustZone control", ErrUnsupported)
	}

	c.sau.Delegate()

	return nil
}

// Attribute implements Controller.
func (c *SPU) Attribute(addr uint32) mem.Domain {
	t := c.target

	// with the SAU disabled ALLNS is required for the SPU to take effect
	if c.sau.Enabled() || !c.sau.AllNonSecure() {
		return mem.Secure
	}

	switch {
	case t.InFlash(addr):
		n := int((addr - t.FlashBase) / t.FlashRegionSize)

		if !c.spu.FlashRegionSecure(n) {
			return mem.NonSecure
		}

		region, size := c.spu.FlashNSC(nscInstance)
		end := t.FlashBase + uint32(n+1)*t.FlashRegionSize

		if size != 0 && region == n && addr >= end-size {
			return mem.NonSecureCallable
		}
	case t.InRAM(addr):
		if !c.spu.RAMRegionSecure(int((addr - t.RAMBase) / t.RAMRegionSize)) {
			return mem.NonSecure
		}
	default:
		if id, ok := t.PeripheralID(addr); ok {
			if present, secure := c.spu.Peripheral(id); present && !secure {
				return mem.NonSecure
			}
		}
	}

	return mem.Secure
}
