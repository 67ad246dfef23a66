// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tz

import (
	"github.com/usbarmory/GoTEE-m/armv8m/sau"
	"github.com/usbarmory/GoTEE-m/internal/reg"
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/soc/nordic/spu"
)

// NewNordicSPU returns the SPU driver of a Nordic target, or nil for targets
// without one.
func NewNordicSPU(t *mem.Target, bus reg.Bus) *spu.SPU {
	if !t.NSCAtRegionEnd {
		return nil
	}

	return &spu.SPU{
		Base:         spu.BASE,
		Bus:          bus,
		FlashRegions: t.FlashRegions(),
		RAMRegions:   t.RAMRegions(),
		Peripherals:  t.Peripherals,
		GPIOPorts:    t.GPIOPorts,
		DPPIPorts:    t.DPPIPorts,
	}
}

// NewController returns the attribution Controller of a target, Nordic
// targets are partitioned through their SPU.
func NewController(t *mem.Target, bus reg.Bus) Controller {
	s := &sau.SAU{
		Base: sau.BASE,
		Bus:  bus,
	}

	if p := NewNordicSPU(t, bus); p != nil {
		return NewSPU(p, s, t)
	}

	return NewSAU(s, t)
}
