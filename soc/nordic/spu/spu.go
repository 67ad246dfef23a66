// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package spu implements a driver for the Nordic System Protection Unit
// (SPU) found on nRF91 and nRF53 series microcontrollers.
//
// The SPU attributes flash and RAM regions, peripherals, GPIO pins and DPPI
// channels to the Secure or Non-secure world, with a finer granularity than
// the architectural SAU.
package spu

import (
	"errors"
	"fmt"
	"math/bits"

	tbits "github.com/usbarmory/tamago/bits"

	"github.com/usbarmory/GoTEE-m/internal/reg"
)

// SPU registers
const (
	BASE = 0x50003000

	SPU_EVENTS_RAMACCERR    = 0x100
	SPU_EVENTS_FLASHACCERR  = 0x104
	SPU_EVENTS_PERIPHACCERR = 0x108

	SPU_CAP = 0x400
	CAP_TZM = 0

	SPU_DPPI_PERM     = 0x480
	SPU_GPIOPORT_PERM = 0x4c0

	SPU_FLASHNSC_REGION = 0x500
	SPU_FLASHNSC_SIZE   = 0x504
	NSC_REGION          = 0
	NSC_LOCK            = 8

	SPU_FLASHREGION_PERM = 0x600
	SPU_RAMREGION_PERM   = 0x700
	PERM_EXECUTE         = 0
	PERM_WRITE           = 1
	PERM_READ            = 2
	PERM_SECATTR         = 4
	PERM_LOCK            = 8

	SPU_PERIPHID_PERM    = 0x800
	PERIPH_SECUREMAPPING = 0
	PERIPH_DMA           = 2
	PERIPH_SECATTR       = 4
	PERIPH_DMASEC        = 5
	PERIPH_LOCK          = 8
	PERIPH_PRESENT       = 31
)

// Peripheral security mapping
const (
	MAPPING_NONSECURE = iota
	MAPPING_SECURE
	MAPPING_USER_SELECTABLE
	MAPPING_SPLIT
)

// Peripheral DMA capabilities
const (
	DMA_NONE = iota
	DMA_NO_SEPARATE_ATTRIBUTE
	DMA_SEPARATE_ATTRIBUTE
)

// Non-secure Callable region size bounds
const (
	MinNSCSize = 32
	MaxNSCSize = 4096
)

// register instance strides
const (
	permStride = 4
	portStride = 8
	nscStride  = 8
)

const permMask = 1<<PERM_EXECUTE | 1<<PERM_WRITE | 1<<PERM_READ | 1<<PERM_SECATTR

var (
	// ErrIndex is returned for out of range register instances.
	ErrIndex = errors.New("invalid SPU index")
	// ErrLocked is returned when a change is requested to a locked
	// attribution.
	ErrLocked = errors.New("SPU attribution is locked")
	// ErrPeripheral is returned when a peripheral cannot take the
	// requested attribution.
	ErrPeripheral = errors.New("invalid peripheral attribution")
)

// SPU represents a System Protection Unit instance.
type SPU struct {
	// Base register
	Base uint32
	// Bus is the register bus
	Bus reg.Bus

	// FlashRegions is the number of FLASHREGION instances
	FlashRegions int
	// RAMRegions is the number of RAMREGION instances
	RAMRegions int
	// Peripherals is the number of PERIPHID instances
	Peripherals int
	// GPIOPorts is the number of GPIOPORT instances
	GPIOPorts int
	// DPPIPorts is the number of DPPI instances
	DPPIPorts int
}

func (hw *SPU) addr(off uint32, n int, stride uint32) uint32 {
	return hw.Base + off + uint32(n)*stride
}

func check(what string, n int, max int) error {
	if n < 0 || n >= max {
		return fmt.Errorf("%w, %s %d out of range", ErrIndex, what, n)
	}

	return nil
}

// TrustZone reports whether the SPU can control the TrustZone attribution.
func (hw *SPU) TrustZone() bool {
	return reg.IsSet(hw.Bus, hw.Base+SPU_CAP, CAP_TZM)
}

func (hw *SPU) setPerm(addr uint32, secure bool) (written bool, err error) {
	want := uint32(1<<PERM_READ | 1<<PERM_WRITE | 1<<PERM_EXECUTE)

	if secure {
		tbits.Set(&want, PERM_SECATTR)
	}

	perm := hw.Bus.Read(addr)

	if perm&permMask == want {
		return
	}

	if tbits.Get(&perm, PERM_LOCK, 1) == 1 {
		return false, fmt.Errorf("%w, %#.8x", ErrLocked, addr)
	}

	hw.Bus.Write(addr, want)

	return true, nil
}

// SetFlashRegion attributes flash region n, granting read, write and
// execute access. The register is written only when the attribution
// changes, written reports whether this happened.
func (hw *SPU) SetFlashRegion(n int, secure bool) (written bool, err error) {
	if err = check("flash region", n, hw.FlashRegions); err != nil {
		return
	}

	return hw.setPerm(hw.addr(SPU_FLASHREGION_PERM, n, permStride), secure)
}

// SetRAMRegion attributes RAM region n, granting read, write and execute
// access. The register is written only when the attribution changes,
// written reports whether this happened.
func (hw *SPU) SetRAMRegion(n int, secure bool) (written bool, err error) {
	if err = check("RAM region", n, hw.RAMRegions); err != nil {
		return
	}

	return hw.setPerm(hw.addr(SPU_RAMREGION_PERM, n, permStride), secure)
}

// FlashRegionSecure reports whether flash region n is Secure.
func (hw *SPU) FlashRegionSecure(n int) bool {
	return reg.IsSet(hw.Bus, hw.addr(SPU_FLASHREGION_PERM, n, permStride), PERM_SECATTR)
}

// RAMRegionSecure reports whether RAM region n is Secure.
func (hw *SPU) RAMRegionSecure(n int) bool {
	return reg.IsSet(hw.Bus, hw.addr(SPU_RAMREGION_PERM, n, permStride), PERM_SECATTR)
}

// EncodeNSCSize returns the FLASHNSC SIZE field value for a Non-secure
// Callable region size, which must be a power of two between 32 and 4096
// bytes.
func EncodeNSCSize(size uint32) (val uint32, err error) {
	if size < MinNSCSize || size > MaxNSCSize || size&(size-1) != 0 {
		return 0, fmt.Errorf("%w, Non-secure Callable size %d", ErrIndex, size)
	}

	return uint32(bits.Len32(size)-1) - 4, nil
}

// SetFlashNSC configures instance n of the flash Non-secure Callable
// region as the last size bytes of flash region. Registers are written only
// when their value changes.
func (hw *SPU) SetFlashNSC(n int, region int, size uint32) (err error) {
	var sizeVal uint32

	if err = check("flash region", region, hw.FlashRegions); err != nil {
		return
	}

	if sizeVal, err = EncodeNSCSize(size); err != nil {
		return
	}

	sizeReg := hw.addr(SPU_FLASHNSC_SIZE, n, nscStride)
	regionReg := hw.addr(SPU_FLASHNSC_REGION, n, nscStride)

	if reg.IsSet(hw.Bus, sizeReg, NSC_LOCK) || reg.IsSet(hw.Bus, regionReg, NSC_LOCK) {
		if hw.Bus.Read(sizeReg)&0xf == sizeVal && hw.Bus.Read(regionReg)&0x3f == uint32(region) {
			return
		}

		return fmt.Errorf("%w, flash NSC %d", ErrLocked, n)
	}

	reg.Update(hw.Bus, sizeReg, sizeVal)
	reg.Update(hw.Bus, regionReg, uint32(region)&0x3f)

	return
}

// FlashNSC returns the flash region and size of Non-secure Callable region
// instance n, size is zero when disabled.
func (hw *SPU) FlashNSC(n int) (region int, size uint32) {
	sizeVal := reg.Get(hw.Bus, hw.addr(SPU_FLASHNSC_SIZE, n, nscStride), 0, 0xf)
	region = int(reg.Get(hw.Bus, hw.addr(SPU_FLASHNSC_REGION, n, nscStride), NSC_REGION, 0x3f))

	if sizeVal == 0 {
		return
	}

	return region, 1 << (sizeVal + 4)
}

// SetPeripheral attributes peripheral id, along with its DMA accesses when
// these have a separate attribute. The register is written only when the
// attribution changes.
func (hw *SPU) SetPeripheral(id int, secure bool) (err error) {
	if err = check("peripheral", id, hw.Peripherals); err != nil {
		return
	}

	addr := hw.addr(SPU_PERIPHID_PERM, id, permStride)
	perm := hw.Bus.Read(addr)

	if tbits.Get(&perm, PERIPH_PRESENT, 1) == 0 {
		return fmt.Errorf("%w, peripheral %d not present", ErrPeripheral, id)
	}

	switch tbits.Get(&perm, PERIPH_SECUREMAPPING, 0b11) {
	case MAPPING_NONSECURE:
		if secure {
			return fmt.Errorf("%w, peripheral %d is always Non-secure", ErrPeripheral, id)
		}

		return
	case MAPPING_SECURE:
		if !secure {
			return fmt.Errorf("%w, peripheral %d is always Secure", ErrPeripheral, id)
		}

		return
	}

	val := perm

	if secure {
		tbits.Set(&val, PERIPH_SECATTR)
	} else {
		tbits.Clear(&val, PERIPH_SECATTR)
	}

	if tbits.Get(&perm, PERIPH_DMA, 0b11) == DMA_SEPARATE_ATTRIBUTE {
		if secure {
			tbits.Set(&val, PERIPH_DMASEC)
		} else {
			tbits.Clear(&val, PERIPH_DMASEC)
		}
	}

	if val == perm {
		return
	}

	if tbits.Get(&perm, PERIPH_LOCK, 1) == 1 {
		return fmt.Errorf("%w, peripheral %d", ErrLocked, id)
	}

	hw.Bus.Write(addr, val)

	return
}

// Peripheral returns the presence and the attribution of peripheral id.
func (hw *SPU) Peripheral(id int) (present bool, secure bool) {
	if check("peripheral", id, hw.Peripherals) != nil {
		return
	}

	perm := hw.Bus.Read(hw.addr(SPU_PERIPHID_PERM, id, permStride))

	present = tbits.Get(&perm, PERIPH_PRESENT, 1) == 1
	secure = tbits.Get(&perm, PERIPH_SECATTR, 1) == 1

	return
}

// SetPin attributes a GPIO pin.
func (hw *SPU) SetPin(port int, pin int, secure bool) (err error) {
	if err = check("GPIO port", port, hw.GPIOPorts); err != nil {
		return
	}

	if err = check("GPIO pin", pin, 32); err != nil {
		return
	}

	reg.SetTo(hw.Bus, hw.addr(SPU_GPIOPORT_PERM, port, portStride), pin, secure)

	return
}

// PinSecure reports whether a GPIO pin is Secure.
func (hw *SPU) PinSecure(port int, pin int) bool {
	return reg.IsSet(hw.Bus, hw.addr(SPU_GPIOPORT_PERM, port, portStride), pin)
}

// SetDPPIChannel attributes a DPPI channel.
func (hw *SPU) SetDPPIChannel(port int, channel int, secure bool) (err error) {
	if err = check("DPPI port", port, hw.DPPIPorts); err != nil {
		return
	}

	if err = check("DPPI channel", channel, 32); err != nil {
		return
	}

	reg.SetTo(hw.Bus, hw.addr(SPU_DPPI_PERM, port, portStride), channel, secure)

	return
}

// DPPIChannelSecure reports whether a DPPI channel is Secure.
func (hw *SPU) DPPIChannelSecure(port int, channel int) bool {
	return reg.IsSet(hw.Bus, hw.addr(SPU_DPPI_PERM, port, portStride), channel)
}

// Events returns and clears the RAM, flash and peripheral access error
// events.
func (hw *SPU) Events() (ram bool, flash bool, periph bool) {
	read := func(off uint32) bool {
		if hw.Bus.Read(hw.Base+off) == 0 {
			return false
		}

		hw.Bus.Write(hw.Base+off, 0)

		return true
	}

	return read(SPU_EVENTS_RAMACCERR), read(SPU_EVENTS_FLASHACCERR), read(SPU_EVENTS_PERIPHACCERR)
}
