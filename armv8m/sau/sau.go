// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sau implements a driver for the Armv8-M Security Attribution Unit
// (SAU).
//
// The SAU classifies address ranges as Non-secure or Non-secure Callable,
// memory not covered by an enabled region is Secure. When disabled with
// ALLNS set the attribution is delegated to the implementation defined
// attribution unit (IDAU) or to a vendor security controller.
package sau

import (
	"errors"
	"fmt"

	"github.com/usbarmory/tamago/bits"

	"github.com/usbarmory/GoTEE-m/internal/reg"
)

// SAU registers
const (
	BASE = 0xe000edd0

	SAU_CTRL    = 0x00
	CTRL_ALLNS  = 1
	CTRL_ENABLE = 0

	SAU_TYPE     = 0x04
	TYPE_SREGION = 0

	SAU_RNR = 0x08

	SAU_RBAR = 0x0c

	SAU_RLAR    = 0x10
	RLAR_NSC    = 1
	RLAR_ENABLE = 0

	SAU_SFSR = 0x14
	SAU_SFAR = 0x18
)

// Granularity is the SAU region alignment.
const Granularity = 32

const addrMask = ^uint32(Granularity - 1)

// ErrRegion is returned for regions which cannot be programmed.
var ErrRegion = errors.New("invalid SAU region")

// SAU represents a Security Attribution Unit instance.
type SAU struct {
	// Base register
	Base uint32
	// Bus is the register bus
	Bus reg.Bus
}

// Region represents an SAU region, End is exclusive.
type Region struct {
	Start   uint32
	End     uint32
	NSC     bool
	Enabled bool
}

func (s *SAU) addr(off uint32) uint32 {
	return s.Base + off
}

// Regions returns the number of implemented SAU regions.
func (s *SAU) Regions() int {
	return int(reg.Get(s.Bus, s.addr(SAU_TYPE), TYPE_SREGION, 0xff))
}

// Enabled reports whether the SAU attribution is active.
func (s *SAU) Enabled() bool {
	return reg.IsSet(s.Bus, s.addr(SAU_CTRL), CTRL_ENABLE)
}

// AllNonSecure reports whether memory is Non-secure while the SAU is
// disabled.
func (s *SAU) AllNonSecure() bool {
	return reg.IsSet(s.Bus, s.addr(SAU_CTRL), CTRL_ALLNS)
}

// Enable activates the SAU attribution.
func (s *SAU) Enable() {
	ctrl := s.Bus.Read(s.addr(SAU_CTRL))

	bits.Clear(&ctrl, CTRL_ALLNS)
	bits.Set(&ctrl, CTRL_ENABLE)

	reg.Update(s.Bus, s.addr(SAU_CTRL), ctrl)
}

// Delegate disables the SAU and sets all memory as Non-secure from its
// perspective, so that the attribution of a vendor security controller
// takes precedence.
func (s *SAU) Delegate() {
	ctrl := s.Bus.Read(s.addr(SAU_CTRL))

	bits.Clear(&ctrl, CTRL_ENABLE)
	bits.Set(&ctrl, CTRL_ALLNS)

	reg.Update(s.Bus, s.addr(SAU_CTRL), ctrl)
}

func (s *SAU) selectRegion(n int) (err error) {
	if n < 0 || n >= s.Regions() {
		return fmt.Errorf("%w, index %d out of range", ErrRegion, n)
	}

	reg.Update(s.Bus, s.addr(SAU_RNR), uint32(n))

	return
}

// SetRegion programs and enables region n as Non-secure, or Non-secure
// Callable when nsc is true. The region registers are written only when
// their current value differs, written reports whether this happened.
func (s *SAU) SetRegion(n int, start uint32, end uint32, nsc bool) (written bool, err error) {
	if start >= end || start&^addrMask != 0 || end&^addrMask != 0 {
		return false, fmt.Errorf("%w, %#x-%#x is not %d bytes aligned", ErrRegion, start, end, Granularity)
	}

	if err = s.selectRegion(n); err != nil {
		return
	}

	rbar := start & addrMask
	rlar := (end - 1) & addrMask

	if nsc {
		bits.Set(&rlar, RLAR_NSC)
	}

	bits.Set(&rlar, RLAR_ENABLE)

	if s.Bus.Read(s.addr(SAU_RBAR)) == rbar && s.Bus.Read(s.addr(SAU_RLAR)) == rlar {
		return
	}

	// disable the region while its bounds change
	reg.Clear(s.Bus, s.addr(SAU_RLAR), RLAR_ENABLE)

	s.Bus.Write(s.addr(SAU_RBAR), rbar)
	s.Bus.Write(s.addr(SAU_RLAR), rlar)

	return true, nil
}

// DisableRegion disables region n.
func (s *SAU) DisableRegion(n int) (err error) {
	if err = s.selectRegion(n); err != nil {
		return
	}

	reg.Clear(s.Bus, s.addr(SAU_RLAR), RLAR_ENABLE)

	return
}

// Region returns the current configuration of region n.
func (s *SAU) Region(n int) (r Region, err error) {
	if err = s.selectRegion(n); err != nil {
		return
	}

	rbar := s.Bus.Read(s.addr(SAU_RBAR))
	rlar := s.Bus.Read(s.addr(SAU_RLAR))

	r.Start = rbar & addrMask
	r.End = rlar&addrMask + Granularity
	r.NSC = bits.Get(&rlar, RLAR_NSC, 1) == 1
	r.Enabled = bits.Get(&rlar, RLAR_ENABLE, 1) == 1

	return
}

// Status returns the Secure Fault Status and Address registers.
func (s *SAU) Status() (sfsr uint32, sfar uint32) {
	sfsr = s.Bus.Read(s.addr(SAU_SFSR))
	sfar = s.Bus.Read(s.addr(SAU_SFAR))

	return
}
