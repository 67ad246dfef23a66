// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sim implements a host simulation of a partitioned Armv8-M
// device, running Secure and Non-secure images made of Go functions.
//
// Security state transitions are checked against the attribution
// programmed by the tz package on simulated registers: a Non-secure call
// to a Secure address outside the Non-secure Callable region, or a Secure
// call to an address which is not Non-secure, raises a SecureFault.
package sim

import (
	"fmt"

	"github.com/usbarmory/GoTEE-m/armv8m/sau"
	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/internal/reg/testonly"
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/soc/nordic/spu"
	"github.com/usbarmory/GoTEE-m/tz"
	"github.com/usbarmory/GoTEE-m/veneer"
)

// implemented SAU regions on generic targets
const sauRegions = 8

// Call represents a traced function call.
type Call struct {
	From   mem.Domain
	To     mem.Domain
	Name   string
	Args   [gateway.MaxArgs]uint32
	Result uint32
}

func (c Call) String() string {
	return fmt.Sprintf("%s -> %s %s(%#x) = %#x", c.From, c.To, c.Name, c.Args, c.Result)
}

// SecureFault represents a SecureFault exception raised by an invalid
// security state transition, it is raised with panic.
type SecureFault struct {
	tz.Fault
}

func (f *SecureFault) Error() string {
	return "SecureFault, " + f.Fault.String()
}

// System represents a simulated device.
type System struct {
	// Config is the device partition
	Config *tz.Config
	// Registers holds the system and security controller registers
	Registers *testonly.Registers
	// Memory holds flash and RAM contents
	Memory *Memory
	// Controller is the attribution controller of the target
	Controller tz.Controller

	Secure    *World
	NonSecure *World

	// Trace records all function calls in invocation order
	Trace []Call

	state mem.Domain
}

func resetValues(t *mem.Target) map[uint32]uint32 {
	r := map[uint32]uint32{
		sau.BASE + sau.SAU_TYPE: sauRegions,
	}

	if !t.NSCAtRegionEnd {
		return r
	}

	const perm = 1<<spu.PERM_EXECUTE | 1<<spu.PERM_WRITE | 1<<spu.PERM_READ | 1<<spu.PERM_SECATTR

	// the SAU is unused on Nordic parts
	r[sau.BASE+sau.SAU_TYPE] = 0
	r[spu.BASE+spu.SPU_CAP] = 1 << spu.CAP_TZM

	for n := 0; n < t.FlashRegions(); n++ {
		r[spu.BASE+spu.SPU_FLASHREGION_PERM+uint32(n)*4] = perm
	}

	for n := 0; n < t.RAMRegions(); n++ {
		r[spu.BASE+spu.SPU_RAMREGION_PERM+uint32(n)*4] = perm
	}

	for id := 0; id < t.Peripherals; id++ {
		r[spu.BASE+spu.SPU_PERIPHID_PERM+uint32(id)*4] = 1<<spu.PERIPH_PRESENT | spu.MAPPING_USER_SELECTABLE | 1<<spu.PERIPH_SECATTR
	}

	for n := 0; n < t.GPIOPorts; n++ {
		r[spu.BASE+spu.SPU_GPIOPORT_PERM+uint32(n)*8] = 0xffffffff
	}

	for n := 0; n < t.DPPIPorts; n++ {
		r[spu.BASE+spu.SPU_DPPI_PERM+uint32(n)*8] = 0xffffffff
	}

	return r
}

func flashRegion(cfg *tz.Config, d mem.Domain) (r mem.Region, err error) {
	for _, r = range cfg.Regions {
		if r.Domain == d && cfg.Target.InFlash(r.Start) {
			return
		}
	}

	return r, fmt.Errorf("%w, missing %s flash region", tz.ErrConfig, d)
}

// New returns a simulated device, in its reset state, for the argument
// partition.
func New(cfg *tz.Config) (s *System, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}

	s = &System{
		Config:    cfg,
		Registers: testonly.New(resetValues(cfg.Target)),
		Memory:    NewMemory(),
		state:     mem.Secure,
	}

	s.Registers.Bank(sau.BASE+sau.SAU_RNR, sau.BASE+sau.SAU_RBAR, sau.BASE+sau.SAU_RLAR)
	s.Controller = tz.NewController(cfg.Target, s.Registers)

	if s.Secure, err = s.newSecureWorld(); err != nil {
		return nil, err
	}

	if s.NonSecure, err = s.newNonSecureWorld(); err != nil {
		return nil, err
	}

	return
}

func (s *System) newSecureWorld() (w *World, err error) {
	flash, err := flashRegion(s.Config, mem.Secure)

	if err != nil {
		return
	}

	if flash.Size() < 2*tableSize {
		return nil, fmt.Errorf("%w, Secure flash region too small", tz.ErrConfig)
	}

	nsc := s.Config.NonSecureCallable()
	code := mem.Region{Start: flash.Start + tableSize, End: flash.End}

	w = newWorld(s, mem.Secure, flash.Start, code)
	w.nextVeneer = nsc.Start
	w.nscEnd = nsc.End

	// the searcher veneer is the first in the Non-secure Callable region
	addr, err := w.alloc("tz_find_nsc_vector", func(args [gateway.MaxArgs]uint32) uint32 {
		ptr, _ := veneer.Scan(s.Memory, uintptr(w.vectors), args[0])
		return uint32(ptr)
	})

	if err != nil {
		return
	}

	if w.searcher, err = w.gateway(addr); err != nil {
		return
	}

	w.searcher &^= 1

	return w, w.store()
}

func (s *System) newNonSecureWorld() (w *World, err error) {
	flash, err := flashRegion(s.Config, mem.NonSecure)

	if err != nil {
		return
	}

	if flash.Size() < 2*tableSize {
		return nil, fmt.Errorf("%w, Non-secure flash region too small", tz.ErrConfig)
	}

	code := mem.Region{Start: flash.Start + tableSize + 8, End: flash.End}

	w = newWorld(s, mem.NonSecure, flash.Start+8, code)
	w.entry = flash.Start

	addr, err := w.alloc("tz_ns_bootstrap", func(_ [gateway.MaxArgs]uint32) uint32 {
		w.Booted = true

		if w.Bootstrap != nil {
			w.Bootstrap()
		}

		return 0
	})

	if err != nil {
		return
	}

	s.Memory.Write32(w.entry, addr|1)

	return w, w.store()
}

// State returns the current security state.
func (s *System) State() mem.Domain {
	return s.state
}

func (s *System) fault(cause int, addr uint32) {
	s.Registers.Poke(sau.BASE+sau.SAU_SFSR, 1<<cause|1<<tz.SFSR_SFARVALID)
	s.Registers.Poke(sau.BASE+sau.SAU_SFAR, addr)

	panic(&SecureFault{tz.ReadFault(s.Registers)})
}

// Read implements reg.Bus, flash and RAM addresses are served from memory.
func (s *System) Read(addr uint32) uint32 {
	if s.Config.Target.InFlash(addr) || s.Config.Target.InRAM(addr) {
		return s.Memory.Read32(uintptr(addr))
	}

	return s.Registers.Read(addr)
}

// Write implements reg.Bus, flash and RAM addresses are served from memory.
func (s *System) Write(addr uint32, val uint32) {
	if s.Config.Target.InFlash(addr) || s.Config.Target.InRAM(addr) {
		s.Memory.Write32(addr, val)
		return
	}

	s.Registers.Write(addr, val)
}

// Initialize partitions the device and bootstraps the Non-secure image.
func (s *System) Initialize() error {
	return tz.Initialize(s.Config, s.Controller, s.Registers, s.NonSecure)
}
