// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/tz"
	"github.com/usbarmory/GoTEE-m/veneer"
)

const (
	// space reserved for a vector table
	tableSize = 0x400
	// size of a gateway veneer (sg; b.w)
	veneerSize = 8
	// size of a simulated function
	funcSize = 4
)

// Func represents simulated code, args holds the argument registers and
// the result is returned in r0.
type Func func(args [gateway.MaxArgs]uint32) uint32

// World represents a simulated TrustZone image, it implements
// gateway.Domain as seen from its peer.
type World struct {
	// Domain is the security state of the image code.
	Domain mem.Domain
	// Booted is set once the Non-secure bootstrap routine has run.
	Booted bool
	// Bootstrap, when set, is invoked by the Non-secure bootstrap routine.
	Bootstrap func()

	sys *System

	vectors uint32
	table   veneer.Table

	next uint32
	end  uint32

	code  map[uint32]Func
	names map[uint32]string

	// Secure image Non-secure Callable veneers
	veneers    map[uint32]uint32
	nextVeneer uint32
	nscEnd     uint32
	searcher   uint32

	// Non-secure image bootstrap pointer
	entry uint32
}

func newWorld(s *System, d mem.Domain, vectors uint32, code mem.Region) *World {
	return &World{
		Domain:  d,
		sys:     s,
		vectors: vectors,
		next:    code.Start,
		end:     code.End,
		code:    make(map[uint32]Func),
		names:   make(map[uint32]string),
		veneers: make(map[uint32]uint32),
	}
}

func (w *World) alloc(name string, fn Func) (addr uint32, err error) {
	if w.next+funcSize > w.end {
		return 0, fmt.Errorf("%s code space exhausted", w.Domain)
	}

	addr = w.next
	w.next += funcSize

	w.code[addr] = fn
	w.names[addr] = name

	return
}

// store writes the vector table, in wire format, to the image memory.
func (w *World) store() error {
	buf, err := w.table.MarshalBinary()

	if err != nil {
		return err
	}

	if len(buf) > tableSize {
		return fmt.Errorf("%s vector table exceeds %d bytes", w.Domain, tableSize)
	}

	return w.sys.Memory.Load(w.vectors, buf)
}

// Export links fn in the image and adds it to the image vector table, as
// name. Secure functions are reached through a gateway veneer placed in
// the Non-secure Callable region.
func (w *World) Export(name string, fn Func) (ptr uint32, err error) {
	hash := veneer.Hash(name)

	if _, found := w.table.Lookup(hash); found {
		return 0, fmt.Errorf("%w, %s hash %#08x already exported", veneer.ErrTable, name, hash)
	}

	addr, err := w.alloc(name, fn)

	if err != nil {
		return
	}

	ptr = addr | 1

	if w.Domain == mem.Secure {
		if ptr, err = w.gateway(addr); err != nil {
			return
		}
	}

	w.table = append(w.table, veneer.Entry{Pointer: ptr, Hash: hash})

	if err = w.store(); err != nil {
		w.table = w.table[:len(w.table)-1]
		return 0, err
	}

	return
}

// gateway places a Non-secure Callable veneer branching to addr.
func (w *World) gateway(addr uint32) (ptr uint32, err error) {
	if w.nextVeneer+veneerSize > w.nscEnd {
		return 0, fmt.Errorf("Non-secure Callable region exhausted")
	}

	v := w.nextVeneer
	w.nextVeneer += veneerSize
	w.veneers[v] = addr

	return v | 1, nil
}

// Table returns the image vector table as found in memory.
func (w *World) Table() (t veneer.Table, err error) {
	for addr := w.vectors; addr < w.vectors+tableSize; addr += veneer.EntrySize {
		e := veneer.Entry{
			Pointer: w.sys.Memory.Read32(uintptr(addr)),
			Hash:    w.sys.Memory.Read32(uintptr(addr + 4)),
		}

		if e.IsSentinel() {
			return
		}

		t = append(t, e)
	}

	return nil, fmt.Errorf("%w, missing sentinel", veneer.ErrTable)
}

// Vectors returns the vector table address.
func (w *World) Vectors() uint32 {
	return w.vectors
}

func (w *World) String() string {
	return w.Domain.String()
}

// Find implements gateway.Domain. Secure functions are located by calling
// the searcher veneer, as the Non-secure image does.
func (w *World) Find(hash uint32) (uintptr, bool) {
	if w.Domain == mem.Secure {
		fn := w.Call(uintptr(w.searcher|1), gateway.Args{hash})
		return uintptr(fn), fn != 0
	}

	return veneer.Scan(w.sys.Memory, uintptr(w.vectors), hash)
}

// Entry implements gateway.Domain.
func (w *World) Entry() uintptr {
	if w.Domain == mem.Secure {
		return uintptr(w.searcher | 1)
	}

	return uintptr(w.sys.Memory.Read32(uintptr(w.entry)))
}

// target resolves the code reached by a call to addr from the current
// security state, raising a SecureFault on invalid transitions.
func (w *World) target(addr uint32) uint32 {
	s := w.sys
	attr := s.Controller.Attribute(addr)

	switch {
	case w.Domain == mem.NonSecure && attr != mem.NonSecure:
		s.fault(tz.SFSR_INVTRAN, addr)
	case w.Domain == mem.Secure && s.state == mem.NonSecure && attr != mem.NonSecureCallable:
		s.fault(tz.SFSR_INVEP, addr)
	}

	if w.Domain != mem.Secure {
		return addr
	}

	if v, ok := w.veneers[addr]; ok {
		return v
	}

	if s.state == mem.NonSecure {
		// no SG instruction at the entry point
		s.fault(tz.SFSR_INVEP, addr)
	}

	return addr
}

// Call implements gateway.Domain.
func (w *World) Call(fn uintptr, r gateway.Args) uint32 {
	s := w.sys
	addr := w.target(uint32(fn) &^ 1)

	code, ok := w.code[addr]

	if !ok {
		panic(fmt.Sprintf("no %s code at %#08x", w.Domain, addr))
	}

	caller := s.state
	s.state = w.Domain

	defer func() {
		s.state = caller
	}()

	s.Trace = append(s.Trace, Call{From: caller, To: w.Domain, Name: w.names[addr], Args: r})
	n := len(s.Trace) - 1

	klog.V(2).Infof("%s -> %s %s(%#x)", caller, w.Domain, w.names[addr], r)

	res := code(r)
	s.Trace[n].Result = res

	return res
}
