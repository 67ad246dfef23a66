// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package testonly provides a recording register file for host tests of
// register level drivers.
package testonly

import (
	"fmt"
)

// Kind identifies a recorded operation.
type Kind string

const (
	Write   Kind = "write"
	Stack   Kind = "msp_ns"
	Barrier Kind = "barrier"
)

// Op represents a recorded operation.
type Op struct {
	Kind Kind
	Addr uint32
	Val  uint32
}

func (op Op) String() string {
	switch op.Kind {
	case Write:
		return fmt.Sprintf("write %#.8x %#.8x", op.Addr, op.Val)
	case Stack:
		return fmt.Sprintf("msp_ns %#.8x", op.Val)
	default:
		return string(op.Kind)
	}
}

// W returns a recorded register write.
func W(addr uint32, val uint32) Op {
	return Op{Kind: Write, Addr: addr, Val: val}
}

// Registers is a register file which records writes and CPU operations in
// order. It implements reg.Bus and the CPU operations required by
// partition initialization.
type Registers struct {
	// Ops holds all recorded operations
	Ops []Op

	regs  map[uint64]uint32
	banks map[uint32]uint32
}

// New returns a register file holding the argument reset values, unset
// registers read as zero.
func New(reset map[uint32]uint32) *Registers {
	r := &Registers{
		regs:  make(map[uint64]uint32),
		banks: make(map[uint32]uint32),
	}

	for addr, val := range reset {
		r.regs[uint64(addr)] = val
	}

	return r
}

// Bank declares registers whose contents are selected by the value of the
// register at sel (e.g. SAU_RBAR and SAU_RLAR selected by SAU_RNR).
func (r *Registers) Bank(sel uint32, addrs ...uint32) {
	for _, addr := range addrs {
		r.banks[addr] = sel
	}
}

func (r *Registers) key(addr uint32) uint64 {
	if sel, ok := r.banks[addr]; ok {
		return uint64(r.regs[uint64(sel)])<<32 | uint64(addr)
	}

	return uint64(addr)
}

// Read implements reg.Bus.
func (r *Registers) Read(addr uint32) uint32 {
	return r.regs[r.key(addr)]
}

// Write implements reg.Bus.
func (r *Registers) Write(addr uint32, val uint32) {
	r.Ops = append(r.Ops, W(addr, val))
	r.regs[r.key(addr)] = val
}

// Poke sets a register value without recording it, to model hardware side
// changes.
func (r *Registers) Poke(addr uint32, val uint32) {
	r.regs[r.key(addr)] = val
}

// SetNonSecureStack records a Non-secure main stack pointer update.
func (r *Registers) SetNonSecureStack(sp uint32) {
	r.Ops = append(r.Ops, Op{Kind: Stack, Val: sp})
}

// Barrier records a data and instruction synchronization barrier.
func (r *Registers) Barrier() {
	r.Ops = append(r.Ops, Op{Kind: Barrier})
}

// Writes returns the recorded writes to the argument registers, or all
// recorded writes when none is given.
func (r *Registers) Writes(addrs ...uint32) (ops []Op) {
	filter := make(map[uint32]bool)

	for _, addr := range addrs {
		filter[addr] = true
	}

	for _, op := range r.Ops {
		if op.Kind != Write {
			continue
		}

		if len(filter) > 0 && !filter[op.Addr] {
			continue
		}

		ops = append(ops, op)
	}

	return
}

// Flush discards all recorded operations, register values are preserved.
func (r *Registers) Flush() {
	r.Ops = nil
}
