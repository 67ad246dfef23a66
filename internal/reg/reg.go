// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package reg provides primitives for 32-bit register access through a Bus,
// so that drivers can run against memory mapped I/O on target and against a
// recording register file in host tests.
package reg

import (
	"github.com/usbarmory/tamago/bits"
)

// Bus represents a 32-bit register address space.
type Bus interface {
	Read(addr uint32) uint32
	Write(addr uint32, val uint32)
}

// Get returns the register value at a specific bit position and with a
// bitmask applied.
func Get(b Bus, addr uint32, pos int, mask int) uint32 {
	val := b.Read(addr)
	return bits.Get(&val, pos, mask)
}

// IsSet reports whether a register bit is set.
func IsSet(b Bus, addr uint32, pos int) bool {
	return Get(b, addr, pos, 1) == 1
}

// Set sets a register bit, the register is written only when its value
// changes.
func Set(b Bus, addr uint32, pos int) {
	val := b.Read(addr)
	bits.Set(&val, pos)
	Update(b, addr, val)
}

// Clear clears a register bit, the register is written only when its
// value changes.
func Clear(b Bus, addr uint32, pos int) {
	val := b.Read(addr)
	bits.Clear(&val, pos)
	Update(b, addr, val)
}

// SetTo modifies a register bit, the register is written only when its
// value changes.
func SetTo(b Bus, addr uint32, pos int, val bool) {
	if val {
		Set(b, addr, pos)
	} else {
		Clear(b, addr, pos)
	}
}

// Update writes val to a register only when it differs from the current
// one and reports whether the write took place.
func Update(b Bus, addr uint32, val uint32) bool {
	if b.Read(addr) == val {
		return false
	}

	b.Write(addr, val)

	return true
}
