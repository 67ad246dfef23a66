// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"encoding/binary"
	"fmt"
)

// Memory represents a sparse word addressable memory, unwritten words read
// as zero.
type Memory struct {
	words map[uint32]uint32
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{
		words: make(map[uint32]uint32),
	}
}

// Read32 implements veneer.Memory.
func (m *Memory) Read32(addr uintptr) uint32 {
	return m.words[uint32(addr)&^3]
}

// Write32 stores a word, addr is aligned down to a word boundary.
func (m *Memory) Write32(addr uint32, val uint32) {
	m.words[addr&^3] = val
}

// Load copies little endian words to memory starting at addr.
func (m *Memory) Load(addr uint32, buf []byte) error {
	if addr%4 != 0 || len(buf)%4 != 0 {
		return fmt.Errorf("unaligned load of %d bytes at %#08x", len(buf), addr)
	}

	for off := 0; off < len(buf); off += 4 {
		m.Write32(addr+uint32(off), binary.LittleEndian.Uint32(buf[off:]))
	}

	return nil
}
