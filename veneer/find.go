// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package veneer

// Memory represents a 32-bit word readable address space.
type Memory interface {
	Read32(addr uintptr) uint32
}

// Scan walks the vector table starting at start and returns the pointer
// of the first record matching hash. The scan stops at the sentinel
// record.
func Scan(m Memory, start uintptr, hash uint32) (ptr uintptr, ok bool) {
	for addr := start; ; addr += EntrySize {
		p := m.Read32(addr)
		h := m.Read32(addr + 4)

		if p == 0 && h == 0 {
			return
		}

		if h == hash {
			return uintptr(p), true
		}
	}
}
