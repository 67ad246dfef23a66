// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

package veneer

import (
	"unsafe"
)

type raw struct{}

func (raw) Read32(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

// Find scans the vector table linked at start for hash, it returns 0 when
// the function is not present.
//
//go:noinline
func Find(start uintptr, hash uint32) uintptr {
	ptr, _ := Scan(raw{}, start, hash)
	return ptr
}
