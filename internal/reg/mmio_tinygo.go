// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

package reg

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO implements Bus over memory mapped registers.
type MMIO struct{}

// Default is the system register bus.
var Default Bus = MMIO{}

func (MMIO) Read(addr uint32) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(addr))))
}

func (MMIO) Write(addr uint32, val uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(uintptr(addr))), val)
}
