// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

package gateway

import (
	"unsafe"

	"github.com/usbarmory/GoTEE-m/veneer"
)

// Secure image vector table, its rows point at the NSC gateway veneers.
//
//go:extern _nsc_vectors
var nscVectors [0]uint32

// Non-secure image vector table, as placed by the Non-secure linker script.
//
//go:extern _ns_vectors
var nsVectors [0]uint32

// Non-secure bootstrap pointer.
//
//go:extern _ns_entry
var nsEntry [0]uint32

// Searcher gateway veneer, first entry of the NSC region.
//
//go:extern _nsc_veneers
var nscVeneers [0]uint32

// defined in trampoline_cortexm.S
//
//export tz_nonsecure_call
func nonsecureCall(fn uintptr, a0 uint32, a1 uint32, a2 uint32, a3 uint32) uint32

// defined in trampoline_cortexm.S
//
//export tz_secure_call
func secureCall(fn uintptr, a0 uint32, a1 uint32, a2 uint32, a3 uint32) uint32

func addr(sym *[0]uint32) uintptr {
	return uintptr(unsafe.Pointer(sym))
}

type nonsecure struct{}

func (nonsecure) String() string {
	return "nonsecure"
}

func (nonsecure) Find(hash uint32) (fn uintptr, ok bool) {
	fn = veneer.Find(addr(&nsVectors), hash)
	return fn, fn != 0
}

func (nonsecure) Call(fn uintptr, r Args) uint32 {
	return nonsecureCall(fn, r[0], r[1], r[2], r[3])
}

func (nonsecure) Entry() uintptr {
	return uintptr(*(*uint32)(unsafe.Pointer(addr(&nsEntry))))
}

type secure struct{}

func (secure) String() string {
	return "secure"
}

func (secure) Find(hash uint32) (fn uintptr, ok bool) {
	fn = uintptr(secureCall(addr(&nscVeneers), hash, 0, 0, 0))
	return fn, fn != 0
}

func (secure) Call(fn uintptr, r Args) uint32 {
	return secureCall(fn, r[0], r[1], r[2], r[3])
}

func (secure) Entry() uintptr {
	return addr(&nscVeneers)
}

var (
	// NonSecure is the Non-secure domain as seen from the Secure image.
	NonSecure Domain = nonsecure{}
	// Secure is the Secure domain as seen from the Non-secure image.
	Secure Domain = secure{}
)

// FindSecure returns the Non-secure Callable veneer of the Secure function
// identified by hash, or 0 if not present.
func FindSecure(hash uint32) uintptr {
	return veneer.Find(addr(&nscVectors), hash)
}
