// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !(tinygo && cortexm)
// +build !tinygo !cortexm

package gateway

// unavailable represents a peer domain which does not exist on the build
// target, its functions are never found.
type unavailable string

func (d unavailable) String() string {
	return string(d)
}

func (d unavailable) Find(hash uint32) (uintptr, bool) {
	return 0, false
}

func (d unavailable) Call(fn uintptr, args Args) uint32 {
	panic("cross-domain call to " + string(d) + " outside TrustZone")
}

func (d unavailable) Entry() uintptr {
	return 0
}

var (
	// NonSecure is the Non-secure domain as seen from the Secure image.
	NonSecure Domain = unavailable("nonsecure")
	// Secure is the Secure domain as seen from the Non-secure image.
	Secure Domain = unavailable("secure")
)

// FindSecure returns the Non-secure Callable veneer of the Secure function
// identified by hash, or 0 if not present.
func FindSecure(hash uint32) uintptr {
	return 0
}
