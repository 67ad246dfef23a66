// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package gateway implements cross-domain calls between the Secure and
// Non-secure TrustZone images.
//
// Functions are located in the peer image by name hash (see package
// veneer) and invoked through assembly trampolines which take care of the
// Armv8-M security state transition, so that generated bindings only deal
// with typed wrappers around Domain.Call.
//
// Arguments are passed by value in a fixed size register array, generated
// wrappers must not allocate as the Non-secure image runs without heap
// initialization.
package gateway

import (
	"fmt"
)

// MaxArgs is the maximum number of word sized arguments passed in
// registers to a cross-domain function.
const MaxArgs = 4

// Domain represents the peer security domain of the running image.
type Domain interface {
	// String returns the domain name.
	String() string
	// Find returns the entry point of the peer function identified by
	// hash.
	Find(hash uint32) (fn uintptr, ok bool)
	// Call invokes a peer entry point with arguments in r0-r3 and returns
	// register r0.
	Call(fn uintptr, args Args) uint32
	// Entry returns the peer bootstrap entry point.
	Entry() uintptr
}

// MustFind is like Domain.Find but panics if the function is not present,
// name is only used to build the panic message.
func MustFind(d Domain, hash uint32, name string) uintptr {
	fn, ok := d.Find(hash)

	if !ok {
		panic(fmt.Sprintf("could not find the veneer of %s %q", d, name))
	}

	return fn
}

// Args holds call arguments in argument registers order.
type Args [MaxArgs]uint32

// Bool converts a boolean argument to its register value.
func Bool(b bool) uint32 {
	if b {
		return 1
	}

	return 0
}
