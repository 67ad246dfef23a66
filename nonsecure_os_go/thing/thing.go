// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package thing holds example Non-secure state updated through Secure
// functions.
package thing

import (
	"github.com/usbarmory/GoTEE-m/nonsecure_os_go/bindings"
)

// Initial is the state value before any write.
const Initial = 99

var thing uint32 = Initial

// WriteThing stores the double of val plus 5, both computed by the Secure
// image.
//
//tz:secure_callable
//export write_thing
func WriteThing(val uint32) {
	thing = bindings.Double(val + bindings.Return5())
}

// ReadThing returns the stored value.
//
//tz:secure_callable
//export read_thing
func ReadThing() uint32 {
	return thing
}
