// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package thing

import (
	"example.com/firmware/nonsecure/thing/private"
)

//tz:secure_callable
//export write_thing
func WriteThing(val uint32) uint32 {
	state = val
	private.WritePrivateThing(val)
	return state
}

//tz:secure_callable
//export read_thing
func ReadThing() uint32 {
	return state
}
