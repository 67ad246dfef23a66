// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package private

// Initial is the state value before any write.
const Initial = 102

var thing uint32 = Initial

//tz:secure_callable
//export write_private_thing
func WritePrivateThing(val uint32) {
	thing = val
}

//tz:secure_callable
//export read_private_thing
func ReadPrivateThing() uint32 {
	return thing
}
