// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package private

const Initial = 99

var value uint32 = Initial

//tz:secure_callable
//export write_private_thing
func WritePrivateThing(val uint32) {
	value = val
}

//tz:secure_callable
//export read_private_thing
func ReadPrivateThing() uint32 {
	return value
}
