// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package api

// Double returns twice its argument.
//
//tz:nonsecure_callable
//export double
func Double(val uint32) uint32 {
	return val * 2
}

// Return5 returns 5.
//
//tz:nonsecure_callable
//export return_5
func Return5() uint32 {
	return 5
}

// Triple is not exported to the Non-secure world.
func Triple(val uint32) uint32 {
	return val * 3
}
