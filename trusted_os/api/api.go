// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package api implements the Secure functions exposed to the Non-secure
// image.
package api

import (
	"log"
)

// Return5 returns 5.
//
//tz:nonsecure_callable
//export return_5
func Return5() uint32 {
	log.Printf("SM in return_5")
	return 5
}

// Double returns twice its argument.
//
//tz:nonsecure_callable
//export double
func Double(x uint32) uint32 {
	log.Printf("SM in double")
	return x * 2
}
