// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package veneer

import (
	"github.com/snksoft/crc"
)

// CKSUM holds the CRC-32/CKSUM parameters, these are part of the vector
// table wire format and must never change.
var CKSUM = &crc.Parameters{
	Width:      32,
	Polynomial: 0x04c11db7,
	Init:       0x00000000,
	ReflectIn:  false,
	ReflectOut: false,
	FinalXor:   0xffffffff,
}

var cksum = crc.NewTable(CKSUM)

// Hash returns the CRC-32/CKSUM of a cross-domain function name, which
// identifies the function in vector tables.
func Hash(name string) uint32 {
	return uint32(cksum.CalculateCRC([]byte(name)))
}
