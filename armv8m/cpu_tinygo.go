// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

package armv8m

import (
	"device/arm"
)

// CPU represents the Secure state of the running Armv8-M core.
type CPU struct{}

// SetNonSecureStack sets the Non-secure main stack pointer (MSP_NS).
func (CPU) SetNonSecureStack(sp uint32) {
	arm.AsmFull("msr msp_ns, {sp}", map[string]interface{}{
		"sp": sp,
	})
}

// Barrier issues a data synchronization barrier followed by an
// instruction synchronization barrier.
func (CPU) Barrier() {
	arm.Asm("dsb 0xf")
	arm.Asm("isb 0xf")
}

// TestTarget issues a TT instruction for addr and returns its raw response.
func (CPU) TestTarget(addr uint32) uint32 {
	return uint32(arm.AsmFull("tt {}, {addr}", map[string]interface{}{
		"addr": addr,
	}))
}
