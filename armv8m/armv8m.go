// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package armv8m provides support for Armv8-M Mainline security extension
// features: the System Control Block fault and reset registers and the Test
// Target (TT) instruction response.
package armv8m

import (
	"fmt"

	"github.com/usbarmory/tamago/bits"

	"github.com/usbarmory/GoTEE-m/internal/reg"
	"github.com/usbarmory/GoTEE-m/mem"
)

// System Control Block registers
const (
	SCB_AIRCR         = 0xe000ed0c
	AIRCR_VECTKEY     = 16
	AIRCR_PRIGROUP    = 8
	AIRCR_SYSRESETREQ = 2

	SCB_SHCSR            = 0xe000ed24
	SHCSR_SECUREFAULTENA = 19
	SHCSR_USGFAULTENA    = 18
	SHCSR_BUSFAULTENA    = 17
	SHCSR_MEMFAULTENA    = 16

	SCB_CFSR  = 0xe000ed28
	SCB_HFSR  = 0xe000ed2c
	SCB_MMFAR = 0xe000ed34
	SCB_BFAR  = 0xe000ed38
)

const vectKey = 0x05fa

// Test Target response fields
const (
	TT_IREGION = 24
	TT_IRVALID = 23
	TT_S       = 22
	TT_NSRW    = 21
	TT_NSR     = 20
	TT_RW      = 19
	TT_R       = 18
	TT_SRVALID = 17
	TT_MRVALID = 16
	TT_SREGION = 8
	TT_MREGION = 0
)

// EnableFaults enables the MemManage, BusFault, UsageFault and SecureFault
// exceptions, which otherwise escalate to HardFault.
func EnableFaults(b reg.Bus) {
	val := b.Read(SCB_SHCSR)

	bits.Set(&val, SHCSR_MEMFAULTENA)
	bits.Set(&val, SHCSR_BUSFAULTENA)
	bits.Set(&val, SHCSR_USGFAULTENA)
	bits.Set(&val, SHCSR_SECUREFAULTENA)

	reg.Update(b, SCB_SHCSR, val)
}

// SystemReset requests a system reset, preserving the interrupt priority
// grouping.
func SystemReset(b reg.Bus) {
	val := b.Read(SCB_AIRCR)
	prigroup := bits.Get(&val, AIRCR_PRIGROUP, 0b111)

	b.Write(SCB_AIRCR, vectKey<<AIRCR_VECTKEY|prigroup<<AIRCR_PRIGROUP|1<<AIRCR_SYSRESETREQ)
}

// Permissions represents a decoded Test Target (TT) response.
type Permissions struct {
	Secure             bool
	Read               bool
	ReadWrite          bool
	NonSecureRead      bool
	NonSecureReadWrite bool

	MPURegion      int
	MPURegionValid bool
	SAURegion      int
	SAURegionValid bool
	IDAURegion     int
	IDAURegionValid bool
}

// DecodeTT decodes the response of a TT/TTA instruction, issued from the
// Secure state, for the queried address.
func DecodeTT(v uint32) (p Permissions) {
	p.Secure = bits.Get(&v, TT_S, 1) == 1
	p.Read = bits.Get(&v, TT_R, 1) == 1
	p.ReadWrite = bits.Get(&v, TT_RW, 1) == 1
	p.NonSecureRead = bits.Get(&v, TT_NSR, 1) == 1
	p.NonSecureReadWrite = bits.Get(&v, TT_NSRW, 1) == 1

	p.MPURegion = int(bits.Get(&v, TT_MREGION, 0xff))
	p.MPURegionValid = bits.Get(&v, TT_MRVALID, 1) == 1
	p.SAURegion = int(bits.Get(&v, TT_SREGION, 0xff))
	p.SAURegionValid = bits.Get(&v, TT_SRVALID, 1) == 1
	p.IDAURegion = int(bits.Get(&v, TT_IREGION, 0xff))
	p.IDAURegionValid = bits.Get(&v, TT_IRVALID, 1) == 1

	return
}

// Domain returns the security attribution reported by TT, which cannot tell
// Non-secure Callable memory apart from Secure memory.
func (p Permissions) Domain() mem.Domain {
	if p.Secure {
		return mem.Secure
	}

	return mem.NonSecure
}

func (p Permissions) String() string {
	region := func(valid bool, n int) string {
		if !valid {
			return "-"
		}

		return fmt.Sprintf("%d", n)
	}

	return fmt.Sprintf("%s r:%v rw:%v nsr:%v nsrw:%v mpu:%s sau:%s idau:%s",
		p.Domain(), p.Read, p.ReadWrite, p.NonSecureRead, p.NonSecureReadWrite,
		region(p.MPURegionValid, p.MPURegion),
		region(p.SAURegionValid, p.SAURegion),
		region(p.IDAURegionValid, p.IDAURegion),
	)
}
