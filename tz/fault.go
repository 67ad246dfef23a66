// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tz

import (
	"fmt"
	"log"
	"strings"

	"github.com/usbarmory/tamago/bits"

	"github.com/usbarmory/GoTEE-m/armv8m"
	"github.com/usbarmory/GoTEE-m/armv8m/sau"
	"github.com/usbarmory/GoTEE-m/internal/reg"
)

// SecureFault Status Register bits
const (
	SFSR_INVEP     = 0
	SFSR_INVIS     = 1
	SFSR_INVER     = 2
	SFSR_AUVIOL    = 3
	SFSR_INVTRAN   = 4
	SFSR_LSPERR    = 5
	SFSR_SFARVALID = 6
	SFSR_LSERR     = 7
)

var sfsrFlags = []struct {
	pos  int
	name string
}{
	{SFSR_INVEP, "invalid entry point"},
	{SFSR_INVIS, "invalid integrity signature"},
	{SFSR_INVER, "invalid exception return"},
	{SFSR_AUVIOL, "attribution unit violation"},
	{SFSR_INVTRAN, "invalid transition"},
	{SFSR_LSPERR, "lazy state preservation error"},
	{SFSR_LSERR, "lazy state error"},
}

// Fault represents a snapshot of the security and fault status registers.
type Fault struct {
	SAUCtrl uint32
	SFSR    uint32
	SFAR    uint32
	CFSR    uint32
	HFSR    uint32
	BFAR    uint32
	MMFAR   uint32
}

// ReadFault captures the fault status registers.
func ReadFault(b reg.Bus) (f Fault) {
	f.SAUCtrl = b.Read(sau.BASE + sau.SAU_CTRL)
	f.SFSR = b.Read(sau.BASE + sau.SAU_SFSR)
	f.SFAR = b.Read(sau.BASE + sau.SAU_SFAR)
	f.CFSR = b.Read(armv8m.SCB_CFSR)
	f.HFSR = b.Read(armv8m.SCB_HFSR)
	f.BFAR = b.Read(armv8m.SCB_BFAR)
	f.MMFAR = b.Read(armv8m.SCB_MMFAR)

	return
}

// Causes returns the decoded SecureFault causes.
func (f Fault) Causes() (causes []string) {
	for _, flag := range sfsrFlags {
		if bits.Get(&f.SFSR, flag.pos, 1) == 1 {
			causes = append(causes, flag.name)
		}
	}

	return
}

// SFARValid reports whether SFAR holds the faulting address.
func (f Fault) SFARValid() bool {
	return bits.Get(&f.SFSR, SFSR_SFARVALID, 1) == 1
}

func (f Fault) String() string {
	var s strings.Builder

	fmt.Fprintf(&s, "SAU_CTRL:%#.8x SFSR:%#.8x SFAR:%#.8x\n", f.SAUCtrl, f.SFSR, f.SFAR)
	fmt.Fprintf(&s, "CFSR:%#.8x HFSR:%#.8x BFAR:%#.8x MMFAR:%#.8x", f.CFSR, f.HFSR, f.BFAR, f.MMFAR)

	if causes := f.Causes(); len(causes) > 0 {
		fmt.Fprintf(&s, "\nsecure fault: %s", strings.Join(causes, ", "))
	}

	if f.SFARValid() {
		fmt.Fprintf(&s, " at %#.8x", f.SFAR)
	}

	return s.String()
}

// HandleFault reports a fault exception and resets the system.
func HandleFault(b reg.Bus, exception string) {
	log.Printf("SM %s\n%s", exception, ReadFault(b))
	armv8m.SystemReset(b)
}
