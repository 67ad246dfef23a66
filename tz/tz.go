// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package tz implements the boot time TrustZone partitioning of an Armv8-M
// microcontroller.
//
// The Secure image programs the security attribution hardware according
// to a Config, through a Controller for either the architectural SAU or a
// vendor System Protection Unit, then prepares and bootstraps the
// Non-secure image before any of its instructions runs.
package tz

import (
	"errors"
	"fmt"

	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/mem"
)

var (
	// ErrConfig is returned for partitions which cannot be enforced.
	ErrConfig = errors.New("invalid TrustZone configuration")
	// ErrUnsupported is returned for assignments not supported by a
	// controller.
	ErrUnsupported = errors.New("unsupported by TrustZone controller")
)

// Controller represents a security attribution unit.
type Controller interface {
	// ConfigureMemory attributes flash and RAM according to the layout.
	ConfigureMemory(regions []mem.Region) error
	// ConfigureNSC sets the Non-secure Callable region.
	ConfigureNSC(region mem.Region) error
	// ConfigurePeripherals attributes peripherals, GPIO pins and DPPI
	// channels.
	ConfigurePeripherals(periph []PeripheralAssignment, pins []PinAssignment, dppi []DPPIAssignment) error
	// Activate enforces the programmed attribution.
	Activate() error
	// Attribute returns the current attribution of an address.
	Attribute(addr uint32) mem.Domain
}

// CPU represents the Secure state processor operations required to hand
// over to the Non-secure image.
type CPU interface {
	// SetNonSecureStack sets the Non-secure main stack pointer (MSP_NS).
	SetNonSecureStack(sp uint32)
	// Barrier issues a data then instruction synchronization barrier.
	Barrier()
}

// Partition programs the security attribution hardware, and the Non-secure
// stack pointer, according to cfg. Nothing is written when cfg is invalid.
func Partition(cfg *Config, ctl Controller, cpu CPU) (err error) {
	if err = cfg.Validate(); err != nil {
		return
	}

	if err = ctl.ConfigureMemory(cfg.Regions); err != nil {
		return fmt.Errorf("could not configure memory, %w", err)
	}

	if err = ctl.ConfigureNSC(cfg.NonSecureCallable()); err != nil {
		return fmt.Errorf("could not configure Non-secure Callable region, %w", err)
	}

	if err = ctl.ConfigurePeripherals(cfg.Peripherals, cfg.Pins, cfg.DPPI); err != nil {
		return fmt.Errorf("could not configure peripherals, %w", err)
	}

	if err = ctl.Activate(); err != nil {
		return fmt.Errorf("could not activate attribution, %w", err)
	}

	cpu.SetNonSecureStack(cfg.StackTop())
	cpu.Barrier()

	return
}

// Initialize partitions the device and invokes the Non-secure bootstrap
// routine, which initializes the Non-secure image data and bss sections,
// through the ns gateway.
func Initialize(cfg *Config, ctl Controller, cpu CPU, ns gateway.Domain) (err error) {
	if err = Partition(cfg, ctl, cpu); err != nil {
		return
	}

	entry := ns.Entry()

	if entry == 0 {
		return fmt.Errorf("%w, missing %s bootstrap entry", ErrConfig, ns)
	}

	ns.Call(entry, gateway.Args{})

	return
}
