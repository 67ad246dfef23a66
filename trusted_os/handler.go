// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

package main

import (
	"github.com/usbarmory/GoTEE-m/internal/reg"
	"github.com/usbarmory/GoTEE-m/tz"
)

//export MemoryManagement_Handler
func memoryManagementHandler() {
	tz.HandleFault(reg.Default, "MemoryManagement")
}

//export BusFault_Handler
func busFaultHandler() {
	tz.HandleFault(reg.Default, "BusFault")
}

//export UsageFault_Handler
func usageFaultHandler() {
	tz.HandleFault(reg.Default, "UsageFault")
}

//export SecureFault_Handler
func secureFaultHandler() {
	tz.HandleFault(reg.Default, "SecureFault")
}
