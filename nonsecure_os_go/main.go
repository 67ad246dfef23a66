// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

// Non-secure example image.
//
// The image is never started on its own: the Secure image invokes its
// tz_ns_bootstrap routine, to initialize .data and .bss, then calls its
// exported functions through the Non-secure vector table.
package main

import (
	_ "github.com/usbarmory/GoTEE-m/nonsecure_os_go/thing"
	_ "github.com/usbarmory/GoTEE-m/nonsecure_os_go/thing/private"
)

func main() {}
