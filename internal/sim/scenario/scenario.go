// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package scenario links the example Secure and Non-secure images in a
// simulated device.
package scenario

import (
	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/internal/sim"
	"github.com/usbarmory/GoTEE-m/nonsecure_os_go/thing"
	"github.com/usbarmory/GoTEE-m/nonsecure_os_go/thing/private"
	"github.com/usbarmory/GoTEE-m/trusted_os/api"

	nsbindings "github.com/usbarmory/GoTEE-m/nonsecure_os_go/bindings"
	sbindings "github.com/usbarmory/GoTEE-m/trusted_os/bindings"
)

type export struct {
	name string
	fn   sim.Func
}

var secureExports = []export{
	{"return_5", func(_ [gateway.MaxArgs]uint32) uint32 {
		return api.Return5()
	}},
	{"double", func(a [gateway.MaxArgs]uint32) uint32 {
		return api.Double(a[0])
	}},
}

var nonsecureExports = []export{
	{"write_thing", func(a [gateway.MaxArgs]uint32) uint32 {
		thing.WriteThing(a[0])
		return 0
	}},
	{"read_thing", func(_ [gateway.MaxArgs]uint32) uint32 {
		return thing.ReadThing()
	}},
	{"write_private_thing", func(a [gateway.MaxArgs]uint32) uint32 {
		private.WritePrivateThing(a[0])
		return 0
	}},
	{"read_private_thing", func(_ [gateway.MaxArgs]uint32) uint32 {
		return private.ReadPrivateThing()
	}},
}

// Load links the example images in s and points their bindings to the
// simulated peers.
func Load(s *sim.System) (err error) {
	for _, e := range secureExports {
		if _, err = s.Secure.Export(e.name, e.fn); err != nil {
			return
		}
	}

	for _, e := range nonsecureExports {
		if _, err = s.NonSecure.Export(e.name, e.fn); err != nil {
			return
		}
	}

	nsbindings.Peer = s.Secure
	sbindings.Peer = s.NonSecure

	return
}

// Unload restores the bindings peers of the running target.
func Unload() {
	nsbindings.Peer = gateway.Secure
	sbindings.Peer = gateway.NonSecure
}
