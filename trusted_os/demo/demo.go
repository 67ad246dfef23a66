// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package demo implements the Secure image test sequence of the example
// firmware, shared by the device image and its simulation.
package demo

import (
	"fmt"

	"github.com/usbarmory/GoTEE-m/trusted_os/bindings"
)

// Step represents a Secure image action and the value it read back.
type Step struct {
	Action string
	Value  uint32
}

// Run exercises the Non-secure functions from the Secure image: the state
// values are read, then updated through write_thing and
// write_private_thing, which call back into the Secure image.
func Run() (steps []Step) {
	read := func(action string) {
		steps = append(steps,
			Step{action + ", read_thing", bindings.ReadThing()},
			Step{action + ", read_private_thing", bindings.ReadPrivateThing()},
		)
	}

	read("initial")

	for _, val := range []uint32{5, 10} {
		bindings.WriteThing(val)
		bindings.WritePrivateThing(val)
		read(fmt.Sprintf("after writing %d", val))
	}

	return
}
