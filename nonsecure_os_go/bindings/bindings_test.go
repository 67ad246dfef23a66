// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bindings

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usbarmory/GoTEE-m/gateway"
)

// secureWorld resolves hashes to fixed veneers and doubles r0.
type secureWorld map[uint32]uintptr

func (w secureWorld) String() string {
	return "secure"
}

func (w secureWorld) Find(hash uint32) (uintptr, bool) {
	fn, ok := w[hash]
	return fn, ok
}

func (w secureWorld) Call(fn uintptr, args gateway.Args) uint32 {
	if fn == w[0xbb8a65f0] {
		return 5
	}

	return args[0] * 2
}

func (w secureWorld) Entry() uintptr {
	return 0
}

func TestWrappersDoNotAllocate(t *testing.T) {
	prev := Peer
	Peer = secureWorld{0xbb8a65f0: 0x0003f009, 0xa32d2e61: 0x0003f011}

	t.Cleanup(func() {
		Peer = prev
	})

	require.Equal(t, uint32(5), Return5())
	require.Equal(t, uint32(42), Double(21))

	// the Non-secure image runs these with no heap
	require.Zero(t, testing.AllocsPerRun(100, func() {
		Double(Return5())
	}))
}
