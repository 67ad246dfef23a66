// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package veneer

import (
	"testing"
)

func TestHash(t *testing.T) {
	for _, test := range []struct {
		name string
		want uint32
	}{
		{name: "123456789", want: 0x765e7680},
		{name: "", want: 0xffffffff},
		{name: "double", want: 0xa32d2e61},
		{name: "return_5", want: 0xbb8a65f0},
		{name: "write_thing", want: 0xf7c8fbb0},
		{name: "read_thing", want: 0xeab2c8e5},
		{name: "write_private_thing", want: 0xa8d209b4},
		{name: "read_private_thing", want: 0xa8b22be0},
		{name: "blink_led_with_uart", want: 0x2e9483be},
		{name: "tz_ns_bootstrap", want: 0x3beeef84},
	} {
		t.Run(test.name, func(t *testing.T) {
			if got := Hash(test.name); got != test.want {
				t.Errorf("Hash(%q) = %#08x, want %#08x", test.name, got, test.want)
			}
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	if Hash("write_thing") != Hash("write_thing") {
		t.Fatal("Hash() is not deterministic")
	}

	if Hash("write_thing") == Hash("write_things") {
		t.Fatal("Hash() ignores trailing bytes")
	}
}

func TestHashCollision(t *testing.T) {
	a, b := Hash("jdmbadxekx"), Hash("hmssmjgpfp")

	if a != b || a != 0xfa7856d2 {
		t.Fatalf("Hash() = %#08x, %#08x, want both 0xfa7856d2", a, b)
	}
}
