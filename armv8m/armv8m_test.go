// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package armv8m

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usbarmory/GoTEE-m/internal/reg/testonly"
	"github.com/usbarmory/GoTEE-m/mem"
)

func TestDecodeTT(t *testing.T) {
	for _, test := range []struct {
		desc string
		tt   uint32
		want Permissions
	}{
		{
			desc: "secure sau region",
			tt:   1<<TT_S | 1<<TT_RW | 1<<TT_R | 1<<TT_SRVALID | 2<<TT_SREGION,
			want: Permissions{
				Secure:         true,
				Read:           true,
				ReadWrite:      true,
				SAURegion:      2,
				SAURegionValid: true,
			},
		}, {
			desc: "nonsecure with mpu and idau regions",
			tt:   1<<TT_NSRW | 1<<TT_NSR | 1<<TT_RW | 1<<TT_R | 1<<TT_MRVALID | 5 | 1<<TT_IRVALID | 0x12<<TT_IREGION,
			want: Permissions{
				Read:               true,
				ReadWrite:          true,
				NonSecureRead:      true,
				NonSecureReadWrite: true,
				MPURegion:          5,
				MPURegionValid:     true,
				IDAURegion:         0x12,
				IDAURegionValid:    true,
			},
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			got := DecodeTT(test.tt)

			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("DecodeTT(%#x) diff (-want +got):\n%s", test.tt, diff)
			}
		})
	}

	if d := DecodeTT(1 << TT_S).Domain(); d != mem.Secure {
		t.Errorf("Domain() = %v, want secure", d)
	}

	if d := DecodeTT(1 << TT_NSRW).Domain(); d != mem.NonSecure {
		t.Errorf("Domain() = %v, want nonsecure", d)
	}
}

func TestEnableFaults(t *testing.T) {
	r := testonly.New(nil)

	EnableFaults(r)
	EnableFaults(r)

	want := []testonly.Op{testonly.W(SCB_SHCSR, 0x000f0000)}

	if diff := cmp.Diff(want, r.Writes()); diff != "" {
		t.Errorf("writes diff (-want +got):\n%s", diff)
	}
}

func TestSystemReset(t *testing.T) {
	r := testonly.New(map[uint32]uint32{SCB_AIRCR: 0xfa050300})

	SystemReset(r)

	want := []testonly.Op{testonly.W(SCB_AIRCR, 0x05fa0304)}

	if diff := cmp.Diff(want, r.Writes()); diff != "" {
		t.Errorf("writes diff (-want +got):\n%s", diff)
	}
}
