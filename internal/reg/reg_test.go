// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package reg_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usbarmory/GoTEE-m/internal/reg"
	"github.com/usbarmory/GoTEE-m/internal/reg/testonly"
)

const testReg = 0x50003600

func TestReadModifyWrite(t *testing.T) {
	r := testonly.New(map[uint32]uint32{testReg: 0x00000007})

	reg.Set(r, testReg, 4)
	reg.Set(r, testReg, 4)
	reg.Clear(r, testReg, 0)
	reg.Clear(r, testReg, 8)
	reg.SetTo(r, testReg, 1, true)
	reg.SetTo(r, testReg, 2, false)

	want := []testonly.Op{
		testonly.W(testReg, 0x17),
		testonly.W(testReg, 0x16),
		testonly.W(testReg, 0x12),
	}

	if diff := cmp.Diff(want, r.Writes()); diff != "" {
		t.Errorf("writes diff (-want +got):\n%s", diff)
	}

	if got := reg.Get(r, testReg, 4, 1); got != 1 {
		t.Errorf("Get(4) = %d, want 1", got)
	}

	if got := reg.Get(r, testReg, 1, 0b111); got != 0b001 {
		t.Errorf("Get(1, 0b111) = %#b, want 0b1", got)
	}

	if reg.IsSet(r, testReg, 0) {
		t.Errorf("IsSet(0) = true, want false")
	}
}

func TestUpdate(t *testing.T) {
	r := testonly.New(nil)

	if !reg.Update(r, testReg, 0xcafe) {
		t.Errorf("Update() of a changed value did not write")
	}

	if reg.Update(r, testReg, 0xcafe) {
		t.Errorf("Update() of an unchanged value did write")
	}

	if n := len(r.Writes()); n != 1 {
		t.Errorf("%d writes, want 1", n)
	}
}

func TestBanked(t *testing.T) {
	const (
		sel  = 0xe000edd8
		data = 0xe000eddc
	)

	r := testonly.New(nil)
	r.Bank(sel, data)

	r.Write(sel, 0)
	r.Write(data, 0x100)
	r.Write(sel, 1)
	r.Write(data, 0x200)

	r.Write(sel, 0)

	if got := r.Read(data); got != 0x100 {
		t.Errorf("bank 0 = %#x, want 0x100", got)
	}

	r.Write(sel, 1)

	if got := r.Read(data); got != 0x200 {
		t.Errorf("bank 1 = %#x, want 0x200", got)
	}
}
