// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package tz

import (
	"errors"
	"testing"

	"github.com/usbarmory/GoTEE-m/mem"
)

func TestConfigValidate(t *testing.T) {
	for _, test := range []struct {
		desc   string
		modify func(c *Config)
		wantIs error
	}{
		{
			desc:   "valid",
			modify: func(c *Config) {},
		}, {
			desc: "pins and channels",
			modify: func(c *Config) {
				c.Pins = []PinAssignment{{Port: 0, Pin: 31, Domain: mem.NonSecure}}
				c.DPPI = []DPPIAssignment{{Port: 0, Channel: 15, Domain: mem.NonSecure}}
			},
		}, {
			desc: "peripheral out of range",
			modify: func(c *Config) {
				c.Peripherals = append(c.Peripherals, PeripheralAssignment{ID: 67, Domain: mem.NonSecure})
			},
			wantIs: ErrConfig,
		}, {
			desc: "peripheral twice",
			modify: func(c *Config) {
				c.Peripherals = append(c.Peripherals, PeripheralAssignment{ID: 8, Domain: mem.Secure})
			},
			wantIs: ErrConfig,
		}, {
			desc: "callable peripheral",
			modify: func(c *Config) {
				c.Peripherals[0].Domain = mem.NonSecureCallable
			},
			wantIs: ErrConfig,
		}, {
			desc: "pin out of range",
			modify: func(c *Config) {
				c.Pins = []PinAssignment{{Port: 1, Pin: 0, Domain: mem.NonSecure}}
			},
			wantIs: ErrConfig,
		}, {
			desc: "dppi channel out of range",
			modify: func(c *Config) {
				c.DPPI = []DPPIAssignment{{Port: 0, Channel: 16, Domain: mem.NonSecure}}
			},
			wantIs: ErrConfig,
		}, {
			desc: "missing nonsecure ram",
			modify: func(c *Config) {
				c.Regions = c.Regions[:4]
			},
			wantIs: mem.ErrLayout,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			cfg := testConfig(mem.NRF9160)
			test.modify(cfg)

			if err := cfg.Validate(); !errors.Is(err, test.wantIs) {
				t.Errorf("Validate() = %v, want %v", err, test.wantIs)
			}
		})
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := testConfig(mem.NRF9160)

	if got := cfg.StackTop(); got != stackTop {
		t.Errorf("StackTop() = %#x, want %#x", got, stackTop)
	}

	if got := cfg.NonSecureCallable(); got.Start != 0x0003f000 || got.Size() != 4096 {
		t.Errorf("NonSecureCallable() = %s", got)
	}
}
