// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/tz"
)

const testManifest = `
target: armv8m
regions:
  - {name: veneers, start: 0x0003f000, end: 0x00040000, domain: nonsecure-callable}
  - {name: nonsecure flash, start: 0x00040000, end: 0x00100000, domain: nonsecure}
  - {name: nonsecure ram, start: 0x20020000, end: 0x20040000, domain: nonsecure}
peripherals:
  - {id: 8}
  - {id: 9, domain: secure}
secure:
  root: s
  bindings: s/bindings
nonsecure:
  root: ns
  bindings: ns/bindings
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(testManifest))

	if err != nil {
		t.Fatal(err)
	}

	cfg, err := m.Config()

	if err != nil {
		t.Fatal(err)
	}

	want := &tz.Config{
		Target: mem.ARMv8M,
		Regions: []mem.Region{
			{Name: "veneers", Start: 0x0003f000, End: 0x00040000, Domain: mem.NonSecureCallable},
			{Name: "nonsecure flash", Start: 0x00040000, End: 0x00100000, Domain: mem.NonSecure},
			{Name: "nonsecure ram", Start: 0x20020000, End: 0x20040000, Domain: mem.NonSecure},
		},
		Peripherals: []tz.PeripheralAssignment{
			{ID: 8, Domain: mem.NonSecure},
			{ID: 9, Domain: mem.Secure},
		},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config() diff (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(World{Root: "ns", Bindings: "ns/bindings"}, m.NonSecure); diff != "" {
		t.Errorf("NonSecure diff (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		desc string
		yaml string
	}{
		{desc: "missing target", yaml: "regions: []"},
		{desc: "unknown target", yaml: "target: nrf52840"},
		{desc: "unknown field", yaml: "target: nrf9160\nsau: true"},
		{desc: "invalid domain", yaml: "target: nrf9160\nregions:\n  - {name: x, start: 0, end: 0x8000, domain: trusted}"},
	} {
		t.Run(test.desc, func(t *testing.T) {
			if _, err := Parse([]byte(test.yaml)); !errors.Is(err, ErrManifest) {
				t.Errorf("Parse() = %v, want ErrManifest", err)
			}
		})
	}
}

func TestConfigInvalid(t *testing.T) {
	// Non-secure Callable region larger than 4096 bytes
	m, err := Parse([]byte(strings.Replace(testManifest, "start: 0x0003f000", "start: 0x0003e000", 1)))

	if err != nil {
		t.Fatal(err)
	}

	_, err = m.Config()

	if !errors.Is(err, ErrManifest) || !errors.Is(err, mem.ErrLayout) {
		t.Errorf("Config() = %v, want ErrManifest and ErrLayout", err)
	}
}

func TestMarshal(t *testing.T) {
	m, err := Parse([]byte(testManifest))

	if err != nil {
		t.Fatal(err)
	}

	buf, err := m.Marshal()

	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(buf), "start: 0x0003f000") || !strings.Contains(string(buf), "domain: nonsecure-callable") {
		t.Errorf("unexpected encoding:\n%s", buf)
	}

	again, err := Parse(buf)

	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(m, again, cmp.AllowUnexported(Manifest{})); diff != "" {
		t.Errorf("round trip diff (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join("..", DefaultName)
	m, err := Load(path)

	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Config(); err != nil {
		t.Fatal(err)
	}

	if got, want := m.Path(m.Secure.Bindings), filepath.Join("..", "trusted_os", "bindings"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
