// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package manifest parses trustzone.yaml, the build description of a
// TrustZone firmware: the partition enforced by the Secure image and the
// source trees of both images.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/tz"
)

// DefaultName is the manifest file name.
const DefaultName = "trustzone.yaml"

// ErrManifest is returned for invalid manifests.
var ErrManifest = errors.New("invalid manifest")

// Address is a 32-bit address, encoded in hexadecimal.
type Address uint32

// MarshalYAML implements yaml.Marshaler.
func (a Address) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: fmt.Sprintf("0x%08x", uint32(a)),
	}, nil
}

// Region represents a memory region.
type Region struct {
	Name   string     `yaml:"name"`
	Start  Address    `yaml:"start"`
	End    Address    `yaml:"end"`
	Domain mem.Domain `yaml:"domain"`
}

// Peripheral represents a peripheral assignment, Non-secure unless
// specified otherwise.
type Peripheral struct {
	Name   string      `yaml:"name,omitempty"`
	ID     int         `yaml:"id"`
	Domain *mem.Domain `yaml:"domain,omitempty"`
}

// Pin represents a GPIO pin assignment, Non-secure unless specified
// otherwise.
type Pin struct {
	Port   int         `yaml:"port"`
	Pin    int         `yaml:"pin"`
	Domain *mem.Domain `yaml:"domain,omitempty"`
}

// Channel represents a DPPI channel assignment, Non-secure unless
// specified otherwise.
type Channel struct {
	Port    int         `yaml:"port"`
	Channel int         `yaml:"channel"`
	Domain  *mem.Domain `yaml:"domain,omitempty"`
}

// World describes the source tree of a TrustZone image.
type World struct {
	// Root is the main package directory, exported functions are
	// collected from it and from the module packages it imports.
	Root string `yaml:"root"`
	// Bindings is the output directory of the generated package.
	Bindings string `yaml:"bindings"`
}

// Manifest represents a trustzone.yaml file.
type Manifest struct {
	Target      string       `yaml:"target"`
	Regions     []Region     `yaml:"regions"`
	Peripherals []Peripheral `yaml:"peripherals,omitempty"`
	Pins        []Pin        `yaml:"pins,omitempty"`
	DPPI        []Channel    `yaml:"dppi,omitempty"`

	Secure    World `yaml:"secure"`
	NonSecure World `yaml:"nonsecure"`

	dir string
}

func domain(d *mem.Domain) mem.Domain {
	if d == nil {
		return mem.NonSecure
	}

	return *d
}

// Parse decodes a manifest, unknown fields are rejected.
func Parse(buf []byte) (m *Manifest, err error) {
	m = &Manifest{}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	if err = dec.Decode(m); err != nil {
		return nil, fmt.Errorf("%w, %v", ErrManifest, err)
	}

	if m.Target == "" {
		return nil, fmt.Errorf("%w, missing target", ErrManifest)
	}

	if _, ok := mem.Targets[m.Target]; !ok {
		return nil, fmt.Errorf("%w, unknown target %q", ErrManifest, m.Target)
	}

	return
}

// Load reads and decodes a manifest file, relative paths within it are
// resolved against its directory.
func Load(path string) (m *Manifest, err error) {
	buf, err := os.ReadFile(path)

	if err != nil {
		return
	}

	if m, err = Parse(buf); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.dir = filepath.Dir(path)

	return
}

// Path resolves a manifest relative path.
func (m *Manifest) Path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(m.dir, rel)
}

// Config returns the validated partition described by the manifest.
func (m *Manifest) Config() (cfg *tz.Config, err error) {
	cfg = &tz.Config{
		Target: mem.Targets[m.Target],
	}

	for _, r := range m.Regions {
		cfg.Regions = append(cfg.Regions, mem.Region{
			Name:   r.Name,
			Start:  uint32(r.Start),
			End:    uint32(r.End),
			Domain: r.Domain,
		})
	}

	for _, p := range m.Peripherals {
		cfg.Peripherals = append(cfg.Peripherals, tz.PeripheralAssignment{ID: p.ID, Domain: domain(p.Domain)})
	}

	for _, p := range m.Pins {
		cfg.Pins = append(cfg.Pins, tz.PinAssignment{Port: p.Port, Pin: p.Pin, Domain: domain(p.Domain)})
	}

	for _, c := range m.DPPI {
		cfg.DPPI = append(cfg.DPPI, tz.DPPIAssignment{Port: c.Port, Channel: c.Channel, Domain: domain(c.Domain)})
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrManifest, err)
	}

	return
}

// Marshal encodes the manifest.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(m); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
