// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mem describes the memory layout of Armv8-M TrustZone targets and
// the attribution of their regions to the Secure and Non-secure worlds.
package mem

import (
	"errors"
	"fmt"
	"sort"
)

// Domain represents a security attribution.
type Domain int

const (
	Secure Domain = iota
	NonSecure
	NonSecureCallable
)

var domainNames = []string{
	Secure:            "secure",
	NonSecure:         "nonsecure",
	NonSecureCallable: "nonsecure-callable",
}

// ErrLayout is returned for memory layouts the attribution hardware cannot
// enforce.
var ErrLayout = errors.New("invalid memory layout")

func (d Domain) String() string {
	if d < 0 || int(d) >= len(domainNames) {
		return fmt.Sprintf("Domain(%d)", int(d))
	}

	return domainNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Domain) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(domainNames) {
		return nil, fmt.Errorf("invalid domain %d", int(d))
	}

	return []byte(domainNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Domain) UnmarshalText(text []byte) error {
	for i, name := range domainNames {
		if string(text) == name {
			*d = Domain(i)
			return nil
		}
	}

	return fmt.Errorf("invalid domain %q", text)
}

// Region represents a contiguous address range, End is exclusive.
type Region struct {
	Name   string
	Start  uint32
	End    uint32
	Domain Domain
}

func (r Region) String() string {
	return fmt.Sprintf("%s %#.8x-%#.8x (%s)", r.Name, r.Start, r.End, r.Domain)
}

// Size returns the region length in bytes.
func (r Region) Size() uint32 {
	return r.End - r.Start
}

// Contains reports whether addr falls within the region.
func (r Region) Contains(addr uint32) bool {
	return addr >= r.Start && addr < r.End
}

// Overlaps reports whether the two regions share at least one address.
func (r Region) Overlaps(o Region) bool {
	return r.Start < o.End && o.Start < r.End
}

// NonSecureCallableRegion returns the Non-secure Callable region of a
// layout.
func NonSecureCallableRegion(regions []Region) (r Region, ok bool) {
	for _, r = range regions {
		if r.Domain == NonSecureCallable {
			return r, true
		}
	}

	return Region{}, false
}

// NonSecureStackTop returns the initial Non-secure main stack pointer, the
// end of the last declared Non-secure RAM region.
func NonSecureStackTop(t *Target, regions []Region) (sp uint32, ok bool) {
	for _, r := range regions {
		if r.Domain == NonSecure && t.InRAM(r.Start) {
			sp = r.End
			ok = true
		}
	}

	return
}

func isPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

func aligned(t *Target, r Region) bool {
	size := t.RAMRegionSize

	if t.InFlash(r.Start) {
		size = t.FlashRegionSize
	}

	return r.Start%size == 0 && r.End%size == 0
}

func validateNSC(t *Target, r Region) error {
	size := r.Size()

	if !t.InFlash(r.Start) {
		return fmt.Errorf("%w, %s must be located in flash", ErrLayout, r)
	}

	if size > t.MaxNSCSize {
		return fmt.Errorf("%w, %s exceeds the %d bytes Non-secure Callable limit", ErrLayout, r, t.MaxNSCSize)
	}

	if size < t.MinNSCSize || size%t.MinNSCSize != 0 || r.Start%t.MinNSCSize != 0 {
		return fmt.Errorf("%w, %s must be %d bytes aligned", ErrLayout, r, t.MinNSCSize)
	}

	if !t.NSCAtRegionEnd {
		return nil
	}

	if !isPow2(size) {
		return fmt.Errorf("%w, %s size must be a power of two", ErrLayout, r)
	}

	if (r.End-t.FlashBase)%t.FlashRegionSize != 0 {
		return fmt.Errorf("%w, %s must end on a %d bytes flash region boundary", ErrLayout, r, t.FlashRegionSize)
	}

	return nil
}

// Validate checks that a layout can be enforced on the target: regions must
// be non-empty, non-overlapping, fully within flash or RAM and aligned to
// the region granularity, exactly one Non-secure Callable region must exist
// within its size bounds and at least one Non-secure RAM region must be
// declared.
func Validate(t *Target, regions []Region) (err error) {
	var nsc int

	if t == nil {
		return fmt.Errorf("%w, missing target", ErrLayout)
	}

	for _, r := range regions {
		if r.Start >= r.End {
			return fmt.Errorf("%w, %s is empty", ErrLayout, r)
		}

		flash := t.InFlash(r.Start) && t.InFlash(r.End-1)
		ram := t.InRAM(r.Start) && t.InRAM(r.End-1)

		if !flash && !ram {
			return fmt.Errorf("%w, %s is outside flash and RAM", ErrLayout, r)
		}

		switch r.Domain {
		case NonSecureCallable:
			if err = validateNSC(t, r); err != nil {
				return
			}

			nsc++
		case Secure, NonSecure:
			if !aligned(t, r) {
				return fmt.Errorf("%w, %s is not aligned to the region granularity", ErrLayout, r)
			}
		default:
			return fmt.Errorf("%w, %s has invalid domain", ErrLayout, r)
		}
	}

	if nsc != 1 {
		return fmt.Errorf("%w, %d Non-secure Callable regions declared (expected 1)", ErrLayout, nsc)
	}

	if _, ok := NonSecureStackTop(t, regions); !ok {
		return fmt.Errorf("%w, no Non-secure RAM region declared", ErrLayout)
	}

	sorted := make([]Region, len(regions))
	copy(sorted, regions)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return fmt.Errorf("%w, %s overlaps %s", ErrLayout, sorted[i-1], sorted[i])
		}
	}

	return
}
