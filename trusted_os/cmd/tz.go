// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"

	"github.com/usbarmory/GoTEE-m/armv8m"
	"github.com/usbarmory/GoTEE-m/armv8m/sau"
	"github.com/usbarmory/GoTEE-m/soc/nordic/spu"
	"github.com/usbarmory/GoTEE-m/tz"
	"github.com/usbarmory/GoTEE-m/veneer"
)

func init() {
	Add(Cmd{
		Name: "sau",
		Help: "show Security Attribution Unit regions",
		Fn:   sauCmd,
	})

	Add(Cmd{
		Name: "spu",
		Help: "show System Protection Unit memory attribution",
		Fn:   spuCmd,
	})

	Add(Cmd{
		Name:    "periph",
		Args:    2,
		Pattern: regexp.MustCompile(`^periph(?: (\d+) (secure|nonsecure))?$`),
		Syntax:  "(<id> <secure|nonsecure>)?",
		Help:    "show/change peripheral security attribution",
		Fn:      periphCmd,
	})

	Add(Cmd{
		Name:    "attr",
		Args:    1,
		Pattern: regexp.MustCompile(`^attr ([[:xdigit:]]+)$`),
		Syntax:  "<hex address>",
		Help:    "show address attribution",
		Fn:      attrCmd,
	})

	Add(Cmd{
		Name:    "tt",
		Args:    1,
		Pattern: regexp.MustCompile(`^tt ([[:xdigit:]]+)$`),
		Syntax:  "<hex address>",
		Help:    "test target (TT) address permissions",
		Fn:      ttCmd,
	})

	Add(Cmd{
		Name:    "find",
		Args:    1,
		Pattern: regexp.MustCompile(`^find ([[:word:]]+)$`),
		Syntax:  "<name>",
		Help:    "find cross-domain function",
		Fn:      findCmd,
	})

	Add(Cmd{
		Name: "fault",
		Help: "show fault status registers",
		Fn:   faultCmd,
	})
}

func parseAddress(s string) (uint32, error) {
	addr, err := strconv.ParseUint(s, 16, 32)

	if err != nil {
		return 0, fmt.Errorf("invalid address, %v", err)
	}

	return uint32(addr), nil
}

func nordicSPU(p *Platform) (*spu.SPU, error) {
	hw := tz.NewNordicSPU(p.Config.Target, p.Bus)

	if hw == nil {
		return nil, fmt.Errorf("no SPU on %s", p.Config.Target.Name)
	}

	return hw, nil
}

func secure(secure bool) string {
	if secure {
		return "secure"
	}

	return "nonsecure"
}

func sauCmd(_ *term.Terminal, _ []string) (res string, err error) {
	var buf bytes.Buffer

	p, err := current()

	if err != nil {
		return
	}

	s := &sau.SAU{Base: sau.BASE, Bus: p.Bus}

	fmt.Fprintf(&buf, "SAU enabled:%v allns:%v regions:%d\n", s.Enabled(), s.AllNonSecure(), s.Regions())

	buf.WriteString("| n | start      | end        | nsc   | enabled |\n")
	buf.WriteString("|---|------------|------------|-------|---------|\n")

	for n := 0; n < s.Regions(); n++ {
		r, err := s.Region(n)

		if err != nil {
			return "", err
		}

		fmt.Fprintf(&buf, "| %d | %#.8x | %#.8x | %-5v | %-7v |\n", n, r.Start, r.End, r.NSC, r.Enabled)
	}

	return buf.String(), nil
}

func spuCmd(_ *term.Terminal, _ []string) (res string, err error) {
	var buf bytes.Buffer

	p, err := current()

	if err != nil {
		return
	}

	hw, err := nordicSPU(p)

	if err != nil {
		return
	}

	t := p.Config.Target

	fmt.Fprintf(&buf, "SPU trustzone:%v\n", hw.TrustZone())

	for n := 0; n < hw.FlashRegions; n++ {
		start := t.FlashBase + uint32(n)*t.FlashRegionSize
		fmt.Fprintf(&buf, "FLASH%.2d %#.8x-%#.8x %s\n", n, start, start+t.FlashRegionSize, secure(hw.FlashRegionSecure(n)))
	}

	for n := 0; n < hw.RAMRegions; n++ {
		start := t.RAMBase + uint32(n)*t.RAMRegionSize
		fmt.Fprintf(&buf, "RAM%.2d   %#.8x-%#.8x %s\n", n, start, start+t.RAMRegionSize, secure(hw.RAMRegionSecure(n)))
	}

	if region, size := hw.FlashNSC(0); size != 0 {
		fmt.Fprintf(&buf, "NSC     FLASH%.2d %d bytes\n", region, size)
	}

	ram, flash, periph := hw.Events()
	fmt.Fprintf(&buf, "access errors ram:%v flash:%v periph:%v", ram, flash, periph)

	return buf.String(), nil
}

func periphCmd(_ *term.Terminal, arg []string) (res string, err error) {
	var buf bytes.Buffer

	p, err := current()

	if err != nil {
		return
	}

	hw, err := nordicSPU(p)

	if err != nil {
		return
	}

	if arg[0] == "" {
		for id := 0; id < hw.Peripherals; id++ {
			if present, sec := hw.Peripheral(id); present {
				fmt.Fprintf(&buf, "PERIPH%.2d %#.8x %s\n", id, p.Config.Target.Peripheral(id).Start, secure(sec))
			}
		}

		return buf.String(), nil
	}

	id, err := strconv.ParseUint(arg[0], 10, 8)

	if err != nil {
		return "", fmt.Errorf("invalid peripheral index, %v", err)
	}

	return "", hw.SetPeripheral(int(id), arg[1] == "secure")
}

func attrCmd(_ *term.Terminal, arg []string) (res string, err error) {
	p, err := current()

	if err != nil {
		return
	}

	addr, err := parseAddress(arg[0])

	if err != nil {
		return
	}

	return fmt.Sprintf("%#.8x %s", addr, p.Controller.Attribute(addr)), nil
}

func ttCmd(_ *term.Terminal, arg []string) (res string, err error) {
	p, err := current()

	if err != nil {
		return
	}

	if p.TestTarget == nil {
		return "", errors.New("TT is not available")
	}

	addr, err := parseAddress(arg[0])

	if err != nil {
		return
	}

	return fmt.Sprintf("%#.8x %s", addr, armv8m.DecodeTT(p.TestTarget(addr))), nil
}

func findCmd(_ *term.Terminal, arg []string) (res string, err error) {
	var buf bytes.Buffer

	p, err := current()

	if err != nil {
		return
	}

	hash := veneer.Hash(arg[0])

	for _, d := range p.Domains {
		if fn, ok := d.Find(hash); ok {
			fmt.Fprintf(&buf, "%-9s %s hash:%#.8x fn:%#.8x\n", d, arg[0], hash, fn)
		} else {
			fmt.Fprintf(&buf, "%-9s %s hash:%#.8x not found\n", d, arg[0], hash)
		}
	}

	return buf.String(), nil
}

func faultCmd(_ *term.Terminal, _ []string) (res string, err error) {
	p, err := current()

	if err != nil {
		return
	}

	return tz.ReadFault(p.Bus).String(), nil
}
