// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/term"
)

const maxBufferSize = 102400

func init() {
	Add(Cmd{
		Name:    "peek",
		Args:    2,
		Pattern: regexp.MustCompile(`^peek ([[:xdigit:]]+) (\d+)$`),
		Syntax:  "<hex offset> <size>",
		Help:    "memory display (use with caution)",
		Fn:      memReadCmd,
	})

	Add(Cmd{
		Name:    "poke",
		Args:    2,
		Pattern: regexp.MustCompile(`^poke ([[:xdigit:]]+) ([[:xdigit:]]+)$`),
		Syntax:  "<hex offset> <hex value>",
		Help:    "memory write   (use with caution)",
		Fn:      memWriteCmd,
	})
}

func memReadCmd(_ *term.Terminal, arg []string) (res string, err error) {
	p, err := current()

	if err != nil {
		return
	}

	addr, err := strconv.ParseUint(arg[0], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid address, %v", err)
	}

	size, err := strconv.ParseUint(arg[1], 10, 32)

	if err != nil {
		return "", fmt.Errorf("invalid size, %v", err)
	}

	if (addr%4) != 0 || (size%4) != 0 {
		return "", fmt.Errorf("only 32-bit aligned accesses are supported")
	}

	if size > maxBufferSize {
		return "", fmt.Errorf("size argument must be <= %d", maxBufferSize)
	}

	if addr+size > 1<<32 {
		return "", fmt.Errorf("range exceeds the address space")
	}

	buf := make([]byte, size)

	for off := uint64(0); off < size; off += 4 {
		binary.LittleEndian.PutUint32(buf[off:], p.Bus.Read(uint32(addr+off)))
	}

	return hex.Dump(buf), nil
}

func memWriteCmd(_ *term.Terminal, arg []string) (res string, err error) {
	p, err := current()

	if err != nil {
		return
	}

	addr, err := strconv.ParseUint(arg[0], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid address, %v", err)
	}

	val, err := strconv.ParseUint(arg[1], 16, 32)

	if err != nil {
		return "", fmt.Errorf("invalid data, %v", err)
	}

	if addr%4 != 0 {
		return "", fmt.Errorf("only 32-bit aligned accesses are supported")
	}

	p.Bus.Write(uint32(addr), uint32(val))

	return
}
