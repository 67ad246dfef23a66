// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package elfimage builds minimal little endian ELF32 Arm images, holding a
// single data section and its symbols, for testing image inspection tools.
package elfimage

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

const (
	ehdrSize = 52
	shdrSize = 40
	symSize  = 16
)

// Symbol represents an image symbol.
type Symbol struct {
	Name  string
	Value uint32
	Size  uint32
	Func  bool
}

// Image represents an image with a single section.
type Image struct {
	// Section is the section name
	Section string
	// Addr is the section virtual address
	Addr uint32
	// Data is the section contents
	Data []byte

	Symbols []Symbol
}

type strtab struct {
	bytes.Buffer
}

func (s *strtab) add(name string) uint32 {
	if s.Len() == 0 {
		s.WriteByte(0)
	}

	off := uint32(s.Len())
	s.WriteString(name)
	s.WriteByte(0)

	return off
}

func pad(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

// Bytes returns the encoded image.
func (img *Image) Bytes() []byte {
	var buf bytes.Buffer
	var names, strs strtab
	var syms bytes.Buffer

	le := binary.LittleEndian

	// null symbol
	syms.Write(make([]byte, symSize))
	strs.add("")

	for _, s := range img.Symbols {
		typ := elf.STT_OBJECT

		if s.Func {
			typ = elf.STT_FUNC
		}

		_ = binary.Write(&syms, le, elf.Sym32{
			Name:  strs.add(s.Name),
			Value: s.Value,
			Size:  s.Size,
			Info:  elf.ST_INFO(elf.STB_GLOBAL, typ),
			Shndx: 1,
		})
	}

	type section struct {
		name  string
		typ   elf.SectionType
		flags elf.SectionFlag
		addr  uint32
		data  []byte
		link  uint32
		info  uint32
		ent   uint32
	}

	sections := []section{
		{},
		{name: img.Section, typ: elf.SHT_PROGBITS, flags: elf.SHF_ALLOC | elf.SHF_WRITE, addr: img.Addr, data: img.Data},
		{name: ".symtab", typ: elf.SHT_SYMTAB, data: syms.Bytes(), link: 3, info: 1, ent: symSize},
		{name: ".strtab", typ: elf.SHT_STRTAB, data: strs.Bytes()},
		{name: ".shstrtab", typ: elf.SHT_STRTAB},
	}

	nameOff := make([]uint32, len(sections))
	names.add("")

	for i := 1; i < len(sections); i++ {
		nameOff[i] = names.add(sections[i].name)
	}

	sections[4].data = names.Bytes()

	// section data follows the ELF header, section headers come last
	buf.Write(make([]byte, ehdrSize))
	offsets := make([]uint32, len(sections))

	for i := 1; i < len(sections); i++ {
		pad(&buf)
		offsets[i] = uint32(buf.Len())
		buf.Write(sections[i].data)
	}

	pad(&buf)
	shoff := uint32(buf.Len())

	for i, s := range sections {
		_ = binary.Write(&buf, le, elf.Section32{
			Name:      nameOff[i],
			Type:      uint32(s.typ),
			Flags:     uint32(s.flags),
			Addr:      s.addr,
			Off:       offsets[i],
			Size:      uint32(len(s.data)),
			Link:      s.link,
			Info:      s.info,
			Addralign: 4,
			Entsize:   s.ent,
		})
	}

	out := buf.Bytes()

	ident := [elf.EI_NIDENT]byte{0x7f, 'E', 'L', 'F', byte(elf.ELFCLASS32), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)}

	var hdr bytes.Buffer

	_ = binary.Write(&hdr, le, elf.Header32{
		Ident:     ident,
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_ARM),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     shoff,
		Ehsize:    ehdrSize,
		Shentsize: shdrSize,
		Shnum:     uint16(len(sections)),
		Shstrndx:  4,
	})

	copy(out, hdr.Bytes())

	return out
}
