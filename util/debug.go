// Copyright 2022 The Armored Witness OS authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"bytes"
	"debug/dwarf"
	"debug/elf"
	"debug/gosym"
	"errors"
	"fmt"
)

// LookupSym returns the ELF symbol matching name.
func LookupSym(buf []byte, name string) (*elf.Symbol, error) {
	exe, err := elf.NewFile(bytes.NewReader(buf))

	if err != nil {
		return nil, err
	}

	syms, err := exe.Symbols()

	if err != nil {
		return nil, err
	}

	for _, sym := range syms {
		if sym.Name == name {
			return &sym, nil
		}
	}

	return nil, fmt.Errorf("symbol %s not found", name)
}

// LookupAddr returns the function symbol, and offset, containing addr.
func LookupAddr(buf []byte, addr uint64) (string, error) {
	exe, err := elf.NewFile(bytes.NewReader(buf))

	if err != nil {
		return "", err
	}

	syms, err := exe.Symbols()

	if err != nil {
		return "", err
	}

	for _, sym := range syms {
		if elf.ST_TYPE(sym.Info) != elf.STT_FUNC {
			continue
		}

		// clear the Thumb bit
		start := sym.Value &^ 1

		if addr >= start && addr < start+sym.Size {
			return fmt.Sprintf("%s+%#x", sym.Name, addr-start), nil
		}
	}

	return "", fmt.Errorf("no function at %#x", addr)
}

// ReadVirtual returns size bytes of section data located at a virtual
// address, size is truncated at the end of the section.
func ReadVirtual(buf []byte, addr uint64, size uint64) ([]byte, error) {
	exe, err := elf.NewFile(bytes.NewReader(buf))

	if err != nil {
		return nil, err
	}

	for _, s := range exe.Sections {
		if s.Flags&elf.SHF_ALLOC == 0 || s.Type == elf.SHT_NOBITS || addr < s.Addr || addr >= s.Addr+s.Size {
			continue
		}

		data, err := s.Data()

		if err != nil {
			return nil, err
		}

		off := addr - s.Addr

		if off+size > uint64(len(data)) {
			size = uint64(len(data)) - off
		}

		return data[off : off+size], nil
	}

	return nil, fmt.Errorf("no section data at %#x", addr)
}

func goSymTable(buf []byte) (symTable *gosym.Table, err error) {
	exe, err := elf.NewFile(bytes.NewReader(buf))

	if err != nil {
		return
	}

	text := exe.Section(".text")
	pclntab := exe.Section(".gopclntab")

	if text == nil || pclntab == nil {
		return nil, errors.New("missing Go line table")
	}

	lineTableData, err := pclntab.Data()

	if err != nil {
		return
	}

	lineTable := gosym.NewLineTable(lineTableData, text.Addr)

	var symTableData []byte

	if symtab := exe.Section(".gosymtab"); symtab != nil {
		if symTableData, err = symtab.Data(); err != nil {
			return
		}
	}

	return gosym.NewTable(symTableData, lineTable)
}

func dwarfLine(buf []byte, pc uint64) (s string, err error) {
	exe, err := elf.NewFile(bytes.NewReader(buf))

	if err != nil {
		return
	}

	d, err := exe.DWARF()

	if err != nil {
		return
	}

	r := d.Reader()

	for {
		cu, err := r.Next()

		if err != nil {
			return "", err
		}

		if cu == nil {
			break
		}

		if cu.Tag != dwarf.TagCompileUnit {
			r.SkipChildren()
			continue
		}

		lr, err := d.LineReader(cu)
		r.SkipChildren()

		if err != nil || lr == nil {
			continue
		}

		var entry dwarf.LineEntry

		if err = lr.SeekPC(pc, &entry); err == nil {
			return fmt.Sprintf("%s:%d", entry.File.Name, entry.Line), nil
		}
	}

	return "", fmt.Errorf("no line information for %#x", pc)
}

// PCToLine resolves a program counter to its source file and line, through
// the Go line table or, for TinyGo images, the DWARF line program.
func PCToLine(buf []byte, pc uint64) (s string, err error) {
	symTable, err := goSymTable(buf)

	if err != nil {
		return dwarfLine(buf, pc)
	}

	file, line, fn := symTable.PCToLine(pc)

	if fn == nil {
		return dwarfLine(buf, pc)
	}

	return fmt.Sprintf("%s:%d", file, line), nil
}
