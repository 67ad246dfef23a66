// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package veneer implements the cross-domain function lookup protocol.
//
// Each TrustZone domain links a vector table of 8 byte records, made of a
// function (or gateway veneer) pointer followed by the CRC-32/CKSUM of the
// function name, both 32-bit little endian. An all-zero record terminates
// the table.
//
// The peer domain locates a function by scanning the table for its name
// hash, so that the Secure and Non-secure images can be linked
// independently.
package veneer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// EntrySize is the size of a vector table record.
const EntrySize = 8

// ErrTable is returned for malformed vector tables.
var ErrTable = errors.New("invalid vector table")

// Entry represents a vector table record.
type Entry struct {
	Pointer uint32
	Hash    uint32
}

// IsSentinel reports whether the entry terminates a table.
func (e Entry) IsSentinel() bool {
	return e.Pointer == 0 && e.Hash == 0
}

func (e Entry) String() string {
	return fmt.Sprintf("%#08x %#08x", e.Pointer, e.Hash)
}

// Table represents a vector table, the sentinel record is implied.
type Table []Entry

// MarshalBinary encodes the table in its wire format, sentinel included.
func (t Table) MarshalBinary() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, (len(t)+1)*EntrySize)

	for _, e := range t {
		buf = binary.LittleEndian.AppendUint32(buf, e.Pointer)
		buf = binary.LittleEndian.AppendUint32(buf, e.Hash)
	}

	return append(buf, make([]byte, EntrySize)...), nil
}

// Decode parses a vector table from its wire format, buf must contain the
// sentinel record. Any trailing data following the sentinel is ignored.
func Decode(buf []byte) (t Table, err error) {
	for off := 0; off+EntrySize <= len(buf); off += EntrySize {
		e := Entry{
			Pointer: binary.LittleEndian.Uint32(buf[off:]),
			Hash:    binary.LittleEndian.Uint32(buf[off+4:]),
		}

		if e.IsSentinel() {
			return
		}

		t = append(t, e)
	}

	return nil, fmt.Errorf("%w, missing sentinel after %d entries", ErrTable, len(t))
}

// Validate checks that the table can be scanned unambiguously.
func (t Table) Validate() error {
	seen := make(map[uint32]int, len(t))

	for i, e := range t {
		if e.IsSentinel() {
			return fmt.Errorf("%w, entry %d is a sentinel", ErrTable, i)
		}

		if e.Hash == 0 {
			return fmt.Errorf("%w, entry %d has a null hash", ErrTable, i)
		}

		if j, ok := seen[e.Hash]; ok {
			return fmt.Errorf("%w, entries %d and %d share hash %#08x", ErrTable, j, i, e.Hash)
		}

		seen[e.Hash] = i
	}

	return nil
}

// Lookup returns the pointer associated to hash.
func (t Table) Lookup(hash uint32) (ptr uint32, ok bool) {
	for _, e := range t {
		if e.Hash == hash {
			return e.Pointer, true
		}
	}

	return
}
