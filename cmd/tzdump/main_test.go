// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbarmory/GoTEE-m/internal/elfimage"
	"github.com/usbarmory/GoTEE-m/manifest"
	"github.com/usbarmory/GoTEE-m/veneer"
)

func secureImage(t *testing.T, table veneer.Table) []byte {
	t.Helper()

	data, err := table.MarshalBinary()
	require.NoError(t, err)

	img := &elfimage.Image{
		Section: ".rodata",
		Addr:    0x00001000,
		Data:    data,
		Symbols: []elfimage.Symbol{
			{Name: "_nsc_vectors", Value: 0x00001000, Size: uint32(len(data))},
			{Name: "api.Return5", Value: 0x00001001, Size: 8, Func: true},
		},
	}

	return img.Bytes()
}

func TestDump(t *testing.T) {
	var out bytes.Buffer

	buf := secureImage(t, veneer.Table{
		{Pointer: 0x0003f009, Hash: veneer.Hash("return_5")},
		{Pointer: 0x0003f011, Hash: veneer.Hash("double")},
	})

	names := map[uint32]string{
		veneer.Hash("return_5"): "return_5",
	}

	require.NoError(t, dump(&out, buf, names))

	assert.Equal(t, "_nsc_vectors at 0x00001000, 2 entries\n"+
		"pointer    hash       name\n"+
		"0x0003f009 0xbb8a65f0 return_5\n"+
		"0x0003f011 0xa32d2e61 ?\n", out.String())
}

func TestDumpNonSecure(t *testing.T) {
	var out bytes.Buffer

	table, err := veneer.Table{{Pointer: 0x00040411, Hash: veneer.Hash("read_thing")}}.MarshalBinary()
	require.NoError(t, err)

	data := append([]byte{0x09, 0x04, 0x04, 0x00}, make([]byte, 4)...)
	data = append(data, table...)

	img := &elfimage.Image{
		Section: ".text",
		Addr:    0x00040000,
		Data:    data,
		Symbols: []elfimage.Symbol{
			{Name: "_ns_entry", Value: 0x00040000},
			{Name: "_ns_vectors", Value: 0x00040008},
		},
	}

	require.NoError(t, dump(&out, img.Bytes(), nil))

	assert.Contains(t, out.String(), "_ns_vectors at 0x00040008, 1 entries\n")
	assert.Contains(t, out.String(), "0x00040411 0xeab2c8e5 ?\n")
	assert.Contains(t, out.String(), "_ns_entry at 0x00040000, bootstrap 0x00040409\n")
}

func TestDumpErrors(t *testing.T) {
	img := &elfimage.Image{
		Section: ".text",
		Addr:    0x1000,
		Data:    make([]byte, 8),
	}

	assert.Error(t, dump(&bytes.Buffer{}, img.Bytes(), nil), "no tables")

	// no sentinel within the section
	img.Data = []byte{1, 0, 0, 0, 2, 0, 0, 0}
	img.Symbols = []elfimage.Symbol{{Name: "_nsc_vectors", Value: 0x1000}}

	assert.ErrorIs(t, dump(&bytes.Buffer{}, img.Bytes(), nil), veneer.ErrTable)
}

func TestResolve(t *testing.T) {
	buf := secureImage(t, nil)

	assert.Equal(t, "0x00001004 api.Return5+0x4", resolve(buf, 0x1004))
	assert.Contains(t, resolve(buf, 0x2000), "no function")
}

func TestExportNames(t *testing.T) {
	names, err := exportNames("")
	require.NoError(t, err)
	assert.Empty(t, names)

	names, err = exportNames(filepath.Join("..", "..", manifest.DefaultName))
	require.NoError(t, err)

	assert.Equal(t, "write_private_thing", names[0xa8d209b4])
	assert.Equal(t, "return_5", names[0xbb8a65f0])
	assert.Len(t, names, 6)
}
