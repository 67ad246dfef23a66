// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// tzdump inspects the cross-domain vector tables of a TrustZone firmware
// image.
//
// The _nsc_vectors (Secure) and _ns_vectors (Non-secure) tables are
// decoded and validated, rows are named after the exports found in the
// source trees of the trustzone.yaml manifest when available. With -pc the
// function containing a program counter, such as a faulting address, is
// also reported.
package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"k8s.io/klog/v2"

	"github.com/usbarmory/GoTEE-m/bindgen"
	"github.com/usbarmory/GoTEE-m/manifest"
	"github.com/usbarmory/GoTEE-m/util"
	"github.com/usbarmory/GoTEE-m/veneer"
)

// maximum scanned table size
const maxTableSize = 4096

var (
	manifestPath = flag.String("manifest", "", "Path to the TrustZone firmware manifest, used to name table entries.")
	pc           = flag.String("pc", "", "Resolve this hex program counter to its function.")
)

var tables = []string{"_nsc_vectors", "_ns_vectors"}

func main() {
	klog.InitFlags(nil)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <image.elf>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	buf, err := os.ReadFile(flag.Arg(0))

	if err != nil {
		klog.Exitf("tzdump failed: %v", err)
	}

	names, err := exportNames(*manifestPath)

	if err != nil {
		klog.Exitf("tzdump failed: %v", err)
	}

	if err = dump(os.Stdout, buf, names); err != nil {
		klog.Exitf("tzdump failed: %v", err)
	}

	if *pc == "" {
		return
	}

	addr, err := strconv.ParseUint(*pc, 16, 32)

	if err != nil {
		klog.Exitf("invalid pc, %v", err)
	}

	fmt.Println(resolve(buf, addr))
}

// exportNames returns the names of all exports declared by the manifest
// source trees, indexed by hash.
func exportNames(path string) (names map[uint32]string, err error) {
	names = make(map[uint32]string)

	if path == "" {
		return
	}

	m, err := manifest.Load(path)

	if err != nil {
		return
	}

	exports, err := bindgen.Collect(m.Path(m.Secure.Root), m.Path(m.NonSecure.Root), m.Path(m.Secure.Bindings), m.Path(m.NonSecure.Bindings))

	if err != nil {
		return
	}

	for _, e := range exports {
		names[e.Hash] = e.Name
	}

	return
}

func dump(w io.Writer, buf []byte, names map[uint32]string) (err error) {
	var found bool

	for _, name := range tables {
		sym, err := util.LookupSym(buf, name)

		if err != nil {
			klog.V(1).Infof("skipping %s, %v", name, err)
			continue
		}

		found = true

		data, err := util.ReadVirtual(buf, sym.Value, maxTableSize)

		if err != nil {
			return fmt.Errorf("could not read %s, %v", name, err)
		}

		table, err := veneer.Decode(data)

		if err != nil {
			return fmt.Errorf("%s, %w", name, err)
		}

		fmt.Fprintf(w, "%s at %#.8x, %d entries\n", name, sym.Value, len(table))

		if err = table.Validate(); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}

		t := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
		fmt.Fprintf(t, "pointer\thash\tname\n")

		for _, e := range table {
			n, ok := names[e.Hash]

			if !ok {
				n = "?"
			}

			fmt.Fprintf(t, "%#.8x\t%#.8x\t%s\n", e.Pointer, e.Hash, n)
		}

		if err = t.Flush(); err != nil {
			return err
		}
	}

	if sym, err := util.LookupSym(buf, "_ns_entry"); err == nil {
		if data, err := util.ReadVirtual(buf, sym.Value, 4); err == nil && len(data) == 4 {
			fmt.Fprintf(w, "_ns_entry at %#.8x, bootstrap %#.8x\n", sym.Value, binary.LittleEndian.Uint32(data))
		}
	}

	if !found {
		return errors.New("no vector table found, is this a TrustZone image?")
	}

	return
}

// resolve names the function containing addr, Go line tables are tried
// first.
func resolve(buf []byte, addr uint64) string {
	if line, err := util.PCToLine(buf, addr); err == nil {
		return fmt.Sprintf("%#.8x %s", addr, line)
	}

	name, err := util.LookupAddr(buf, addr)

	if err != nil {
		return fmt.Sprintf("%#.8x %v", addr, err)
	}

	return fmt.Sprintf("%#.8x %s", addr, name)
}
