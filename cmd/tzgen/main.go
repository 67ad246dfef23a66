// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// tzgen generates the cross-domain bindings of a TrustZone firmware.
//
// It reads the trustzone.yaml manifest, collects the functions marked
// //tz:nonsecure_callable and //tz:secure_callable from the Secure and
// Non-secure source trees and writes, for each image, a bindings package
// holding the typed wrappers of its peer functions and the vector table of
// its own ones. The Secure bindings also hold the partition configuration.
package main

import (
	"flag"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/usbarmory/GoTEE-m/bindgen"
	"github.com/usbarmory/GoTEE-m/manifest"
	"github.com/usbarmory/GoTEE-m/mem"
)

var (
	manifestPath = flag.String("manifest", manifest.DefaultName, "Path to the TrustZone firmware manifest.")
	dryRun       = flag.Bool("dry_run", false, "Check the exports without writing any file.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if err := run(); err != nil {
		klog.Exitf("tzgen failed: %v", err)
	}
}

func run() error {
	m, err := manifest.Load(*manifestPath)

	if err != nil {
		return err
	}

	cfg, err := m.Config()

	if err != nil {
		return err
	}

	secureDir := m.Path(m.Secure.Root)
	nonsecureDir := m.Path(m.NonSecure.Root)

	exports, err := bindgen.Collect(secureDir, nonsecureDir, m.Path(m.Secure.Bindings), m.Path(m.NonSecure.Bindings))

	if err != nil {
		return err
	}

	for _, e := range exports {
		klog.V(1).Infof("%s %s hash %#08x", e.Direction, e, e.Hash)
	}

	klog.Infof("collected %d exports from %s and %s", len(exports), secureDir, nonsecureDir)

	for _, world := range []struct {
		dir string
		gen *bindgen.Generator
	}{
		{
			dir: m.Path(m.Secure.Bindings),
			gen: &bindgen.Generator{Domain: mem.Secure, Partition: cfg},
		}, {
			dir: m.Path(m.NonSecure.Bindings),
			gen: &bindgen.Generator{Domain: mem.NonSecure},
		},
	} {
		world.gen.Package = filepath.Base(world.dir)

		files, err := world.gen.Generate(exports)

		if err != nil {
			return err
		}

		if *dryRun {
			continue
		}

		if err = bindgen.Write(world.dir, files); err != nil {
			return err
		}

		for _, f := range files {
			klog.Infof("wrote %s", filepath.Join(world.dir, f.Name))
		}
	}

	return nil
}
