// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usbarmory/GoTEE-m/bindgen"
	"github.com/usbarmory/GoTEE-m/manifest"
	"github.com/usbarmory/GoTEE-m/mem"
)

const testManifest = `
target: nrf9160
regions:
  - {name: veneers, start: 0x0003f000, end: 0x00040000, domain: nonsecure-callable}
  - {name: nonsecure flash, start: 0x00040000, end: 0x00100000, domain: nonsecure}
  - {name: nonsecure ram, start: 0x20020000, end: 0x20040000, domain: nonsecure}
secure:
  root: %[1]s/secure
  bindings: %[1]s/secure/bindings
nonsecure:
  root: %[1]s/nonsecure
  bindings: %[1]s/nonsecure/bindings
`

func setFlags(t *testing.T, path string, dry bool) {
	t.Helper()

	prevPath, prevDry := *manifestPath, *dryRun
	*manifestPath, *dryRun = path, dry

	t.Cleanup(func() {
		*manifestPath, *dryRun = prevPath, prevDry
	})
}

func TestRun(t *testing.T) {
	example, err := filepath.Abs(filepath.Join("..", "..", "bindgen", "testdata", "example"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trustzone.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(testManifest, example)), 0644))

	setFlags(t, path, true)
	require.NoError(t, run())

	_, err = os.Stat(filepath.Join(example, "secure", "bindings"))
	require.True(t, os.IsNotExist(err), "dry run wrote the bindings")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	setFlags(t, filepath.Join(dir, "missing.yaml"), true)
	require.Error(t, run())

	path := filepath.Join(dir, "trustzone.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(testManifest, dir)), 0644))

	setFlags(t, path, true)
	require.Error(t, run(), "source trees outside of a module")
}

// TestCheckedInBindings verifies that the example images bindings are up
// to date with their sources and with trustzone.yaml.
func TestCheckedInBindings(t *testing.T) {
	m, err := manifest.Load(filepath.Join("..", "..", manifest.DefaultName))
	require.NoError(t, err)

	cfg, err := m.Config()
	require.NoError(t, err)

	exports, err := bindgen.Collect(m.Path(m.Secure.Root), m.Path(m.NonSecure.Root), m.Path(m.Secure.Bindings), m.Path(m.NonSecure.Bindings))
	require.NoError(t, err)
	require.Len(t, exports, 6)

	for _, world := range []struct {
		dir string
		gen *bindgen.Generator
	}{
		{m.Path(m.Secure.Bindings), &bindgen.Generator{Domain: mem.Secure, Package: "bindings", Partition: cfg}},
		{m.Path(m.NonSecure.Bindings), &bindgen.Generator{Domain: mem.NonSecure, Package: "bindings"}},
	} {
		files, err := world.gen.Generate(exports)
		require.NoError(t, err)

		for _, f := range files {
			buf, err := os.ReadFile(filepath.Join(world.dir, f.Name))
			require.NoError(t, err)

			if strings.HasSuffix(f.Name, ".go") {
				buf, err = format.Source(buf)
				require.NoError(t, err)
			}

			require.Equal(t, string(f.Data), string(buf), "%s is out of date, run tzgen", filepath.Join(world.dir, f.Name))
		}
	}
}
