// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bindgen

import (
	"fmt"

	"github.com/usbarmory/GoTEE-m/mem"
)

// reserved lists the symbols defined by the gateway and by generated
// assembly, exports named after them would clash at link time.
var reserved = map[string]bool{
	"tz_find_nsc_vector": true,
	"tz_ns_bootstrap":    true,
	"tz_searcher":        true,
	"tz_secure_call":     true,
	"tz_nonsecure_call":  true,
}

// Check verifies that every exported name, and every generated wrapper
// identifier, is unique and that distinct names do not share a hash.
// Conflicts are never resolved automatically.
func Check(exports []*Export) error {
	names := make(map[string]*Export)
	hashes := make(map[uint32]*Export)
	wrappers := make(map[Direction]map[string]*Export)

	for _, e := range exports {
		if reserved[e.Name] {
			return fmt.Errorf("%w, %s uses a reserved gateway symbol", ErrDuplicate, e)
		}

		// a null hash terminates vector tables
		if e.Hash == 0 {
			return fmt.Errorf("%w, %s hashes to the table sentinel, rename it", ErrCollision, e)
		}

		if prev, ok := names[e.Name]; ok {
			return fmt.Errorf("%w, %q exported by %s and %s", ErrDuplicate, e.Name, prev, e)
		}

		names[e.Name] = e

		if prev, ok := hashes[e.Hash]; ok {
			return fmt.Errorf("%w, %s and %s share hash %#08x, rename one of them", ErrCollision, prev, e, e.Hash)
		}

		hashes[e.Hash] = e

		if wrappers[e.Direction] == nil {
			wrappers[e.Direction] = make(map[string]*Export)
		}

		if prev, ok := wrappers[e.Direction][e.Func]; ok {
			return fmt.Errorf("%w, %s and %s bind to the same wrapper %s", ErrDuplicate, prev, e, e.Func)
		}

		wrappers[e.Direction][e.Func] = e
	}

	return nil
}

// Collect scans the Secure and Non-secure image source trees, checking
// that each image only exports functions in its own domain, and returns
// all exports. Directories listed in exclude are not scanned.
func Collect(secureDir string, nonsecureDir string, exclude ...string) (exports []*Export, err error) {
	for _, world := range []struct {
		dir    string
		domain mem.Domain
	}{
		{secureDir, mem.Secure},
		{nonsecureDir, mem.NonSecure},
	} {
		s := &Scanner{Exclude: exclude}
		found, err := s.Scan(world.dir)

		if err != nil {
			return nil, err
		}

		for _, e := range found {
			if e.Direction.Callee() != world.domain {
				return nil, fmt.Errorf("%w, %s is marked %s but belongs to the %s image", ErrSignature, e, e.Direction, world.domain)
			}
		}

		exports = append(exports, found...)
	}

	if err = Check(exports); err != nil {
		return nil, err
	}

	return
}
