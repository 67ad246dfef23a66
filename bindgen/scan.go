// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package bindgen implements the build time processing of cross-domain
// export markers.
//
// Functions tagged with a //tz:nonsecure_callable or //tz:secure_callable
// directive, along with their //export symbol, are collected from the
// source tree of each image. For each image a bindings package is then
// generated, holding the typed wrappers which call the peer image
// functions and the assembly vector table of its own exported functions.
package bindgen

import (
	"errors"
	"fmt"
	"go/build/constraint"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
)

var (
	// ErrParse is returned for source trees which cannot be processed.
	ErrParse = errors.New("cannot parse source")
	// ErrSignature is returned for exported functions which cannot be
	// called across domains.
	ErrSignature = errors.New("unsupported export")
	// ErrDuplicate is returned when an exported name or its wrapper is
	// declared more than once.
	ErrDuplicate = errors.New("duplicate export")
	// ErrCollision is returned when distinct exported names share the
	// same hash.
	ErrCollision = errors.New("export hash collision")
)

// Scanner collects exported functions from a package and from all packages
// of the same module it imports.
type Scanner struct {
	// Exclude lists directories which are not scanned, such as the
	// generated bindings packages.
	Exclude []string

	fset    *token.FileSet
	module  string
	root    string
	visited map[string]bool
	exports []*Export
}

// Scan collects exported functions starting from the package in dir.
func Scan(dir string) ([]*Export, error) {
	return (&Scanner{}).Scan(dir)
}

// findModule returns the root directory and path of the module enclosing
// dir.
func findModule(dir string) (root string, path string, err error) {
	for root = dir; ; {
		buf, err := os.ReadFile(filepath.Join(root, "go.mod"))

		if err == nil {
			if path = modfile.ModulePath(buf); path == "" {
				return "", "", fmt.Errorf("%w, %s/go.mod: missing module path", ErrParse, root)
			}

			return root, path, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", "", err
		}

		parent := filepath.Dir(root)

		if parent == root {
			return "", "", fmt.Errorf("%w, no go.mod found for %s", ErrParse, dir)
		}

		root = parent
	}
}

// Scan collects exported functions starting from the package in dir, the
// enclosing module is located through its go.mod file.
func (s *Scanner) Scan(dir string) (exports []*Export, err error) {
	if dir, err = filepath.Abs(dir); err != nil {
		return
	}

	if s.root, s.module, err = findModule(dir); err != nil {
		return
	}

	s.fset = token.NewFileSet()
	s.visited = make(map[string]bool)
	s.exports = nil

	for _, ex := range s.Exclude {
		if ex, err = filepath.Abs(ex); err != nil {
			return
		}

		s.visited[ex] = true
	}

	if err = s.visit(dir); err != nil {
		return
	}

	return s.exports, nil
}

// selected reports whether a file is part of a firmware build, files
// constrained to other build tags than ignore are assumed to match.
func selected(src []byte) bool {
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "package ") {
			break
		}

		if !constraint.IsGoBuild(line) {
			continue
		}

		expr, err := constraint.Parse(line)

		if err != nil {
			return true
		}

		return expr.Eval(func(tag string) bool {
			return tag != "ignore"
		})
	}

	return true
}

func (s *Scanner) importDir(path string) (dir string, ok bool) {
	switch {
	case path == s.module:
		return s.root, true
	case strings.HasPrefix(path, s.module+"/"):
		return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, s.module+"/"))), true
	}

	return
}

func (s *Scanner) pkgPath(dir string) string {
	rel, err := filepath.Rel(s.root, dir)

	if err != nil || rel == "." {
		return s.module
	}

	return s.module + "/" + filepath.ToSlash(rel)
}

func (s *Scanner) visit(dir string) (err error) {
	var imports []string

	if s.visited[dir] {
		return
	}

	s.visited[dir] = true

	entries, err := os.ReadDir(dir)

	if err != nil {
		return fmt.Errorf("%w, %v", ErrParse, err)
	}

	pkg := s.pkgPath(dir)

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)

		if err != nil {
			return fmt.Errorf("%w, %v", ErrParse, err)
		}

		if !selected(src) {
			continue
		}

		f, err := parser.ParseFile(s.fset, path, src, parser.ParseComments)

		if err != nil {
			return fmt.Errorf("%w, %v", ErrParse, err)
		}

		exports, err := fileExports(s.fset, pkg, f)

		if err != nil {
			return err
		}

		s.exports = append(s.exports, exports...)

		for _, spec := range f.Imports {
			path, err := strconv.Unquote(spec.Path.Value)

			if err != nil {
				return fmt.Errorf("%w, %v", ErrParse, err)
			}

			imports = append(imports, path)
		}
	}

	for _, path := range imports {
		dir, ok := s.importDir(path)

		if !ok || s.visited[dir] {
			continue
		}

		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w, unresolved import %q", ErrParse, path)
		}

		if err = s.visit(dir); err != nil {
			return
		}
	}

	return
}
