// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bindgen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/veneer"
)

// Export markers
const (
	// NonSecureCallableMarker tags a Secure function callable from the
	// Non-secure world.
	NonSecureCallableMarker = "//tz:nonsecure_callable"
	// SecureCallableMarker tags a Non-secure function callable from the
	// Secure world.
	SecureCallableMarker = "//tz:secure_callable"

	exportDirective = "//export "
	markerPrefix    = "//tz:"
)

// Direction represents the direction of a cross-domain call.
type Direction int

const (
	// NonSecureToSecure calls are issued by the Non-secure world through
	// a Non-secure Callable gateway veneer.
	NonSecureToSecure Direction = iota
	// SecureToNonSecure calls are issued by the Secure world.
	SecureToNonSecure
)

func (d Direction) String() string {
	switch d {
	case NonSecureToSecure:
		return "nonsecure-to-secure"
	case SecureToNonSecure:
		return "secure-to-nonsecure"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Callee returns the domain implementing functions called in this
// direction.
func (d Direction) Callee() mem.Domain {
	if d == NonSecureToSecure {
		return mem.Secure
	}

	return mem.NonSecure
}

// scalar types passed in a single register
var scalars = map[string]bool{
	"bool":    true,
	"byte":    true,
	"int8":    true,
	"int16":   true,
	"int32":   true,
	"uint8":   true,
	"uint16":  true,
	"uint32":  true,
	"uintptr": true,
}

// Param represents a function parameter.
type Param struct {
	Name string
	Type string
}

// Export represents a function exported to the peer domain.
type Export struct {
	// Name is the exported symbol, identifying the function across
	// domains through its hash.
	Name string
	// Func is the Go function identifier.
	Func string
	// Package is the import path of the declaring package.
	Package string

	Params []Param
	// Result is the result type, empty when the function returns nothing.
	Result string

	Direction Direction
	Hash      uint32
	Pos       token.Position
}

func (e *Export) String() string {
	return fmt.Sprintf("%s (%s.%s at %s)", e.Name, e.Package, e.Func, e.Pos)
}

func directives(doc *ast.CommentGroup) (markers []string, symbol string) {
	if doc == nil {
		return
	}

	for _, c := range doc.List {
		switch {
		case strings.HasPrefix(c.Text, markerPrefix):
			markers = append(markers, strings.TrimSpace(c.Text))
		case strings.HasPrefix(c.Text, exportDirective):
			symbol = strings.TrimSpace(strings.TrimPrefix(c.Text, exportDirective))
		}
	}

	return
}

func typeName(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if scalars[t.Name] {
			return t.Name, nil
		}
	case *ast.Ellipsis:
		return "", fmt.Errorf("variadic parameters are not supported")
	case *ast.ArrayType:
		// composite layout in r0-r3 differs between TinyGo and AAPCS
		return "", fmt.Errorf("array %s is not supported, pass its words as scalars", types(expr))
	}

	return "", fmt.Errorf("type %s is not a register sized scalar", types(expr))
}

func types(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + types(t.X)
	case *ast.SelectorExpr:
		return types(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		if n, ok := t.Len.(*ast.BasicLit); ok {
			return "[" + n.Value + "]" + types(t.Elt)
		}

		return "[]" + types(t.Elt)
	case *ast.Ellipsis:
		return "..." + types(t.Elt)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// funcExport returns the export declared by a function, or nil when the
// function carries no export marker.
func funcExport(fset *token.FileSet, pkg string, fn *ast.FuncDecl) (e *Export, err error) {
	markers, symbol := directives(fn.Doc)

	if len(markers) == 0 {
		return
	}

	pos := fset.Position(fn.Pos())

	fail := func(sentinel error, format string, args ...interface{}) error {
		return fmt.Errorf("%s: %s: %w, %s", pos, fn.Name.Name, sentinel, fmt.Sprintf(format, args...))
	}

	e = &Export{
		Name:    symbol,
		Func:    fn.Name.Name,
		Package: pkg,
		Pos:     pos,
	}

	switch {
	case len(markers) > 1:
		return nil, fail(ErrSignature, "multiple markers %s", strings.Join(markers, " "))
	case markers[0] == NonSecureCallableMarker:
		e.Direction = NonSecureToSecure
	case markers[0] == SecureCallableMarker:
		e.Direction = SecureToNonSecure
	default:
		return nil, fail(ErrParse, "unknown marker %s", markers[0])
	}

	if symbol == "" {
		return nil, fail(ErrSignature, "missing //export directive")
	}

	if fn.Recv != nil {
		return nil, fail(ErrSignature, "methods cannot be exported")
	}

	if fn.Type.TypeParams != nil {
		return nil, fail(ErrSignature, "generic functions cannot be exported")
	}

	if !ast.IsExported(fn.Name.Name) {
		return nil, fail(ErrSignature, "Go identifier must be exported")
	}

	if fn.Body == nil {
		return nil, fail(ErrSignature, "missing function body")
	}

	for _, field := range fn.Type.Params.List {
		t, err := typeName(field.Type)

		if err != nil {
			return nil, fail(ErrSignature, "%v", err)
		}

		if len(field.Names) == 0 {
			e.Params = append(e.Params, Param{Name: fmt.Sprintf("a%d", len(e.Params)), Type: t})
			continue
		}

		for _, ident := range field.Names {
			name := ident.Name

			if name == "_" {
				name = fmt.Sprintf("a%d", len(e.Params))
			}

			e.Params = append(e.Params, Param{Name: name, Type: t})
		}
	}

	if len(e.Params) > gateway.MaxArgs {
		return nil, fail(ErrSignature, "%d parameters exceed %d", len(e.Params), gateway.MaxArgs)
	}

	if fn.Type.Results != nil {
		if n := fn.Type.Results.NumFields(); n > 1 {
			return nil, fail(ErrSignature, "%d results exceed 1", n)
		}

		if e.Result, err = typeName(fn.Type.Results.List[0].Type); err != nil {
			return nil, fail(ErrSignature, "%v", err)
		}
	}

	e.Hash = veneer.Hash(e.Name)

	return
}

// fileExports returns the exports declared in a parsed file.
func fileExports(fset *token.FileSet, pkg string, f *ast.File) (exports []*Export, err error) {
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)

		if !ok {
			continue
		}

		e, err := funcExport(fset, pkg, fn)

		if err != nil {
			return nil, err
		}

		if e != nil {
			exports = append(exports, e)
		}
	}

	return
}
