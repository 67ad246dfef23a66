// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bindgen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/tz"
)

// Generated file names
const (
	BindingsFile  = "trustzone_bindings.go"
	VectorsFile   = "trustzone_vectors_cortexm.S"
	PartitionFile = "partition.go"
)

// identifiers declared by the bindings package itself
var reservedIdents = map[string]bool{
	"Peer":          true,
	"Partition":     true,
	"findNSCVector": true,
}

var targetIdents = map[*mem.Target]string{
	mem.NRF9160: "NRF9160",
	mem.NRF5340: "NRF5340",
	mem.ARMv8M:  "ARMv8M",
}

var domainIdents = map[mem.Domain]string{
	mem.Secure:            "mem.Secure",
	mem.NonSecure:         "mem.NonSecure",
	mem.NonSecureCallable: "mem.NonSecureCallable",
}

var funcs = template.FuncMap{
	"hex": func(v uint32) string {
		return fmt.Sprintf("0x%08x", v)
	},
	"params": func(e *Export) string {
		var params []string

		for i, p := range e.Params {
			params = append(params, fmt.Sprintf("a%d %s", i, p.Type))
		}

		return strings.Join(params, ", ")
	},
	"invoke": invoke,
	"target": func(t *mem.Target) (string, error) {
		if id, ok := targetIdents[t]; ok {
			return id, nil
		}

		return "", fmt.Errorf("target has no Go identifier")
	},
	"domain": func(d mem.Domain) (string, error) {
		if id, ok := domainIdents[d]; ok {
			return id, nil
		}

		return "", fmt.Errorf("invalid domain %d", int(d))
	},
}

var (
	bindingsTmpl         = template.Must(template.New(BindingsFile).Funcs(funcs).Parse(bindingsTemplate))
	secureVectorsTmpl    = template.Must(template.New(VectorsFile).Funcs(funcs).Parse(secureVectorsTemplate))
	nonsecureVectorsTmpl = template.Must(template.New(VectorsFile).Funcs(funcs).Parse(nonsecureVectorsTemplate))
	partitionTmpl        = template.Must(template.New(PartitionFile).Funcs(funcs).Parse(partitionTemplate))
)

// invoke returns the wrapper statement which calls the peer function and
// converts its result.
func invoke(e *Export) string {
	var args []string

	for i, p := range e.Params {
		a := fmt.Sprintf("a%d", i)

		switch p.Type {
		case "uint32":
			args = append(args, a)
		case "bool":
			args = append(args, "gateway.Bool("+a+")")
		default:
			args = append(args, "uint32("+a+")")
		}
	}

	call := fmt.Sprintf("Peer.Call(fn, gateway.Args{%s})", strings.Join(args, ", "))

	switch e.Result {
	case "":
		return call
	case "uint32":
		return "return " + call
	case "bool":
		return "return " + call + " != 0"
	default:
		return fmt.Sprintf("return %s(%s)", e.Result, call)
	}
}

// File represents a generated file.
type File struct {
	Name string
	Data []byte
}

// Generator renders the bindings package of a TrustZone image.
type Generator struct {
	// Domain is the domain of the image importing the bindings.
	Domain mem.Domain
	// Package is the bindings package name.
	Package string
	// Partition, when set for the Secure image, is rendered as the
	// Partition variable.
	Partition *tz.Config
}

// split returns the exports implemented by the image and by its peer.
func (g *Generator) split(exports []*Export) (own []*Export, peer []*Export) {
	for _, e := range exports {
		if e.Direction.Callee() == g.Domain {
			own = append(own, e)
		} else {
			peer = append(peer, e)
		}
	}

	return
}

func render(tmpl *template.Template, data interface{}, gofmt bool) (buf []byte, err error) {
	var out bytes.Buffer

	if err = tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("could not render %s, %v", tmpl.Name(), err)
	}

	if !gofmt {
		return out.Bytes(), nil
	}

	if buf, err = format.Source(out.Bytes()); err != nil {
		return nil, fmt.Errorf("could not format %s, %v", tmpl.Name(), err)
	}

	return
}

// Generate checks the exports of both images and renders the bindings
// package files.
func (g *Generator) Generate(exports []*Export) (files []File, err error) {
	var vectors *template.Template

	if err = Check(exports); err != nil {
		return
	}

	bindings := struct {
		Package  string
		Peer     string
		PeerName string
		Searcher bool
		Exports  []*Export
	}{
		Package: g.Package,
	}

	switch g.Domain {
	case mem.Secure:
		bindings.Peer = "gateway.NonSecure"
		bindings.PeerName = "Non-secure"
		bindings.Searcher = true
		vectors = secureVectorsTmpl
	case mem.NonSecure:
		bindings.Peer = "gateway.Secure"
		bindings.PeerName = "Secure"
		vectors = nonsecureVectorsTmpl
	default:
		return nil, fmt.Errorf("cannot generate bindings for the %s domain", g.Domain)
	}

	own, peer := g.split(exports)
	bindings.Exports = peer

	for _, e := range peer {
		if reservedIdents[e.Func] {
			return nil, fmt.Errorf("%w, %s clashes with the bindings package %s identifier", ErrDuplicate, e, e.Func)
		}
	}

	entries := []string{"tz_find_nsc_vector"}

	for _, e := range own {
		entries = append(entries, e.Name)
	}

	buf, err := render(bindingsTmpl, bindings, true)

	if err != nil {
		return
	}

	files = append(files, File{BindingsFile, buf})

	if buf, err = render(vectors, struct {
		Exports []*Export
		Entries []string
	}{own, entries}, false); err != nil {
		return nil, err
	}

	files = append(files, File{VectorsFile, buf})

	if g.Domain != mem.Secure || g.Partition == nil {
		return
	}

	if err = g.Partition.Validate(); err != nil {
		return nil, err
	}

	if buf, err = render(partitionTmpl, struct {
		Package string
		Config  *tz.Config
	}{g.Package, g.Partition}, true); err != nil {
		return nil, err
	}

	files = append(files, File{PartitionFile, buf})

	return
}

// Write stores generated files in dir.
func Write(dir string, files []File) (err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}

	for _, f := range files {
		if err = os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0644); err != nil {
			return
		}
	}

	return
}
