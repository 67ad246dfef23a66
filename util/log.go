// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

const outputLimit = 1024
const flushChr = 0x0a // \n

// Output buffers the console output of a security domain, flushing it one
// line at a time so that Secure and Non-secure lines do not interleave.
type Output struct {
	// Secure selects the domain color on terminals
	Secure bool
	// Term, when set, receives colored output
	Term *term.Terminal
	// Writer receives plain output when Term is not set, os.Stdout is
	// used when nil.
	Writer io.Writer

	buf bytes.Buffer
}

// WriteByte buffers a single output character.
func (o *Output) WriteByte(c byte) error {
	o.buf.WriteByte(c)

	if c == flushChr || o.buf.Len() > outputLimit {
		return o.Flush()
	}

	return nil
}

// Write implements io.Writer.
func (o *Output) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if err = o.WriteByte(c); err != nil {
			return
		}

		n++
	}

	return
}

// Flush writes out any buffered output.
func (o *Output) Flush() (err error) {
	if o.buf.Len() == 0 {
		return
	}

	defer o.buf.Reset()

	if o.Term == nil {
		w := o.Writer

		if w == nil {
			w = os.Stdout
		}

		_, err = w.Write(o.buf.Bytes())
		return
	}

	color := o.Term.Escape.Red

	if o.Secure {
		color = o.Term.Escape.Green
	}

	o.Term.Write(color)
	o.Term.Write(o.buf.Bytes())
	_, err = o.Term.Write(o.Term.Escape.Reset)

	return
}
