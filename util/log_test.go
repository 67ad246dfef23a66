// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

type sink struct {
	bytes.Buffer
}

func (s *sink) Read(p []byte) (int, error) {
	return 0, nil
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer

	o := &Output{Writer: &buf}

	n, err := o.Write([]byte("SM in return_5"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Zero(t, buf.Len(), "partial line flushed")

	_, err = o.Write([]byte("\nSM in"))
	require.NoError(t, err)
	assert.Equal(t, "SM in return_5\n", buf.String())

	require.NoError(t, o.Flush())
	assert.Equal(t, "SM in return_5\nSM in", buf.String())

	buf.Reset()

	_, err = o.Write([]byte(strings.Repeat("x", outputLimit+1)))
	require.NoError(t, err)
	assert.Equal(t, outputLimit+1, buf.Len(), "limit flush")
}

func TestOutputTerm(t *testing.T) {
	s := &sink{}
	tm := term.NewTerminal(s, "")

	secure := &Output{Secure: true, Term: tm}
	nonsecure := &Output{Term: tm}

	_, _ = secure.Write([]byte("secure\n"))
	_, _ = nonsecure.Write([]byte("nonsecure\n"))

	out := s.String()

	assert.Contains(t, out, string(tm.Escape.Green)+"secure\r\n"+string(tm.Escape.Reset))
	assert.Contains(t, out, string(tm.Escape.Red)+"nonsecure\r\n"+string(tm.Escape.Reset))
}
