// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"context"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
)

// echo answers ping until quit.
func echo(t *term.Terminal) {
	for {
		line, err := t.ReadLine()

		if err != nil || line == "quit" {
			return
		}

		if line == "ping" {
			fmt.Fprintln(t, "pong")
		} else {
			fmt.Fprintf(t, "error: unknown command %q\n", line)
		}
	}
}

func startConsole(t *testing.T, c *Console) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)

	go func() {
		served <- c.Serve(ctx, listener)
	}()

	t.Cleanup(func() {
		cancel()

		select {
		case err := <-served:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("console did not stop")
		}
	})

	return listener.Addr().String()
}

func dial(t *testing.T, addr string) (stdin io.Writer, stdout io.Reader) {
	t.Helper()

	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            "test",
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	session, err := client.NewSession()
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	stdin, err = session.StdinPipe()
	require.NoError(t, err)

	stdout, err = session.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, session.RequestPty("xterm", 24, 80, ssh.TerminalModes{}))
	require.NoError(t, session.Shell())

	return
}

func TestConsole(t *testing.T) {
	addr := startConsole(t, &Console{
		Banner:  "GoTEE-m console",
		Session: echo,
	})

	stdin, stdout := dial(t, addr)

	_, err := io.WriteString(stdin, "ping\rbogus\rquit\r")
	require.NoError(t, err)

	out, err := io.ReadAll(stdout)
	require.NoError(t, err)

	assert.Contains(t, string(out), "GoTEE-m console")
	assert.Contains(t, string(out), "pong")
	assert.Contains(t, string(out), `error: unknown command "bogus"`)
}

func TestConsoleSingleSession(t *testing.T) {
	started := make(chan struct{})

	addr := startConsole(t, &Console{
		Banner: "GoTEE-m console",
		Session: func(t *term.Terminal) {
			close(started)
			echo(t)
		},
	})

	first, _ := dial(t, addr)
	<-started

	_, stdout := dial(t, addr)

	out, err := io.ReadAll(stdout)
	require.NoError(t, err)

	assert.Contains(t, string(out), "console in use by another session")
	assert.NotContains(t, string(out), "GoTEE-m console")

	_, err = io.WriteString(first, "quit\r")
	require.NoError(t, err)
}

func TestConsoleSigner(t *testing.T) {
	c := &Console{}

	cfg, err := c.config()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.True(t, cfg.NoClientAuth)
}
