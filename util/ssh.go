// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package util

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

// Console serves a terminal session over SSH. The session operates on a
// single device, a client connecting while another session is open is
// turned away.
type Console struct {
	// Banner is printed when a session starts
	Banner string
	// Session runs on the session terminal, the client is disconnected
	// when it returns.
	Session func(t *term.Terminal)
	// Signer is the host key, an ephemeral ed25519 key is used when nil.
	Signer ssh.Signer

	mu   sync.Mutex
	busy bool
}

// p10, 6.2. Requesting a Pseudo-Terminal, RFC4254
type ptyRequest struct {
	Term    string
	Columns uint32
	Rows    uint32
	Width   uint32
	Height  uint32
	Modes   string
}

// p10, 6.7. Window Dimension Change Message, RFC4254
type windowChange struct {
	Columns uint32
	Rows    uint32
	Width   uint32
	Height  uint32
}

func (c *Console) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return false
	}

	c.busy = true

	return true
}

func (c *Console) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.busy = false
}

func (c *Console) requests(t *term.Terminal, in <-chan *ssh.Request) {
	for req := range in {
		ok := false

		switch req.Type {
		case "shell":
			// payload commands are not supported
			ok = len(req.Payload) == 0
		case "pty-req":
			var pty ptyRequest

			if err := ssh.Unmarshal(req.Payload, &pty); err != nil {
				klog.Warningf("malformed pty-req request, %v", err)
				break
			}

			ok = t.SetSize(int(pty.Columns), int(pty.Rows)) == nil
		case "window-change":
			var size windowChange

			if err := ssh.Unmarshal(req.Payload, &size); err != nil {
				klog.Warningf("malformed window-change request, %v", err)
				break
			}

			ok = t.SetSize(int(size.Columns), int(size.Rows)) == nil
		}

		if req.WantReply {
			_ = req.Reply(ok, nil)
		}
	}
}

func (c *Console) session(ch ssh.Channel, in <-chan *ssh.Request) {
	defer ch.Close()

	t := term.NewTerminal(ch, "")
	t.SetPrompt(string(t.Escape.Red) + "> " + string(t.Escape.Reset))

	go c.requests(t, in)

	if !c.acquire() {
		fmt.Fprintln(t, "console in use by another session")
		return
	}

	defer c.release()

	fmt.Fprintln(t, c.Banner)
	c.Session(t)

	klog.Infof("closing ssh session")
}

func (c *Console) handshake(conn net.Conn, cfg *ssh.ServerConfig) {
	sc, chans, reqs, err := ssh.NewServerConn(conn, cfg)

	if err != nil {
		klog.Errorf("error accepting handshake, %v", err)
		return
	}

	defer sc.Close()

	klog.Infof("new ssh connection from %s (%s)", sc.RemoteAddr(), sc.ClientVersion())

	go ssh.DiscardRequests(reqs)

	for nc := range chans {
		if t := nc.ChannelType(); t != "session" {
			_ = nc.Reject(ssh.UnknownChannelType, fmt.Sprintf("unknown channel type: %s", t))
			continue
		}

		ch, in, err := nc.Accept()

		if err != nil {
			klog.Errorf("error accepting channel, %v", err)
			continue
		}

		go c.session(ch, in)
	}
}

func (c *Console) config() (*ssh.ServerConfig, error) {
	signer := c.Signer

	if signer == nil {
		_, key, err := ed25519.GenerateKey(rand.Reader)

		if err != nil {
			return nil, fmt.Errorf("private key generation error, %w", err)
		}

		if signer, err = ssh.NewSignerFromKey(key); err != nil {
			return nil, fmt.Errorf("key conversion error, %w", err)
		}
	}

	cfg := &ssh.ServerConfig{
		NoClientAuth: true,
	}

	cfg.AddHostKey(signer)

	klog.Infof("starting ssh server (%s)", ssh.FingerprintSHA256(signer.PublicKey()))

	return cfg, nil
}

// Serve accepts SSH clients on the listener until ctx is done or the
// listener is closed.
func (c *Console) Serve(ctx context.Context, listener net.Listener) error {
	cfg, err := c.config()

	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-done:
		}
	}()

	for {
		conn, err := listener.Accept()

		if errors.Is(err, net.ErrClosed) {
			return nil
		}

		if err != nil {
			klog.Errorf("error accepting connection, %v", err)
			continue
		}

		go c.handshake(conn, cfg)
	}
}
