// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// tzsim runs the example TrustZone firmware on a simulated device.
//
// The partition is read from the trustzone.yaml manifest and enforced on
// simulated security attribution registers, the Secure image then
// exercises the Non-secure functions, which call back into the Secure
// image through the Non-secure Callable veneers. With -ssh the Secure
// console is served on the simulated device once the run completes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"

	"golang.org/x/term"
	"k8s.io/klog/v2"

	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/internal/sim"
	"github.com/usbarmory/GoTEE-m/internal/sim/scenario"
	"github.com/usbarmory/GoTEE-m/manifest"
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/trusted_os/cmd"
	"github.com/usbarmory/GoTEE-m/trusted_os/demo"
	"github.com/usbarmory/GoTEE-m/util"
)

var (
	manifestPath = flag.String("manifest", manifest.DefaultName, "Path to the TrustZone firmware manifest.")
	sshAddr      = flag.String("ssh", "", "Serve the Secure console over SSH on this address once the run completes.")
	trace        = flag.Bool("trace", false, "Print the cross-domain call trace.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	s, err := run(os.Stdout)

	if err != nil {
		klog.Exitf("tzsim failed: %v", err)
	}

	if *sshAddr == "" {
		return
	}

	if err = serve(s, *sshAddr); err != nil {
		klog.Exitf("tzsim console failed: %v", err)
	}
}

func run(out io.Writer) (s *sim.System, err error) {
	m, err := manifest.Load(*manifestPath)

	if err != nil {
		return
	}

	cfg, err := m.Config()

	if err != nil {
		return
	}

	if s, err = sim.New(cfg); err != nil {
		return
	}

	if err = scenario.Load(s); err != nil {
		return
	}

	secure := &util.Output{Secure: true, Writer: out}
	nonsecure := &util.Output{Writer: out}

	log.SetFlags(0)
	log.SetOutput(secure)

	klog.Infof("partitioning %s", cfg.Target.Name)

	if err = s.Initialize(); err != nil {
		return nil, fmt.Errorf("could not configure TrustZone, %v", err)
	}

	for _, step := range demo.Run() {
		log.Printf("SM %s: %d", step.Action, step.Value)
	}

	if !*trace {
		return
	}

	for _, c := range s.Trace {
		w := secure

		if c.From == mem.NonSecure {
			w = nonsecure
		}

		fmt.Fprintln(w, c)
	}

	return
}

// console returns the Secure console of the simulated device, its sessions
// run the device console commands with the Secure log redirected to the
// session terminal.
func console(s *sim.System) *util.Console {
	cmd.Init(&cmd.Platform{
		Bus:        s,
		Config:     s.Config,
		Controller: s.Controller,
		Domains:    []gateway.Domain{s.Secure, s.NonSecure},
	})

	return &util.Console{
		Banner: fmt.Sprintf("tzsim %s Secure console", s.Config.Target.Name),
		Session: func(t *term.Terminal) {
			prev := log.Writer()
			log.SetOutput(&util.Output{Secure: true, Term: t})
			defer log.SetOutput(prev)

			fmt.Fprintf(t, "%s\n", cmd.Help(t))
			cmd.Serve(t)
		},
	}
}

func serve(s *sim.System, addr string) (err error) {
	listener, err := net.Listen("tcp", addr)

	if err != nil {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	klog.Infof("Secure console listening on %s", listener.Addr())

	return console(s).Serve(ctx, listener)
}
