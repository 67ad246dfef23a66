// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

// The Secure image of the example firmware: it partitions the device,
// bootstraps the Non-secure image, exercises its functions and then serves
// the Secure console on the serial port.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/usbarmory/GoTEE-m/armv8m"
	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/internal/reg"
	"github.com/usbarmory/GoTEE-m/trusted_os/bindings"
	"github.com/usbarmory/GoTEE-m/trusted_os/cmd"
	"github.com/usbarmory/GoTEE-m/trusted_os/demo"
	"github.com/usbarmory/GoTEE-m/tz"

	_ "github.com/usbarmory/GoTEE-m/trusted_os/api"
)

type serial struct {
	io.Reader
	io.Writer
}

func init() {
	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)

	log.Printf("SM %s/%s (%s) • TrustZone Secure image", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func main() {
	defer log.Printf("SM says goodbye")

	if err := tz.Init(bindings.Partition); err != nil {
		log.Fatalf("SM could not configure TrustZone, %v", err)
	}

	log.Printf("SM Non-secure image initialized")

	for _, step := range demo.Run() {
		log.Printf("SM %s: %d", step.Action, step.Value)
	}

	cmd.Init(&cmd.Platform{
		Bus:        reg.Default,
		Config:     bindings.Partition,
		Controller: tz.NewController(bindings.Partition.Target, reg.Default),
		TestTarget: armv8m.CPU{}.TestTarget,
		Domains:    []gateway.Domain{gateway.Secure, gateway.NonSecure},
	})

	t := term.NewTerminal(serial{os.Stdin, os.Stdout}, "> ")
	fmt.Fprintf(t, "%s\n", cmd.Help(t))

	cmd.Serve(t)
}
