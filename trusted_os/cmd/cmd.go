// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package cmd implements the Secure image console, which inspects and
// alters the TrustZone partition of the running device.
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"sort"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/internal/reg"
	"github.com/usbarmory/GoTEE-m/tz"
)

// Cmd represents a console command.
type Cmd struct {
	Name    string
	Args    int
	Pattern *regexp.Regexp
	Syntax  string
	Help    string
	Fn      func(*term.Terminal, []string) (string, error)
}

// Platform represents the device operated by the console commands.
type Platform struct {
	// Bus is the system register bus
	Bus reg.Bus
	// Config is the enforced partition
	Config *tz.Config
	// Controller is the attribution controller of the partition target
	Controller tz.Controller
	// TestTarget issues a TT instruction, nil when not available
	TestTarget func(addr uint32) uint32
	// Domains are searched by the find command
	Domains []gateway.Domain
}

var cmds = make(map[string]*Cmd)

var platform *Platform

var errNoPlatform = errors.New("console platform not initialized")

// Add registers a console command.
func Add(cmd Cmd) {
	cmds[cmd.Name] = &cmd
}

// Init sets the platform operated by all commands.
func Init(p *Platform) {
	platform = p
}

func current() (*Platform, error) {
	if platform == nil {
		return nil, errNoPlatform
	}

	return platform, nil
}

// Help returns the list of available commands.
func Help(term *term.Terminal) string {
	var help bytes.Buffer
	var names []string

	t := tabwriter.NewWriter(&help, 16, 8, 0, '\t', tabwriter.TabIndent)

	for name := range cmds {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		_, _ = fmt.Fprintf(t, "%s\t%s\t # %s\n", cmds[name].Name, cmds[name].Syntax, cmds[name].Help)
	}

	_ = t.Flush()

	if term == nil {
		return help.String()
	}

	return string(term.Escape.Cyan) + help.String() + string(term.Escape.Reset)
}

// Handle executes a console command line.
func Handle(term *term.Terminal, line string) (err error) {
	var match *Cmd
	var arg []string
	var res string

	for _, cmd := range cmds {
		if cmd.Pattern == nil {
			if cmd.Name == line {
				match = cmd
				break
			}
		} else if m := cmd.Pattern.FindStringSubmatch(line); len(m) > 0 && (len(m)-1 == cmd.Args) {
			match = cmd
			arg = m[1:]
			break
		}
	}

	if match == nil {
		return errors.New("unknown command, type `help`")
	}

	if res, err = match.Fn(term, arg); err != nil {
		return
	}

	fmt.Fprintln(term, res)

	return
}

// Serve runs a console session on the terminal until it is closed.
func Serve(term *term.Terminal) {
	for {
		line, err := term.ReadLine()

		if err == io.EOF {
			break
		}

		if err != nil {
			log.Printf("SM readline error, %v", err)
			continue
		}

		if err = Handle(term, line); err == io.EOF {
			break
		}

		if err != nil {
			fmt.Fprintf(term, "error: %v\n", err)
		}
	}
}
