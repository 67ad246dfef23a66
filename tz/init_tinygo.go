// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tinygo && cortexm
// +build tinygo,cortexm

package tz

import (
	"github.com/usbarmory/GoTEE-m/armv8m"
	"github.com/usbarmory/GoTEE-m/gateway"
	"github.com/usbarmory/GoTEE-m/internal/reg"
)

// Fault exceptions are enabled at package initialization, ahead of
// partitioning, as faults escalating to HardFault reach the runtime handler
// rather than HandleFault.
func init() {
	armv8m.EnableFaults(reg.Default)
}

// Init partitions the device according to cfg and bootstraps the
// Non-secure image.
func Init(cfg *Config) (err error) {
	if err = cfg.Validate(); err != nil {
		return
	}

	return Initialize(cfg, NewController(cfg.Target, reg.Default), armv8m.CPU{}, gateway.NonSecure)
}
