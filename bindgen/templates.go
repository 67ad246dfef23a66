// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bindgen

const header = "// Code generated by tzgen. DO NOT EDIT.\n"

const bindingsTemplate = header + `
package {{.Package}}

import (
	"github.com/usbarmory/GoTEE-m/gateway"
)

// Peer is the domain implementing the functions bound by this package.
var Peer gateway.Domain = {{.Peer}}
{{range .Exports}}
// {{.Func}} calls {{.Name}} in the {{$.PeerName}} image.
func {{.Func}}({{params .}}){{with .Result}} {{.}}{{end}} {
	fn := gateway.MustFind(Peer, {{hex .Hash}}, {{printf "%q" .Name}})
	{{invoke .}}
}
{{end}}
{{- if .Searcher}}
// findNSCVector returns the Non-secure Callable veneer of a Secure
// function, the Non-secure image reaches it through the searcher veneer.
//
//export tz_find_nsc_vector
func findNSCVector(hash uint32) uint32 {
	return uint32(gateway.FindSecure(hash))
}
{{end -}}
`

const secureVectorsTemplate = header + `
//go:build tinygo

.syntax unified
.thumb

// searcher gateway, linked at _nsc_veneers
.section .nsc_veneers.searcher, "ax"
.global tz_searcher_veneer
.type tz_searcher_veneer, %function
.thumb_func
tz_searcher_veneer:
	sg
	b.w	tz_find_nsc_vector_entry
{{range .Exports}}
.section .nsc_veneers, "ax"
.global {{.Name}}_veneer
.type {{.Name}}_veneer, %function
.thumb_func
{{.Name}}_veneer:
	sg
	b.w	{{.Name}}_entry
{{end}}
{{- range .Entries}}
.section .text.{{.}}_entry, "ax"
.type {{.}}_entry, %function
.thumb_func
{{.}}_entry:
	push	{r4, lr}
	bl	{{.}}
	pop	{r4, lr}
	mov	r1, lr
	mov	r2, lr
	mov	r3, lr
	mov	r12, lr
	msr	apsr_nzcvq, lr
	bxns	lr
{{end}}
.section .nsc_vectors, "a"
.balign 4
{{- range .Exports}}
	.4byte	{{.Name}}_veneer
	.4byte	{{hex .Hash}} // {{.Name}}
{{- end}}
	.4byte	0
	.4byte	0
`

const nonsecureVectorsTemplate = header + `
//go:build tinygo

.syntax unified
.thumb

.section .ns_entry, "a"
.balign 4
	.4byte	tz_ns_bootstrap

.section .ns_vectors, "a"
.balign 4
{{- range .Exports}}
	.4byte	{{.Name}}
	.4byte	{{hex .Hash}} // {{.Name}}
{{- end}}
	.4byte	0
	.4byte	0

// void tz_ns_bootstrap(void)
.section .text.tz_ns_bootstrap, "ax"
.global tz_ns_bootstrap
.type tz_ns_bootstrap, %function
.thumb_func
tz_ns_bootstrap:
	// zero .bss
	ldr	r0, =_sbss
	ldr	r1, =_ebss
	movs	r2, #0
0:
	cmp	r1, r0
	beq	1f
	stm	r0!, {r2}
	b	0b
1:
	// copy .data
	ldr	r0, =_sdata
	ldr	r1, =_edata
	ldr	r2, =_sidata
2:
	cmp	r1, r0
	beq	3f
	ldm	r2!, {r3}
	stm	r0!, {r3}
	b	2b
3:
	bx	lr
.ltorg
`

const partitionTemplate = header + `
package {{.Package}}

import (
	"github.com/usbarmory/GoTEE-m/mem"
	"github.com/usbarmory/GoTEE-m/tz"
)

// Partition is the TrustZone partition enforced by the Secure image.
var Partition = &tz.Config{
	Target: mem.{{target .Config.Target}},
	Regions: []mem.Region{
{{- range .Config.Regions}}
		{Name: {{printf "%q" .Name}}, Start: {{hex .Start}}, End: {{hex .End}}, Domain: {{domain .Domain}}},
{{- end}}
	},
{{- with .Config.Peripherals}}
	Peripherals: []tz.PeripheralAssignment{
{{- range .}}
		{ID: {{.ID}}, Domain: {{domain .Domain}}},
{{- end}}
	},
{{- end}}
{{- with .Config.Pins}}
	Pins: []tz.PinAssignment{
{{- range .}}
		{Port: {{.Port}}, Pin: {{.Pin}}, Domain: {{domain .Domain}}},
{{- end}}
	},
{{- end}}
{{- with .Config.DPPI}}
	DPPI: []tz.DPPIAssignment{
{{- range .}}
		{Port: {{.Port}}, Channel: {{.Channel}}, Domain: {{domain .Domain}}},
{{- end}}
	},
{{- end}}
}
`
