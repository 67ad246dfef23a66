// Copyright (c) The GoTEE authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mem

// Target describes the security attribution geometry of an Armv8-M
// microcontroller. Region granularity is supplied per target and never
// assumed by the partitioning logic.
type Target struct {
	// Name is the manifest identifier
	Name string

	FlashBase       uint32
	FlashSize       uint32
	FlashRegionSize uint32

	RAMBase       uint32
	RAMSize       uint32
	RAMRegionSize uint32

	// MinNSCSize and MaxNSCSize bound the Non-secure Callable region
	MinNSCSize uint32
	MaxNSCSize uint32
	// NSCAtRegionEnd is set when the Non-secure Callable region is carved
	// from the top of a flash region (Nordic SPU).
	NSCAtRegionEnd bool

	// Non-secure peripheral address space, one window per identifier
	PeripheralBase uint32
	PeripheralSize uint32
	Peripherals    int

	GPIOPorts    int
	GPIOPins     int
	DPPIPorts    int
	DPPIChannels int
}

// nRF9160 SiP
var NRF9160 = &Target{
	Name:            "nrf9160",
	FlashBase:       0x00000000,
	FlashSize:       0x00100000, // 1MB
	FlashRegionSize: 0x00008000, // 32KB
	RAMBase:         0x20000000,
	RAMSize:         0x00040000, // 256KB
	RAMRegionSize:   0x00002000, // 8KB
	MinNSCSize:      32,
	MaxNSCSize:      4096,
	NSCAtRegionEnd:  true,
	PeripheralBase:  0x40000000,
	PeripheralSize:  0x1000,
	Peripherals:     67,
	GPIOPorts:       1,
	GPIOPins:        32,
	DPPIPorts:       1,
	DPPIChannels:    16,
}

// nRF5340 application core
var NRF5340 = &Target{
	Name:            "nrf5340",
	FlashBase:       0x00000000,
	FlashSize:       0x00100000, // 1MB
	FlashRegionSize: 0x00004000, // 16KB
	RAMBase:         0x20000000,
	RAMSize:         0x00080000, // 512KB
	RAMRegionSize:   0x00002000, // 8KB
	MinNSCSize:      32,
	MaxNSCSize:      4096,
	NSCAtRegionEnd:  true,
	PeripheralBase:  0x40000000,
	PeripheralSize:  0x1000,
	Peripherals:     67,
	GPIOPorts:       2,
	GPIOPins:        32,
	DPPIPorts:       1,
	DPPIChannels:    32,
}

// ARMv8M describes any Armv8-M Mainline part partitioned through the
// architectural SAU alone, which has a 32 byte granularity.
var ARMv8M = &Target{
	Name:            "armv8m",
	FlashBase:       0x00000000,
	FlashSize:       0x20000000,
	FlashRegionSize: 32,
	RAMBase:         0x20000000,
	RAMSize:         0x20000000,
	RAMRegionSize:   32,
	MinNSCSize:      32,
	MaxNSCSize:      4096,
	PeripheralBase:  0x40000000,
	PeripheralSize:  0x1000,
	Peripherals:     256,
}

// Targets maps manifest identifiers to supported targets.
var Targets = map[string]*Target{
	NRF9160.Name: NRF9160,
	NRF5340.Name: NRF5340,
	ARMv8M.Name:  ARMv8M,
}

// FlashRegions returns the number of flash attribution regions.
func (t *Target) FlashRegions() int {
	return int(t.FlashSize / t.FlashRegionSize)
}

// RAMRegions returns the number of RAM attribution regions.
func (t *Target) RAMRegions() int {
	return int(t.RAMSize / t.RAMRegionSize)
}

// InFlash reports whether addr falls within the flash address space.
func (t *Target) InFlash(addr uint32) bool {
	return addr >= t.FlashBase && addr-t.FlashBase < t.FlashSize
}

// InRAM reports whether addr falls within the RAM address space.
func (t *Target) InRAM(addr uint32) bool {
	return addr >= t.RAMBase && addr-t.RAMBase < t.RAMSize
}

// Peripheral returns the Non-secure address window of a peripheral.
func (t *Target) Peripheral(id int) Region {
	start := t.PeripheralBase + uint32(id)*t.PeripheralSize

	return Region{
		Name:   "peripheral",
		Start:  start,
		End:    start + t.PeripheralSize,
		Domain: NonSecure,
	}
}

// PeripheralID returns the peripheral identifier owning addr, when addr
// falls within the peripheral address space.
func (t *Target) PeripheralID(addr uint32) (id int, ok bool) {
	if addr < t.PeripheralBase {
		return
	}

	id = int((addr - t.PeripheralBase) / t.PeripheralSize)

	return id, id < t.Peripherals
}
