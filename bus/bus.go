// Package bus implements the address-decoding glue between the processor,
// the picture unit, the cartridge and the controllers: the single memory
// map the CPU sees as its entire 64KiB address space.
package bus

import (
	"github.com/halvorsen-dev/gonescore/cartridge"
	"github.com/halvorsen-dev/gonescore/controller"
	"github.com/halvorsen-dev/gonescore/ppu"
)

const (
	ramSize   = 2048
	ramMask   = ramSize - 1
	regOAMDMA = 0x4014
	regJoy1   = 0x4016
	regJoy2   = 0x4017
)

// Bus owns work RAM and routes every CPU-visible address to the right
// collaborator: RAM mirrored every 2KiB, PPU registers mirrored every 8
// bytes, the two controller ports, OAM DMA, and cartridge program space.
type Bus struct {
	ram  [ramSize]uint8
	ppu  *ppu.PPU
	cart *cartridge.Cartridge
	pad1 *controller.Controller
	pad2 *controller.Controller

	dmaCycles int // extra CPU cycles the last OAM DMA consumed
}

// New creates a Bus wiring together the picture unit, cartridge and both
// controller ports. Any of the pad arguments may be nil; an unplugged
// controller always reads back zero bits.
func New(p *ppu.PPU, cart *cartridge.Cartridge, pad1, pad2 *controller.Controller) *Bus {
	return &Bus{ppu: p, cart: cart, pad1: pad1, pad2: pad2}
}

// SetCartridge swaps in a new cartridge, used when the host loads a ROM
// after construction.
func (b *Bus) SetCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
}

// Read returns the byte visible at addr from the CPU's perspective.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&ramMask]

	case addr < 0x4000:
		return b.ppu.CPURead(uint8(addr & 0x0007))

	case addr == regJoy1:
		if b.pad1 == nil {
			return 0
		}
		return b.pad1.Read()

	case addr == regJoy2:
		if b.pad2 == nil {
			return 0
		}
		return b.pad2.Read()

	case addr >= 0x8000:
		return b.cart.PrgRead(addr)

	default:
		return 0
	}
}

// Write stores val at addr, routing through the same decode as Read.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&ramMask] = val

	case addr < 0x4000:
		b.ppu.CPUWrite(uint8(addr&0x0007), val)

	case addr == regOAMDMA:
		b.oamDMA(val)

	case addr == regJoy1:
		// The real hardware wires $4016 writes to both controllers'
		// strobe lines simultaneously; $4017 has no write side on NES.
		if b.pad1 != nil {
			b.pad1.Write(val)
		}
		if b.pad2 != nil {
			b.pad2.Write(val)
		}

	case addr >= 0x8000:
		b.cart.PrgWrite(addr, val)
	}
}

// oamDMA copies 256 bytes starting at page*0x100 into OAM, starting at the
// picture unit's current OAMADDR and wrapping within the 256-byte table.
// Each transfer is charged a flat 513 CPU cycles (CPU cycle parity is not
// tracked, so the 514-cycle odd-cycle case is not modelled); RunFrame
// accounts for this via TakeDMACycles.
func (b *Bus) oamDMA(page uint8) {
	start := uint16(page) << 8
	for i := 0; i < 256; i++ {
		val := b.Read(start + uint16(i))
		b.ppu.WriteOAMByte(uint8(i), val)
	}
	b.dmaCycles += 513
}

// TakeDMACycles returns and resets the extra CPU cycles consumed by OAM DMA
// transfers since the last call.
func (b *Bus) TakeDMACycles() int {
	c := b.dmaCycles
	b.dmaCycles = 0
	return c
}
