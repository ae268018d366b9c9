// Package nes wires the processor, picture unit, bus and controllers into
// the single console aggregate a host drives one frame at a time.
package nes

import (
	"github.com/halvorsen-dev/gonescore/bus"
	"github.com/halvorsen-dev/gonescore/cartridge"
	"github.com/halvorsen-dev/gonescore/controller"
	"github.com/halvorsen-dev/gonescore/mos6502"
	"github.com/halvorsen-dev/gonescore/ppu"
)

// Player identifies which of the two controller ports a button press is
// routed to.
type Player int

const (
	Player1 Player = iota
	Player2
)

// ppuCyclesPerCPUCycle is the fixed NTSC clock ratio between the picture
// unit and the processor: the PPU runs three times as fast.
const ppuCyclesPerCPUCycle = 3

// Core is the complete, playable console: CPU, PPU, bus, cartridge and two
// controller ports, advanced one frame at a time.
type Core struct {
	cpu  *mos6502.CPU
	ppu  *ppu.PPU
	bus  *bus.Bus
	cart *cartridge.Cartridge
	pad1 *controller.Controller
	pad2 *controller.Controller

	// fault is set once the processor hits a fatal error (an illegal
	// opcode); once non-nil the processor's state is undefined and
	// RunFrame stops stepping it.
	fault error
}

// New builds a Core around cart and resets it to its power-up state.
func New(cart *cartridge.Cartridge) *Core {
	mirroring := ppu.MirrorHorizontal
	if cart.Mirroring() == cartridge.Vertical {
		mirroring = ppu.MirrorVertical
	}

	p := ppu.New(cart, mirroring)
	pad1 := controller.New()
	pad2 := controller.New()
	b := bus.New(p, cart, pad1, pad2)
	cpu := mos6502.New(b)

	c := &Core{cpu: cpu, ppu: p, bus: b, cart: cart, pad1: pad1, pad2: pad2}
	c.Reset()
	return c
}

// Reset resets the processor, which reloads PC from the cartridge's reset
// vector. The picture unit, work RAM and controllers are left as they are.
func (c *Core) Reset() {
	c.cpu.Reset()
}

// SetButton updates one controller button's pressed state for the given
// player.
func (c *Core) SetButton(player Player, b controller.Button, pressed bool) {
	pad := c.pad1
	if player == Player2 {
		pad = c.pad2
	}
	pad.SetButton(b, pressed)
}

// Framebuffer is one rendered frame: packed RGB triples, row-major,
// ppu.FrameWidth*ppu.FrameHeight*3 bytes.
type Framebuffer []uint8

// Err returns the fatal error that stopped the processor during a previous
// RunFrame call, or nil if none has occurred. mos6502.ErrUnknownOpcode is
// the only error this can be (see spec.md §7): once set, the processor's
// state is undefined and the session is over. Callers must check this after
// RunFrame and surface it as an abort rather than keep driving the core.
func (c *Core) Err() error {
	return c.fault
}

// RunFrame advances the console until exactly one picture frame has been
// produced and returns it. It alternates CPU instructions with the PPU
// running 3 dots per CPU cycle (the real NTSC clock ratio), polling the PPU
// for a pending NMI after every instruction and servicing it before the
// next fetch — matching real hardware's coarse, once-per-instruction NMI
// delivery rather than a cycle-exact interrupt line.
//
// If the processor ever faults on an illegal opcode, RunFrame records the
// error (see Err) and stops advancing the processor for good; it keeps
// returning the frame as it stood at the fault, without re-stepping a
// processor whose state is now undefined.
func (c *Core) RunFrame() Framebuffer {
	for c.fault == nil {
		cycles, err := c.cpu.Step()
		if err != nil {
			c.fault = err
			break
		}

		totalCycles := int(cycles) + c.bus.TakeDMACycles()
		c.ppu.Tick(totalCycles * ppuCyclesPerCPUCycle)

		if c.ppu.TakeNMI() {
			c.cpu.NMI()
		}

		if c.ppu.TakeFrameReady() {
			break
		}
	}

	return append(Framebuffer(nil), c.ppu.Frame()...)
}
