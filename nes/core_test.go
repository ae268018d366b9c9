package nes

import (
	"testing"

	"github.com/halvorsen-dev/gonescore/cartridge"
	"github.com/halvorsen-dev/gonescore/controller"
	"github.com/halvorsen-dev/gonescore/mos6502"
	"github.com/halvorsen-dev/gonescore/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankCartridge() *cartridge.Cartridge {
	prg := make([]byte, 16384)
	// Reset vector -> 0x8000, a single infinite JMP $8000 loop so RunFrame
	// has something well-defined to execute without ever hitting an
	// illegal opcode.
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80
	prg[0] = 0x4C // JMP absolute
	prg[1] = 0x00
	prg[2] = 0x80
	return cartridge.New(prg, make([]byte, 8192), cartridge.Horizontal)
}

func TestNewResetsToCartridgeVector(t *testing.T) {
	core := New(blankCartridge())
	assert.Equal(t, uint16(0x8000), core.cpu.PC)
}

func TestRunFrameReturnsFullSizedFramebuffer(t *testing.T) {
	core := New(blankCartridge())
	frame := core.RunFrame()
	require.Len(t, frame, ppu.FrameWidth*ppu.FrameHeight*3)
}

func TestSetButtonRoutesToCorrectPlayer(t *testing.T) {
	core := New(blankCartridge())
	core.SetButton(Player1, controller.A, true)
	core.SetButton(Player2, controller.B, true)

	core.bus.Write(0x4016, 1)
	core.bus.Write(0x4016, 0)
	assert.Equal(t, uint8(1), core.bus.Read(0x4016)&0x01, "pad1 A should read back as pressed")
	assert.Equal(t, uint8(0), core.bus.Read(0x4017)&0x01, "pad2 A (first bit) should read back as released")
	assert.Equal(t, uint8(1), core.bus.Read(0x4017)&0x01, "pad2 B (second bit) should read back as pressed")
}

func TestRunFrameSurfacesFatalErrorOnIllegalOpcode(t *testing.T) {
	prg := make([]byte, 16384)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	prg[0] = 0x02 // not a legal opcode
	core := New(cartridge.New(prg, make([]byte, 8192), cartridge.Horizontal))

	core.RunFrame()
	require.ErrorIs(t, core.Err(), mos6502.ErrUnknownOpcode)

	// Once faulted, the processor's state is undefined: RunFrame must not
	// keep stepping it, but it still must return without hanging.
	frame := core.RunFrame()
	assert.Len(t, frame, ppu.FrameWidth*ppu.FrameHeight*3)
}
