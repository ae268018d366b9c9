// Package ppu implements the picture processing unit: the memory-mapped
// register file the CPU talks to, the internal v/t/x/w scroll latches, the
// dot/scanline timing state machine, and a frame-granular renderer that
// composites background and sprite tiles into an RGB framebuffer.
package ppu

// Sizes of the PPU's own address spaces.
const (
	VRAMSize    = 2048 // two 1KiB logical nametables
	OAMSize     = 256  // 64 sprites * 4 bytes
	PaletteSize = 32
)

// Frame dimensions.
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// Timing constants for the dot/scanline state machine.
const (
	dotsPerScanline   = 341
	scanlinesPerFrame = 262
	preRenderScanline = -1
	vblankScanline    = 241
)

// CPU-visible register addresses, mirrored every 8 bytes across
// 0x2000-0x3FFF by the bus; OAMDMA lives outside that mirrored window.
const (
	RegPPUCTRL   = 0x2000
	RegPPUMASK   = 0x2001
	RegPPUSTATUS = 0x2002
	RegOAMADDR   = 0x2003
	RegOAMDATA   = 0x2004
	RegPPUSCROLL = 0x2005
	RegPPUADDR   = 0x2006
	RegPPUDATA   = 0x2007
	RegOAMDMA    = 0x4014
)

// PPUCTRL ($2000) bit flags.
const (
	CtrlNametable1      = 1 << 0
	CtrlNametable2      = 1 << 1
	CtrlVRAMIncrement   = 1 << 2
	CtrlSpritePattern   = 1 << 3
	CtrlBGPattern       = 1 << 4
	CtrlSpriteSize      = 1 << 5
	CtrlMasterSlave     = 1 << 6
	CtrlGenerateNMI     = 1 << 7
)

// PPUMASK ($2001) bit flags.
const (
	MaskGreyscale       = 1 << 0
	MaskShowBGLeft      = 1 << 1
	MaskShowSpritesLeft = 1 << 2
	MaskShowBackground  = 1 << 3
	MaskShowSprites     = 1 << 4
)

// PPUSTATUS ($2002) bit flags.
const (
	StatusSpriteOverflow = 1 << 5
	StatusSprite0Hit     = 1 << 6
	StatusVBlank         = 1 << 7
)

// Mirroring names the nametable arrangement; it matches cartridge.Mirroring
// in meaning without importing the cartridge package, keeping ppu free of a
// dependency cycle.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
)

// Bus is the minimal cartridge surface the PPU needs: reading pattern table
// bytes out of CHR memory. Nametable mirroring and palette storage live
// inside the PPU itself.
type Bus interface {
	ChrRead(addr uint16) uint8
}

// PPU is the complete picture processing unit. It owns its own nametable
// and palette RAM, OAM, and scroll latches; the bus routes CPU accesses to
// $2000-$2007 through CPURead/CPUWrite and $4014 OAM DMA through WriteOAMByte.
type PPU struct {
	bus       Bus
	mirroring Mirroring

	nametables [2][1024]uint8
	palette    [PaletteSize]uint8
	oam        [OAMSize]uint8

	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	v, t uint16 // current/temporary VRAM address, 15 bits used
	x    uint8  // fine X scroll, 3 bits used
	w    bool   // write-toggle latch

	readBuffer uint8

	scanline int32
	dot      int32

	nmiPending   bool
	frameReady   bool

	frame [FrameWidth * FrameHeight * 3]uint8
}

// New creates a PPU wired to bus with the cartridge's nametable mirroring.
// Power-up state starts at the pre-render scanline, dot 0, matching the
// reset behavior real hardware settles into.
func New(bus Bus, mirroring Mirroring) *PPU {
	return &PPU{
		bus:       bus,
		mirroring: mirroring,
		scanline:  preRenderScanline,
	}
}

// SetMirroring updates the nametable mirroring mode, used when a cartridge
// is (re)loaded after construction.
func (p *PPU) SetMirroring(m Mirroring) {
	p.mirroring = m
}

// Frame returns the current framebuffer as packed RGB triples, row-major,
// FrameWidth*FrameHeight*3 bytes. The slice is owned by the PPU and is
// overwritten on the next completed frame; callers that need to retain a
// frame must copy it.
func (p *PPU) Frame() []uint8 {
	return p.frame[:]
}

// TakeNMI reports whether an NMI has become pending since the last call and
// clears the pending flag. nes.Core polls this once per CPU instruction.
func (p *PPU) TakeNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// TakeFrameReady reports whether a frame finished compositing since the
// last call and clears the flag. A host or core polls this once per CPU
// instruction to know when RunFrame should stop advancing.
func (p *PPU) TakeFrameReady() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}
