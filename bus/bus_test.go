package bus

import (
	"testing"

	"github.com/halvorsen-dev/gonescore/cartridge"
	"github.com/halvorsen-dev/gonescore/controller"
	"github.com/halvorsen-dev/gonescore/ppu"
)

func newTestBus() (*Bus, *ppu.PPU) {
	cart := cartridge.New(make([]byte, 16384), make([]byte, 8192), cartridge.Horizontal)
	p := ppu.New(cart, ppu.MirrorHorizontal)
	b := New(p, cart, controller.New(), controller.New())
	return b, p
}

func TestRAMMirroring(t *testing.T) {
	b, _ := newTestBus()
	b.Write(0x0000, 0xAB)
	for _, addr := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := b.Read(addr); got != 0xAB {
			t.Errorf("Read(%#04x) = %#02x, want 0xAB (mirrors 0x0000)", addr, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b, p := newTestBus()
	b.Write(0x2000, 0x80) // PPUCTRL
	if got := b.Read(0x2002); got&ppu.StatusVBlank != 0 {
		t.Error("fresh PPUSTATUS shouldn't report vblank")
	}
	// 0x2008 mirrors 0x2000's register slot (both decode to reg 0).
	b.Write(0x2008, 0x00)

	// 0x200B/0x200C mirror OAMADDR/OAMDATA (regs 3 and 4).
	b.Write(0x200B, 0x05)
	b.Write(0x200C, 0x77)
	if got := p.OAMByte(0x05); got != 0x77 {
		t.Errorf("OAM[0x05] = %#02x, want 0x77 (written via mirrored 0x200B/0x200C)", got)
	}
}

func TestCartridgeProgramSpace(t *testing.T) {
	b, _ := newTestBus()
	if got := b.Read(0x8000); got != 0 {
		t.Errorf("Read(0x8000) = %#02x, want 0 on blank PRG", got)
	}
}

func TestControllerPortRouting(t *testing.T) {
	b, _ := newTestBus()
	pad1 := controller.New()
	pad2 := controller.New()
	b = New(b.ppu, b.cart, pad1, pad2)
	pad1.SetButton(controller.A, true)

	b.Write(0x4016, 1)
	b.Write(0x4016, 0)
	if got := b.Read(0x4016) & 0x01; got != 1 {
		t.Errorf("Read(0x4016) bit0 = %d, want 1 (A pressed on pad1)", got)
	}
}

func TestOAMDMACopies256BytesFromPage(t *testing.T) {
	b, p := newTestBus()
	for i := 0; i < 256; i++ {
		b.Write(uint16(0x0200+i), uint8(i))
	}
	b.Write(0x4014, 0x02)

	if got := p.OAMByte(0x10); got != 0x10 {
		t.Errorf("OAM[0x10] = %#02x, want 0x10", got)
	}
	if got := b.TakeDMACycles(); got != 513 {
		t.Errorf("DMA cycle cost = %d, want 513", got)
	}
	if got := b.TakeDMACycles(); got != 0 {
		t.Errorf("DMA cycle cost after drain = %d, want 0", got)
	}
}
