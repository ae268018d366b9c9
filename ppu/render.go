package ppu

// renderFrame composites the background nametable and all 64 OAM sprites
// into the framebuffer. It runs once per frame (at the start of vblank)
// using the scroll and control state as it stood at that moment: true
// per-scanline raster effects (changing scroll or pattern banks mid-frame)
// are not reproduced.
func (p *PPU) renderFrame() {
	bgPatternBase := uint16(0)
	if p.ctrl&CtrlBGPattern != 0 {
		bgPatternBase = 0x1000
	}

	baseTable := int((p.v >> 10) & 0x03)
	coarseX := int(p.v & 0x1F)
	coarseY := int((p.v >> 5) & 0x1F)
	fineX := int(p.x)
	fineY := int((p.v >> 12) & 0x07)

	// Scrolling is applied within a single nametable only: crossing a
	// nametable boundary mid-frame (the coarse scroll wrapping past 32
	// columns or 30 rows) is not reproduced, matching this renderer's
	// frame-granular, not scanline-exact, scope.
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			tileCol := (coarseX + (fineX+x)/8) % 32
			tileRow := (coarseY + (fineY+y)/8) % 30
			tileX := (fineX + x) % 8
			tileY := (fineY + y) % 8

			idx := p.backgroundPixel(baseTable, tileRow, tileCol, tileX, tileY, bgPatternBase)
			p.setPixel(x, y, p.paletteColor(idx))
		}
	}

	if p.mask&MaskShowSprites != 0 {
		p.renderSprites()
	}
}

// backgroundPixel returns the 6-bit system-palette index for one background
// pixel, or the universal backdrop color if the pattern pixel is
// transparent (color index 0).
func (p *PPU) backgroundPixel(table, tileRow, tileCol, tileX, tileY int, patternBase uint16) uint8 {
	ntBase := uint16(0x2000 + (table%4)*0x400)
	tileIndex := p.Read(ntBase + uint16(tileRow*32+tileCol))

	colorIdx := p.patternPixel(patternBase, tileIndex, tileX, tileY, false, false)

	attrByte := p.Read(ntBase + 0x3C0 + uint16((tileRow/4)*8+tileCol/4))
	shift := uint(((tileRow%4)/2)*4 + ((tileCol%4)/2)*2)
	attr := (attrByte >> shift) & 0x03

	if colorIdx == 0 {
		return p.palette[0]
	}
	return p.palette[uint16(attr)*4+uint16(colorIdx)]
}

// patternPixel decodes one pixel out of an 8x8 pattern-table tile, honoring
// horizontal/vertical flip for sprite use.
func (p *PPU) patternPixel(base uint16, tileIndex uint8, x, y int, flipX, flipY bool) uint8 {
	if flipX {
		x = 7 - x
	}
	if flipY {
		y = 7 - y
	}
	addr := base + uint16(tileIndex)*16 + uint16(y)
	lo := p.Read(addr)
	hi := p.Read(addr + 8)
	bit := uint(7 - x)
	return (hi>>bit&1)<<1 | (lo >> bit & 1)
}

// renderSprites composites all 64 OAM entries back-to-front (sprite 0 drawn
// last among overlaps at equal priority) so lower-indexed sprites win ties,
// matching hardware sprite priority. 8x16 sprites are not supported; the
// sprite-size bit is ignored and every sprite is treated as 8x8.
func (p *PPU) renderSprites() {
	spritePatternBase := uint16(0)
	if p.ctrl&CtrlSpritePattern != 0 {
		spritePatternBase = 0x1000
	}

	for i := 63; i >= 0; i-- {
		base := i * 4
		y := int(p.oam[base]) + 1
		tileIndex := p.oam[base+1]
		attr := p.oam[base+2]
		x := int(p.oam[base+3])

		flipV := attr&0x80 != 0
		flipH := attr&0x40 != 0
		behindBG := attr&0x20 != 0
		paletteSel := attr & 0x03

		for row := 0; row < 8; row++ {
			py := y + row
			if py < 0 || py >= FrameHeight {
				continue
			}
			for col := 0; col < 8; col++ {
				px := x + col
				if px < 0 || px >= FrameWidth {
					continue
				}

				colorIdx := p.patternPixel(spritePatternBase, tileIndex, col, row, flipH, flipV)
				if colorIdx == 0 {
					continue
				}
				if behindBG && !p.backgroundIsBackdrop(px, py) {
					continue
				}

				idx := p.palette[0x10+uint16(paletteSel)*4+uint16(colorIdx)]
				p.setPixel(px, py, p.paletteColor(idx))
			}
		}
	}
}

// backgroundIsBackdrop reports whether the framebuffer pixel at (x, y)
// currently holds the universal backdrop color, used to decide whether a
// behind-background sprite pixel should show through.
func (p *PPU) backgroundIsBackdrop(x, y int) bool {
	want := p.paletteColor(p.palette[0])
	off := (y*FrameWidth + x) * 3
	return p.frame[off] == want.r && p.frame[off+1] == want.g && p.frame[off+2] == want.b
}

func (p *PPU) paletteColor(idx uint8) rgb {
	return systemPalette[idx&0x3F]
}

func (p *PPU) setPixel(x, y int, c rgb) {
	off := (y*FrameWidth + x) * 3
	p.frame[off] = c.r
	p.frame[off+1] = c.g
	p.frame[off+2] = c.b
}
