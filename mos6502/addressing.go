package mos6502

// addrMode identifies one of the 13 addressing modes the legal opcode set
// uses to locate its operand.
type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
)

// operand is the resolved address (or, for accumulator/implied/immediate
// modes, the immediate value / nothing) an instruction acts on, plus whether
// resolving it crossed a page boundary (only some modes charge for this).
type operand struct {
	addr        uint16
	value       uint8 // valid only for modeImmediate
	pageCrossed bool
}

// resolve computes the operand for op's addressing mode, consuming operand
// bytes immediately following the opcode byte (c.PC already points past it).
func (c *CPU) resolve(mode addrMode) operand {
	switch mode {
	case modeImplied, modeAccumulator:
		return operand{}

	case modeImmediate:
		return operand{addr: c.PC, value: c.bus.Read(c.PC)}

	case modeZeroPage:
		return operand{addr: uint16(c.bus.Read(c.PC))}

	case modeZeroPageX:
		return operand{addr: uint16(c.bus.Read(c.PC) + c.X)}

	case modeZeroPageY:
		return operand{addr: uint16(c.bus.Read(c.PC) + c.Y)}

	case modeAbsolute:
		return operand{addr: c.read16(c.PC)}

	case modeAbsoluteX:
		base := c.read16(c.PC)
		addr := base + uint16(c.X)
		return operand{addr: addr, pageCrossed: pagesDiffer(base, addr)}

	case modeAbsoluteY:
		base := c.read16(c.PC)
		addr := base + uint16(c.Y)
		return operand{addr: addr, pageCrossed: pagesDiffer(base, addr)}

	case modeIndirect:
		ptr := c.read16(c.PC)
		return operand{addr: c.read16Bugged(ptr)}

	case modeIndirectX:
		zp := c.bus.Read(c.PC) + c.X
		addr := c.read16ZeroPage(zp)
		return operand{addr: addr}

	case modeIndirectY:
		zp := c.bus.Read(c.PC)
		base := c.read16ZeroPage(zp)
		addr := base + uint16(c.Y)
		return operand{addr: addr, pageCrossed: pagesDiffer(base, addr)}

	case modeRelative:
		off := int8(c.bus.Read(c.PC))
		addr := uint16(int32(c.PC) + 1 + int32(off))
		return operand{addr: addr}

	default:
		return operand{}
	}
}

// read16ZeroPage reads a little-endian pointer out of the zero page, where
// the high byte wraps within page zero rather than crossing into page one.
func (c *CPU) read16ZeroPage(zp uint8) uint16 {
	lo := uint16(c.bus.Read(uint16(zp)))
	hi := uint16(c.bus.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

// read16Bugged reproduces the JMP (indirect) hardware bug: if the low byte
// of ptr is 0xFF, the high byte is fetched from the start of the same page
// instead of the start of the next one.
func (c *CPU) read16Bugged(ptr uint16) uint16 {
	lo := uint16(c.bus.Read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.bus.Read(hiAddr))
	return hi<<8 | lo
}
