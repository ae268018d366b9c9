package mos6502

// opcode describes one of the 151 legal instruction encodings: its mnemonic
// (dispatched on on in execute), addressing mode, total instruction length
// in bytes, and base cycle cost before any page-cross/branch penalty.
type opcode struct {
	mnemonic string
	mode     addrMode
	bytes    uint8
	cycles   uint8
}

// opcodes is the flat 256-entry (sparse) dispatch table for every legal
// opcode byte. Illegal/undocumented opcodes are deliberately absent:
// fetching one is a fatal ErrUnknownOpcode, not emulated behavior.
var opcodes = map[uint8]opcode{
	0x69: {"ADC", modeImmediate, 2, 2}, 0x65: {"ADC", modeZeroPage, 2, 3},
	0x75: {"ADC", modeZeroPageX, 2, 4}, 0x6D: {"ADC", modeAbsolute, 3, 4},
	0x7D: {"ADC", modeAbsoluteX, 3, 4}, 0x79: {"ADC", modeAbsoluteY, 3, 4},
	0x61: {"ADC", modeIndirectX, 2, 6}, 0x71: {"ADC", modeIndirectY, 2, 5},

	0x29: {"AND", modeImmediate, 2, 2}, 0x25: {"AND", modeZeroPage, 2, 3},
	0x35: {"AND", modeZeroPageX, 2, 4}, 0x2D: {"AND", modeAbsolute, 3, 4},
	0x3D: {"AND", modeAbsoluteX, 3, 4}, 0x39: {"AND", modeAbsoluteY, 3, 4},
	0x21: {"AND", modeIndirectX, 2, 6}, 0x31: {"AND", modeIndirectY, 2, 5},

	0x0A: {"ASL", modeAccumulator, 1, 2}, 0x06: {"ASL", modeZeroPage, 2, 5},
	0x16: {"ASL", modeZeroPageX, 2, 6}, 0x0E: {"ASL", modeAbsolute, 3, 6},
	0x1E: {"ASL", modeAbsoluteX, 3, 7},

	0x90: {"BCC", modeRelative, 2, 2},
	0xB0: {"BCS", modeRelative, 2, 2},
	0xF0: {"BEQ", modeRelative, 2, 2},
	0x30: {"BMI", modeRelative, 2, 2},
	0xD0: {"BNE", modeRelative, 2, 2},
	0x10: {"BPL", modeRelative, 2, 2},
	0x50: {"BVC", modeRelative, 2, 2},
	0x70: {"BVS", modeRelative, 2, 2},

	0x24: {"BIT", modeZeroPage, 2, 3}, 0x2C: {"BIT", modeAbsolute, 3, 4},

	0x00: {"BRK", modeImplied, 1, 7},

	0x18: {"CLC", modeImplied, 1, 2},
	0xD8: {"CLD", modeImplied, 1, 2},
	0x58: {"CLI", modeImplied, 1, 2},
	0xB8: {"CLV", modeImplied, 1, 2},

	0xC9: {"CMP", modeImmediate, 2, 2}, 0xC5: {"CMP", modeZeroPage, 2, 3},
	0xD5: {"CMP", modeZeroPageX, 2, 4}, 0xCD: {"CMP", modeAbsolute, 3, 4},
	0xDD: {"CMP", modeAbsoluteX, 3, 4}, 0xD9: {"CMP", modeAbsoluteY, 3, 4},
	0xC1: {"CMP", modeIndirectX, 2, 6}, 0xD1: {"CMP", modeIndirectY, 2, 5},

	0xE0: {"CPX", modeImmediate, 2, 2}, 0xE4: {"CPX", modeZeroPage, 2, 3},
	0xEC: {"CPX", modeAbsolute, 3, 4},

	0xC0: {"CPY", modeImmediate, 2, 2}, 0xC4: {"CPY", modeZeroPage, 2, 3},
	0xCC: {"CPY", modeAbsolute, 3, 4},

	0xC6: {"DEC", modeZeroPage, 2, 5}, 0xD6: {"DEC", modeZeroPageX, 2, 6},
	0xCE: {"DEC", modeAbsolute, 3, 6}, 0xDE: {"DEC", modeAbsoluteX, 3, 7},

	0xCA: {"DEX", modeImplied, 1, 2},
	0x88: {"DEY", modeImplied, 1, 2},

	0x49: {"EOR", modeImmediate, 2, 2}, 0x45: {"EOR", modeZeroPage, 2, 3},
	0x55: {"EOR", modeZeroPageX, 2, 4}, 0x4D: {"EOR", modeAbsolute, 3, 4},
	0x5D: {"EOR", modeAbsoluteX, 3, 4}, 0x59: {"EOR", modeAbsoluteY, 3, 4},
	0x41: {"EOR", modeIndirectX, 2, 6}, 0x51: {"EOR", modeIndirectY, 2, 5},

	0xE6: {"INC", modeZeroPage, 2, 5}, 0xF6: {"INC", modeZeroPageX, 2, 6},
	0xEE: {"INC", modeAbsolute, 3, 6}, 0xFE: {"INC", modeAbsoluteX, 3, 7},

	0xE8: {"INX", modeImplied, 1, 2},
	0xC8: {"INY", modeImplied, 1, 2},

	0x4C: {"JMP", modeAbsolute, 3, 3}, 0x6C: {"JMP", modeIndirect, 3, 5},

	0x20: {"JSR", modeAbsolute, 3, 6},

	0xA9: {"LDA", modeImmediate, 2, 2}, 0xA5: {"LDA", modeZeroPage, 2, 3},
	0xB5: {"LDA", modeZeroPageX, 2, 4}, 0xAD: {"LDA", modeAbsolute, 3, 4},
	0xBD: {"LDA", modeAbsoluteX, 3, 4}, 0xB9: {"LDA", modeAbsoluteY, 3, 4},
	0xA1: {"LDA", modeIndirectX, 2, 6}, 0xB1: {"LDA", modeIndirectY, 2, 5},

	0xA2: {"LDX", modeImmediate, 2, 2}, 0xA6: {"LDX", modeZeroPage, 2, 3},
	0xB6: {"LDX", modeZeroPageY, 2, 4}, 0xAE: {"LDX", modeAbsolute, 3, 4},
	0xBE: {"LDX", modeAbsoluteY, 3, 4},

	0xA0: {"LDY", modeImmediate, 2, 2}, 0xA4: {"LDY", modeZeroPage, 2, 3},
	0xB4: {"LDY", modeZeroPageX, 2, 4}, 0xAC: {"LDY", modeAbsolute, 3, 4},
	0xBC: {"LDY", modeAbsoluteX, 3, 4},

	0x4A: {"LSR", modeAccumulator, 1, 2}, 0x46: {"LSR", modeZeroPage, 2, 5},
	0x56: {"LSR", modeZeroPageX, 2, 6}, 0x4E: {"LSR", modeAbsolute, 3, 6},
	0x5E: {"LSR", modeAbsoluteX, 3, 7},

	0xEA: {"NOP", modeImplied, 1, 2},

	0x09: {"ORA", modeImmediate, 2, 2}, 0x05: {"ORA", modeZeroPage, 2, 3},
	0x15: {"ORA", modeZeroPageX, 2, 4}, 0x0D: {"ORA", modeAbsolute, 3, 4},
	0x1D: {"ORA", modeAbsoluteX, 3, 4}, 0x19: {"ORA", modeAbsoluteY, 3, 4},
	0x01: {"ORA", modeIndirectX, 2, 6}, 0x11: {"ORA", modeIndirectY, 2, 5},

	0x48: {"PHA", modeImplied, 1, 3},
	0x08: {"PHP", modeImplied, 1, 3},
	0x68: {"PLA", modeImplied, 1, 4},
	0x28: {"PLP", modeImplied, 1, 4},

	0x2A: {"ROL", modeAccumulator, 1, 2}, 0x26: {"ROL", modeZeroPage, 2, 5},
	0x36: {"ROL", modeZeroPageX, 2, 6}, 0x2E: {"ROL", modeAbsolute, 3, 6},
	0x3E: {"ROL", modeAbsoluteX, 3, 7},

	0x6A: {"ROR", modeAccumulator, 1, 2}, 0x66: {"ROR", modeZeroPage, 2, 5},
	0x76: {"ROR", modeZeroPageX, 2, 6}, 0x6E: {"ROR", modeAbsolute, 3, 6},
	0x7E: {"ROR", modeAbsoluteX, 3, 7},

	0x40: {"RTI", modeImplied, 1, 6},
	0x60: {"RTS", modeImplied, 1, 6},

	0xE9: {"SBC", modeImmediate, 2, 2}, 0xE5: {"SBC", modeZeroPage, 2, 3},
	0xF5: {"SBC", modeZeroPageX, 2, 4}, 0xED: {"SBC", modeAbsolute, 3, 4},
	0xFD: {"SBC", modeAbsoluteX, 3, 4}, 0xF9: {"SBC", modeAbsoluteY, 3, 4},
	0xE1: {"SBC", modeIndirectX, 2, 6}, 0xF1: {"SBC", modeIndirectY, 2, 5},

	0x38: {"SEC", modeImplied, 1, 2},
	0xF8: {"SED", modeImplied, 1, 2},
	0x78: {"SEI", modeImplied, 1, 2},

	0x85: {"STA", modeZeroPage, 2, 3}, 0x95: {"STA", modeZeroPageX, 2, 4},
	0x8D: {"STA", modeAbsolute, 3, 4}, 0x9D: {"STA", modeAbsoluteX, 3, 5},
	0x99: {"STA", modeAbsoluteY, 3, 5}, 0x81: {"STA", modeIndirectX, 2, 6},
	0x91: {"STA", modeIndirectY, 2, 6},

	0x86: {"STX", modeZeroPage, 2, 3}, 0x96: {"STX", modeZeroPageY, 2, 4},
	0x8E: {"STX", modeAbsolute, 3, 4},

	0x84: {"STY", modeZeroPage, 2, 3}, 0x94: {"STY", modeZeroPageX, 2, 4},
	0x8C: {"STY", modeAbsolute, 3, 4},

	0xAA: {"TAX", modeImplied, 1, 2},
	0xA8: {"TAY", modeImplied, 1, 2},
	0xBA: {"TSX", modeImplied, 1, 2},
	0x8A: {"TXA", modeImplied, 1, 2},
	0x9A: {"TXS", modeImplied, 1, 2},
	0x98: {"TYA", modeImplied, 1, 2},
}
