package isa

// NumRegisters is the size of the register file.
const NumRegisters = 8

// field shifts within the opcode word
const (
	opcodeShift = 12
	rdShift     = 9
	rs1Shift    = 6
	rs2Shift    = 3
)

// Encode builds the opcode word for m from its register operands, given in
// source order. The second word of a two-word instruction is the 8-bit value
// itself and is not produced here.
//
// JNZ places its register in the rd field (bits 11..9) while ST uses the rs1
// field (bits 8..6). The decoder in hardware relies on both placements.
func Encode(m Mnemonic, regs ...uint16) uint16 {
	word := m.Opcode() << opcodeShift
	reg := func(i int) uint16 {
		if i >= len(regs) {
			return 0
		}
		return regs[i] & 0x07
	}

	switch m {
	case NOP, HALT, JMP:
	case ADD, SUB, AND, OR:
		word |= reg(0)<<rdShift | reg(1)<<rs1Shift | reg(2)<<rs2Shift
	case LDI, LD, JNZ:
		word |= reg(0) << rdShift
	case ST:
		word |= reg(0) << rs1Shift
	default:
		panic("isa: unhandled mnemonic " + m.String())
	}
	return word
}

// Decode is the inverse of Encode. It returns the mnemonic and its register
// operands in source order. The second return value is false if the opcode
// is not part of the instruction set.
func Decode(word uint16) (Mnemonic, []uint16, bool) {
	m, ok := FromOpcode(word >> opcodeShift)
	if !ok {
		return 0, nil, false
	}

	field := func(shift uint) uint16 {
		return (word >> shift) & 0x07
	}

	switch m {
	case NOP, HALT, JMP:
		return m, nil, true
	case ADD, SUB, AND, OR:
		return m, []uint16{field(rdShift), field(rs1Shift), field(rs2Shift)}, true
	case LDI, LD, JNZ:
		return m, []uint16{field(rdShift)}, true
	case ST:
		return m, []uint16{field(rs1Shift)}, true
	}
	panic("isa: unhandled mnemonic " + m.String())
}
