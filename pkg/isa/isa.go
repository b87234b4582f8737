// Package isa describes the mini8 instruction set: opcodes, operand layout
// and the bit placement of every field in an instruction word.
package isa

import "strings"

// Mnemonic identifies one instruction of the set.
type Mnemonic int

const (
	NOP Mnemonic = iota
	ADD
	SUB
	AND
	OR
	LDI
	LD
	ST
	JMP
	JNZ
	HALT

	numMnemonics
)

// All lists every mnemonic in opcode order.
var All = []Mnemonic{NOP, ADD, SUB, AND, OR, LDI, LD, ST, JMP, JNZ, HALT}

var names = [numMnemonics]string{
	NOP:  "NOP",
	ADD:  "ADD",
	SUB:  "SUB",
	AND:  "AND",
	OR:   "OR",
	LDI:  "LDI",
	LD:   "LD",
	ST:   "ST",
	JMP:  "JMP",
	JNZ:  "JNZ",
	HALT: "HALT",
}

func (m Mnemonic) String() string {
	if m < 0 || m >= numMnemonics {
		return "INVALID"
	}
	return names[m]
}

// Lookup finds a mnemonic by name, ignoring case.
func Lookup(name string) (Mnemonic, bool) {
	upper := strings.ToUpper(name)
	for m, n := range names {
		if n == upper {
			return Mnemonic(m), true
		}
	}
	return 0, false
}

// Opcode returns the 4-bit opcode placed in bits 15..12.
func (m Mnemonic) Opcode() uint16 {
	switch m {
	case NOP:
		return 0x0
	case ADD:
		return 0x1
	case SUB:
		return 0x2
	case AND:
		return 0x3
	case OR:
		return 0x4
	case LDI:
		return 0x5
	case LD:
		return 0x6
	case ST:
		return 0x7
	case JMP:
		return 0x8
	case JNZ:
		return 0x9
	case HALT:
		return 0xF
	}
	panic("isa: unhandled mnemonic " + m.String())
}

// FromOpcode is the inverse of Opcode.
func FromOpcode(opcode uint16) (Mnemonic, bool) {
	for _, m := range All {
		if m.Opcode() == opcode {
			return m, true
		}
	}
	return 0, false
}

// OperandKind says how an operand token is interpreted.
type OperandKind int

const (
	// Register operands are R0..R7.
	Register OperandKind = iota

	// Immediate operands are 8-bit values carried in the second word.
	Immediate

	// Address operands are 8-bit word addresses carried in the second word.
	Address
)

// Operand names one operand slot of an instruction.
type Operand struct {
	Name string
	Kind OperandKind
}

// Role describes the operand for diagnostics.
func (o Operand) Role() string {
	switch o.Kind {
	case Register:
		if o.Name == "rd" {
			return "destination register"
		}
		return "source register"
	case Immediate:
		return "immediate"
	case Address:
		return "address"
	}
	return o.Name
}

var (
	threeRegs = []Operand{{"rd", Register}, {"rs1", Register}, {"rs2", Register}}
	none      = []Operand{}
)

// Operands returns the operand slots in source order.
func (m Mnemonic) Operands() []Operand {
	switch m {
	case NOP, HALT:
		return none
	case ADD, SUB, AND, OR:
		return threeRegs
	case LDI:
		return []Operand{{"rd", Register}, {"imm8", Immediate}}
	case LD:
		return []Operand{{"rd", Register}, {"addr8", Address}}
	case ST:
		return []Operand{{"rs", Register}, {"addr8", Address}}
	case JMP:
		return []Operand{{"addr8", Address}}
	case JNZ:
		return []Operand{{"rs", Register}, {"addr8", Address}}
	}
	panic("isa: unhandled mnemonic " + m.String())
}

// Words returns the number of words the instruction occupies: two when it
// carries an 8-bit value, one otherwise.
func (m Mnemonic) Words() int {
	for _, op := range m.Operands() {
		if op.Kind != Register {
			return 2
		}
	}
	return 1
}

// Signature renders the operand list, eg. "rd, rs1, rs2".
func (m Mnemonic) Signature() string {
	ops := m.Operands()
	s := make([]string, len(ops))
	for i, op := range ops {
		s[i] = op.Name
	}
	return strings.Join(s, ", ")
}
