// Package disasm turns instruction memory images back into mini8 assembly.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"mini8/pkg/isa"
)

// Instruction is one decoded statement.
type Instruction struct {
	Address int
	Words   []uint16

	// Mnemonic is meaningful only when Valid is true. Words that do not
	// decode to an instruction are rendered as a .WORD directive.
	Mnemonic isa.Mnemonic
	Valid    bool

	Text string
}

// Disassemble decodes words starting at address 0. A word the assembler
// could not have produced is emitted as a single .WORD so decoding can
// resync on the next word: an unknown opcode, set reserved bits, a value
// word above 0xFF or a two-word instruction missing its second word.
func Disassemble(words []uint16) []Instruction {
	var out []Instruction

	for pc := 0; pc < len(words); {
		ins := decode(words, pc)
		out = append(out, ins)
		pc += len(ins.Words)
	}

	return out
}

func decode(words []uint16, pc int) Instruction {
	word := words[pc]
	raw := Instruction{
		Address: pc,
		Words:   words[pc : pc+1],
		Text:    fmt.Sprintf(".WORD 0x%04X", word),
	}

	m, regs, ok := isa.Decode(word)
	if !ok || isa.Encode(m, regs...) != word {
		return raw
	}

	n := m.Words()
	if pc+n > len(words) {
		return raw
	}
	if n == 2 && words[pc+1] > 0xFF {
		return raw
	}

	ops := make([]string, 0, len(m.Operands()))
	r := 0
	for _, slot := range m.Operands() {
		switch slot.Kind {
		case isa.Register:
			ops = append(ops, fmt.Sprintf("R%d", regs[r]))
			r++
		case isa.Immediate:
			ops = append(ops, fmt.Sprintf("%d", words[pc+1]))
		case isa.Address:
			ops = append(ops, fmt.Sprintf("0x%02X", words[pc+1]))
		}
	}

	text := m.String()
	if len(ops) > 0 {
		text += " " + strings.Join(ops, ", ")
	}

	return Instruction{
		Address:  pc,
		Words:    words[pc : pc+n],
		Mnemonic: m,
		Valid:    true,
		Text:     text,
	}
}

// Write prints a listing of the instructions: address, words and text.
func Write(w io.Writer, instructions []Instruction) error {
	for _, ins := range instructions {
		hex := make([]string, len(ins.Words))
		for i, word := range ins.Words {
			hex[i] = fmt.Sprintf("%04X", word)
		}
		if _, err := fmt.Fprintf(w, "%04X  %-9s  %s\n", ins.Address, strings.Join(hex, " "), ins.Text); err != nil {
			return err
		}
	}
	return nil
}

// Source renders the instructions as assembler input.
func Source(instructions []Instruction) string {
	var b strings.Builder
	for _, ins := range instructions {
		b.WriteString(ins.Text)
		b.WriteString("\n")
	}
	return b.String()
}
