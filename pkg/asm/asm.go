// Package asm is the two-pass assembler for the mini8 instruction set.
//
// Source is split into lines and each line is classified by Tokenize. The
// first pass, ResolveLabels, assigns a word address to every label. The
// second pass, Encode, replays the same lines and emits the instruction
// words, substituting label addresses for label operands.
//
// Operand values are 8 bits wide. Values outside 0..255 are masked and
// reported as a Warning rather than an error.
package asm

import (
	"fmt"
	"io"
	"strings"
)

// Assemble runs both passes over source.
func Assemble(source string) (*Program, error) {
	lines := Scan(source)

	labels, err := ResolveLabels(lines)
	if err != nil {
		return nil, err
	}

	return Encode(lines, labels)
}

// WriteListing writes one row per source statement: the word address and
// emitted words of each instruction, alongside the line number and source
// text. Label declarations are listed with their address.
func (p *Program) WriteListing(w io.Writer) error {
	addrs := make(map[int]int, len(p.SourceMap))
	for addr, line := range p.SourceMap {
		addrs[line] = addr
	}

	var b strings.Builder
	for _, l := range p.lines {
		switch l.Token.Kind {
		case Label:
			addr, _ := p.Labels.Address(l.Token.Name)
			fmt.Fprintf(&b, "%04X  %-9s  %4d  %s:\n", addr, "", l.Number, l.Token.Name)
		case Instruction:
			addr := addrs[l.Number]
			n := wordCount(l.Token.Mnemonic())
			words := make([]string, 0, n)
			for _, word := range p.Words[addr : addr+n] {
				words = append(words, fmt.Sprintf("%04X", word))
			}
			fmt.Fprintf(&b, "%04X  %-9s  %4d      %s\n", addr, strings.Join(words, " "), l.Number, instructionText(l.Token))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
