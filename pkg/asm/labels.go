package asm

import (
	"sort"

	"mini8/pkg/isa"
)

// LabelTable maps label names, case-sensitive as declared, to word
// addresses. It is built by ResolveLabels and cannot be changed afterwards.
type LabelTable struct {
	addrs map[string]int
}

// Address returns the word address of the named label.
func (lt *LabelTable) Address(name string) (int, bool) {
	if lt == nil {
		return 0, false
	}
	addr, ok := lt.addrs[name]
	return addr, ok
}

// Len returns the number of labels.
func (lt *LabelTable) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.addrs)
}

// Symbol is a label and its address.
type Symbol struct {
	Name    string
	Address int
}

// Symbols returns every label ordered by address, then name.
func (lt *LabelTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, lt.Len())
	if lt == nil {
		return syms
	}
	for name, addr := range lt.addrs {
		syms = append(syms, Symbol{Name: name, Address: addr})
	}
	sort.Slice(syms, func(i, j int) bool {
		if syms[i].Address != syms[j].Address {
			return syms[i].Address < syms[j].Address
		}
		return syms[i].Name < syms[j].Name
	})
	return syms
}

// ResolveLabels is the first pass. It walks the lines with a word-address
// counter starting at 0 and records the address of every label declaration.
// A label declared twice is an error at the second declaration.
func ResolveLabels(lines []Line) (*LabelTable, error) {
	lt := &LabelTable{addrs: make(map[string]int)}

	pc := 0
	for _, l := range lines {
		switch l.Token.Kind {
		case Label:
			name := l.Token.Name
			if _, exists := lt.addrs[name]; exists {
				return nil, errorf(l.Number, ErrDuplicateLabel, "duplicate label '%s'", name)
			}
			lt.addrs[name] = pc
		case Instruction:
			pc += wordCount(l.Token.Mnemonic())
		}
	}

	return lt, nil
}

// wordCount returns the size of an instruction in words. Unknown mnemonics
// count as one word; the encoder rejects them before anything is emitted.
func wordCount(mnemonic string) int {
	m, ok := isa.Lookup(mnemonic)
	if !ok {
		return 1
	}
	return m.Words()
}
