package asm

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"mini8/pkg/isa"
)

// Program is the result of a successful assembly.
type Program struct {
	// Words in emission order. A label's address is an index into Words.
	Words []uint16

	Labels   *LabelTable
	Warnings []Warning

	// SourceMap maps the address of the first word of every instruction to
	// its source line number.
	SourceMap map[int]int

	lines []Line
}

// Encode is the second pass. It walks the lines again with a fresh word
// counter and emits each instruction, resolving value operands against the
// labels found by ResolveLabels. Nothing is returned if any line fails.
func Encode(lines []Line, labels *LabelTable) (*Program, error) {
	p := &Program{
		Labels:    labels,
		SourceMap: make(map[int]int),
		lines:     lines,
	}

	for _, l := range lines {
		if l.Token.Kind != Instruction {
			continue
		}

		words, warnings, err := encodeInstruction(l, labels)
		if err != nil {
			return nil, err
		}

		p.SourceMap[len(p.Words)] = l.Number
		p.Words = append(p.Words, words...)
		p.Warnings = append(p.Warnings, warnings...)
	}

	return p, nil
}

func encodeInstruction(l Line, labels *LabelTable) ([]uint16, []Warning, error) {
	name := l.Token.Mnemonic()
	m, ok := isa.Lookup(name)
	if !ok {
		return nil, nil, errorf(l.Number, ErrUnknownMnemonic, "unknown mnemonic '%s'", name)
	}

	ops := l.Token.Operands()
	slots := m.Operands()
	if len(ops) != len(slots) {
		if len(slots) == 0 {
			return nil, nil, errorf(l.Number, ErrOperandCount, "%s expects 0 operands, got %d", m, len(ops))
		}
		return nil, nil, errorf(l.Number, ErrOperandCount, "%s expects %d operand(s) (%s), got %d",
			m, len(slots), m.Signature(), len(ops))
	}

	var regs []uint16
	var values []uint16
	var warnings []Warning

	for i, slot := range slots {
		tok := ops[i]

		if slot.Kind == isa.Register {
			r, ok := parseRegister(tok)
			if !ok {
				return nil, nil, errorf(l.Number, ErrInvalidRegister, "invalid %s '%s' in operand %d of %s",
					slot.Role(), tok, i+1, m)
			}
			regs = append(regs, r)
			continue
		}

		v, err := resolveValue(tok, l.Number, labels)
		if err != nil {
			return nil, nil, err
		}

		masked := uint8(new(big.Int).And(v, byteMask).Uint64())
		if v.Cmp(big.NewInt(int64(masked))) != 0 {
			warnings = append(warnings, Warning{
				Line:      l.Number,
				Role:      slot.Role(),
				Original:  v.String(),
				Truncated: masked,
			})
		}
		values = append(values, uint16(masked))
	}

	words := make([]uint16, 0, m.Words())
	words = append(words, isa.Encode(m, regs...))
	words = append(words, values...)

	return words, warnings, nil
}

// parseRegister accepts R0 to R7 in either case.
func parseRegister(token string) (uint16, bool) {
	if len(token) != 2 || (token[0] != 'R' && token[0] != 'r') {
		return 0, false
	}
	n := token[1]
	if n < '0' || n >= '0'+isa.NumRegisters {
		return 0, false
	}
	return uint16(n - '0'), true
}

var byteMask = big.NewInt(0xFF)

// resolveValue resolves an immediate or address operand. An exact label match
// wins over a numeric reading of the token.
func resolveValue(token string, lineNo int, labels *LabelTable) (*big.Int, error) {
	if addr, ok := labels.Address(token); ok {
		return big.NewInt(int64(addr)), nil
	}

	v, err := parseNumber(token)
	if err == nil {
		return v, nil
	}

	if isIdentifier(token) {
		return nil, errorf(lineNo, ErrUndefinedLabel, "undefined label '%s'", token)
	}

	return nil, errorf(lineNo, ErrInvalidNumber, "%s", err)
}

type numberError struct {
	base  string
	token string
}

func (e numberError) Error() string {
	return "invalid " + e.base + " number '" + e.token + "'"
}

// parseNumber reads a signed decimal or a 0x/0X prefixed hexadecimal number
// of any size. Values wider than int64 are kept exact so they can be masked
// like any other.
func parseNumber(token string) (*big.Int, error) {
	digits, base, name := token, 10, "decimal"
	if len(token) >= 2 && token[0] == '0' && (token[1] == 'x' || token[1] == 'X') {
		digits, base, name = token[2:], 16, "hex"
		if digits == "" || digits[0] == '+' || digits[0] == '-' {
			return nil, numberError{base: name, token: token}
		}
	}

	if v, err := strconv.ParseInt(digits, base, 64); err == nil {
		return big.NewInt(v), nil
	} else if !errors.Is(err, strconv.ErrRange) {
		return nil, numberError{base: name, token: token}
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, numberError{base: name, token: token}
	}
	return v, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

// instructionText is the source of an instruction with comments and
// redundant spacing removed.
func instructionText(t Token) string {
	mnemonic := strings.ToUpper(t.Mnemonic())
	if len(t.Operands()) == 0 {
		return mnemonic
	}
	return mnemonic + " " + strings.Join(t.Operands(), ", ")
}
