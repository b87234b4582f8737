package asm

import (
	"strings"
	"unicode"
)

// Kind tags the variant held by a Token.
type Kind int

const (
	Empty Kind = iota
	Label
	Instruction
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Label:
		return "label"
	case Instruction:
		return "instruction"
	}
	return "unknown"
}

// Token is the classified content of one source line. For a Label, Name
// holds the label. For an Instruction, Fields holds the mnemonic followed by
// the operand tokens.
type Token struct {
	Kind   Kind
	Name   string
	Fields []string
}

// Mnemonic returns the first field of an instruction.
func (t Token) Mnemonic() string {
	if len(t.Fields) == 0 {
		return ""
	}
	return t.Fields[0]
}

// Operands returns the fields following the mnemonic.
func (t Token) Operands() []string {
	if len(t.Fields) < 2 {
		return nil
	}
	return t.Fields[1:]
}

// Line is a source line and its token.
type Line struct {
	Number int
	Text   string
	Token  Token
}

// Tokenize classifies a single line of source. It never fails; malformed
// content is reported by the encoder, which knows the line number.
func Tokenize(raw string) Token {
	code := strings.TrimSpace(stripComment(raw))
	if code == "" {
		return Token{Kind: Empty}
	}

	if strings.HasSuffix(code, ":") {
		return Token{Kind: Label, Name: strings.TrimSpace(strings.TrimSuffix(code, ":"))}
	}

	return Token{Kind: Instruction, Fields: strings.FieldsFunc(code, isSeparator)}
}

// Scan splits source into lines and tokenizes each one. Line numbers start
// at 1.
func Scan(source string) []Line {
	raw := strings.Split(source, "\n")
	lines := make([]Line, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		lines[i] = Line{
			Number: i + 1,
			Text:   text,
			Token:  Tokenize(text),
		}
	}
	return lines
}

// comments start with ';' or '#' anywhere on the line
func stripComment(line string) string {
	if cut := strings.IndexAny(line, ";#"); cut >= 0 {
		return line[:cut]
	}
	return line
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
