package asm

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want Token
	}{
		{"", Token{Kind: Empty}},
		{"   \t  ", Token{Kind: Empty}},
		{"; comment", Token{Kind: Empty}},
		{"# comment", Token{Kind: Empty}},
		{"START:", Token{Kind: Label, Name: "START"}},
		{"  loop :   ; back edge", Token{Kind: Label, Name: "loop"}},
		{"my label:", Token{Kind: Label, Name: "my label"}},
		{":", Token{Kind: Label, Name: ""}},
		{"NOP", Token{Kind: Instruction, Fields: []string{"NOP"}}},
		{"LDI R0, 5", Token{Kind: Instruction, Fields: []string{"LDI", "R0", "5"}}},
		{"  ldi   r3 ,, 10 ; load", Token{Kind: Instruction, Fields: []string{"ldi", "r3", "10"}}},
		{"\tADD R1,R2,R3", Token{Kind: Instruction, Fields: []string{"ADD", "R1", "R2", "R3"}}},
		{"JMP START # forever", Token{Kind: Instruction, Fields: []string{"JMP", "START"}}},
		{"HALT;no space", Token{Kind: Instruction, Fields: []string{"HALT"}}},
		{",JMP,,LOOP,", Token{Kind: Instruction, Fields: []string{"JMP", "LOOP"}}},

		// a label followed by an instruction is not a label line
		{"START: NOP", Token{Kind: Instruction, Fields: []string{"START:", "NOP"}}},

		// the comment is stripped before the label test
		{"DONE: ; end", Token{Kind: Label, Name: "DONE"}},
		{"x ; y:", Token{Kind: Instruction, Fields: []string{"x"}}},
	}

	for _, tc := range tests {
		got := Tokenize(tc.line)
		if got.Kind != tc.want.Kind || got.Name != tc.want.Name {
			t.Errorf("Tokenize(%q) = %v %q; want %v %q", tc.line, got.Kind, got.Name, tc.want.Kind, tc.want.Name)
			continue
		}
		if !reflect.DeepEqual(got.Fields, tc.want.Fields) && !(len(got.Fields) == 0 && len(tc.want.Fields) == 0) {
			t.Errorf("Tokenize(%q) fields = %q; want %q", tc.line, got.Fields, tc.want.Fields)
		}
	}
}

func TestTokenMnemonicAndOperands(t *testing.T) {
	tok := Tokenize("JNZ R1, LOOP")
	if tok.Mnemonic() != "JNZ" {
		t.Errorf("Mnemonic() = %q; want JNZ", tok.Mnemonic())
	}
	if !reflect.DeepEqual(tok.Operands(), []string{"R1", "LOOP"}) {
		t.Errorf("Operands() = %q", tok.Operands())
	}

	tok = Tokenize("HALT")
	if tok.Operands() != nil {
		t.Errorf("Operands() of HALT = %q; want none", tok.Operands())
	}

	tok = Tokenize("")
	if tok.Mnemonic() != "" {
		t.Errorf("Mnemonic() of empty line = %q", tok.Mnemonic())
	}
}

func TestScan(t *testing.T) {
	lines := Scan("START:\r\n  NOP\n\nJMP START\n")

	wantKinds := []Kind{Label, Instruction, Empty, Instruction, Empty}
	if len(lines) != len(wantKinds) {
		t.Fatalf("Scan() returned %d lines; want %d", len(lines), len(wantKinds))
	}
	for i, l := range lines {
		if l.Number != i+1 {
			t.Errorf("line %d numbered %d", i+1, l.Number)
		}
		if l.Token.Kind != wantKinds[i] {
			t.Errorf("line %d kind = %v; want %v", i+1, l.Token.Kind, wantKinds[i])
		}
	}
	if lines[0].Text != "START:" {
		t.Errorf("carriage return not trimmed from %q", lines[0].Text)
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"LDI R0, 1", "LDI R0, 1"},
		{"LDI R0, 1 ; comment", "LDI R0, 1 "},
		{"LDI R0, 1 # comment", "LDI R0, 1 "},
		{"# comment", ""},
		{"; comment", ""},
		{"LDI R0, 1 # first ; second", "LDI R0, 1 "},
	}
	for _, tc := range tests {
		if got := stripComment(tc.input); got != tc.want {
			t.Errorf("stripComment(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
