package asm

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveLabels(t *testing.T) {
	code := `
; Line 2: Comment
LDI R0, 10      ; Line 3: 2 words (0-1)
                ; Line 4: Empty
LABEL:          ; Line 5: Label at 2
ADD R0, R1, R2  ; Line 6: 1 word (2)
BOGUS R0        ; Line 7: unknown, counted as 1 word (3)
after:          ; Line 8: Label at 4
Twice:          ; Line 9: second label at the same address
JMP LABEL       ; Line 10: 2 words (4-5)
end:            ; Line 11: Label at 6
`
	labels, err := ResolveLabels(Scan(code))
	if err != nil {
		t.Fatalf("ResolveLabels failed: %v", err)
	}

	want := []Symbol{
		{"LABEL", 2},
		{"Twice", 4},
		{"after", 4},
		{"end", 6},
	}
	if got := labels.Symbols(); !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols() = %v; want %v", got, want)
	}
	if labels.Len() != 4 {
		t.Errorf("Len() = %d; want 4", labels.Len())
	}
	if _, ok := labels.Address("label"); ok {
		t.Errorf("Address(\"label\") found; labels are case sensitive")
	}
}

func TestResolveLabelsDuplicate(t *testing.T) {
	_, err := ResolveLabels(Scan("A:\nNOP\nB:\nHALT\nA:\n"))
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Fatalf("ResolveLabels() error = %v; want ErrDuplicateLabel", err)
	}

	var asmErr *Error
	if !errors.As(err, &asmErr) || asmErr.Line != 5 {
		t.Errorf("duplicate reported on wrong line: %v", err)
	}
}

func TestNilLabelTable(t *testing.T) {
	var lt *LabelTable
	if _, ok := lt.Address("X"); ok {
		t.Errorf("nil table found a label")
	}
	if lt.Len() != 0 || len(lt.Symbols()) != 0 {
		t.Errorf("nil table is not empty")
	}

	// without labels only numeric operands resolve
	p, err := Encode(Scan("JMP 7"), nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !reflect.DeepEqual(p.Words, []uint16{0x8000, 7}) {
		t.Errorf("Encode() = %04X", p.Words)
	}
}

func TestAssembleSourceMap(t *testing.T) {
	code := `
; Line 2: Comment
LDI R0, 10      ; Line 3: words 0-1
                ; Line 4: Empty
LABEL:          ; Line 5: Label
ADD R0, R1, R2  ; Line 6: word 2, where LABEL points
ST R0, LABEL    ; Line 7: words 3-4
HALT            ; Line 8: word 5
`
	p, err := Assemble(code)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := map[int]int{
		0: 3,
		2: 6,
		3: 7,
		5: 8,
	}
	if !reflect.DeepEqual(p.SourceMap, want) {
		t.Errorf("SourceMap = %v; want %v", p.SourceMap, want)
	}
}

// the address trace of pass one must be reproduced by pass two
func TestPassesAgree(t *testing.T) {
	lines := Scan(largeProgram)

	labels, err := ResolveLabels(lines)
	if err != nil {
		t.Fatalf("ResolveLabels failed: %v", err)
	}
	p, err := Encode(lines, labels)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	pc := 0
	for _, l := range lines {
		if l.Token.Kind != Instruction {
			continue
		}
		if p.SourceMap[pc] != l.Number {
			t.Fatalf("line %d: pass one address %d holds line %d", l.Number, pc, p.SourceMap[pc])
		}
		pc += wordCount(l.Token.Mnemonic())
	}
	if pc != len(p.Words) {
		t.Errorf("pass one counted %d words; pass two emitted %d", pc, len(p.Words))
	}
}
