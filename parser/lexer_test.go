package parser_test

import (
	"reflect"
	"testing"

	"github.com/lookbusy1344/aarch64-emulator/parser"
)

func TestLexLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want parser.Statement
	}{
		{"empty", "", parser.Statement{Kind: parser.StatementEmpty}},
		{"blank", "   \t ", parser.Statement{Kind: parser.StatementEmpty}},
		{"comment only", "/ this is a comment", parser.Statement{Kind: parser.StatementEmpty}},
		{"label", "loop:", parser.Statement{Kind: parser.StatementLabel, Label: "loop"}},
		{"label with spaces", "  _start:  ", parser.Statement{Kind: parser.StatementLabel, Label: "_start"}},
		{
			"simple instruction",
			"add x0, x1, x2",
			parser.Statement{Kind: parser.StatementInstruction, Mnemonic: "add", Operands: []string{"x0", "x1", "x2"}},
		},
		{
			"trailing comment",
			"movz x0, #5 / set up counter",
			parser.Statement{Kind: parser.StatementInstruction, Mnemonic: "movz", Operands: []string{"x0", "#5"}},
		},
		{
			"addressing mode",
			"ldr x1, [x2, #8]",
			parser.Statement{Kind: parser.StatementInstruction, Mnemonic: "ldr", Operands: []string{"x1", "[x2", "#8]"}},
		},
		{
			"shifted operand",
			"add x0, x1, x2, lsl #3",
			parser.Statement{Kind: parser.StatementInstruction, Mnemonic: "add", Operands: []string{"x0", "x1", "x2", "lsl", "#3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.LexLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LexLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRegisterClassification(t *testing.T) {
	tests := []struct {
		op     string
		isReg  bool
		isZero bool
		is64   bool
		index  int
	}{
		{"x0", true, false, true, 0},
		{"x30", true, false, true, 30},
		{"w5", true, false, false, 5},
		{"xzr", true, true, true, 31},
		{"wzr", true, true, false, 31},
		{"rzr", true, true, false, 31},
		{"#5", false, false, false, -1},
		{"label", false, false, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			if got := parser.IsRegister(tt.op); got != tt.isReg {
				t.Errorf("IsRegister = %v, want %v", got, tt.isReg)
			}
			if got := parser.IsZeroRegister(tt.op); got != tt.isZero {
				t.Errorf("IsZeroRegister = %v, want %v", got, tt.isZero)
			}
			if got := parser.Is64Bit(tt.op); got != tt.is64 {
				t.Errorf("Is64Bit = %v, want %v", got, tt.is64)
			}
			if tt.index >= 0 {
				idx, err := parser.RegisterIndex(tt.op)
				if err != nil || idx != tt.index {
					t.Errorf("RegisterIndex = %d, %v, want %d", idx, err, tt.index)
				}
			}
		})
	}
}

func TestRegisterIndex_Invalid(t *testing.T) {
	for _, op := range []string{"x31", "w99", "x", "r0", "#1", ""} {
		if _, err := parser.RegisterIndex(op); err == nil {
			t.Errorf("RegisterIndex(%q) should fail", op)
		}
	}
}

func TestParseImmediate(t *testing.T) {
	tests := []struct {
		op   string
		want int64
	}{
		{"#5", 5},
		{"#0", 0},
		{"#0x10", 16},
		{"#0xFFFF", 0xFFFF},
		{"#-8", -8},
		{"42", 42},
		{"0xABCD", 0xABCD},
		{"-256", -256},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := parser.ParseImmediate(tt.op)
			if err != nil {
				t.Fatalf("ParseImmediate(%q): %v", tt.op, err)
			}
			if got != tt.want {
				t.Errorf("ParseImmediate(%q) = %d, want %d", tt.op, got, tt.want)
			}
		})
	}

	for _, op := range []string{"#", "#x", "#12abc", ""} {
		if _, err := parser.ParseImmediate(op); err == nil {
			t.Errorf("ParseImmediate(%q) should fail", op)
		}
	}
}

func TestIsLabelLiteral(t *testing.T) {
	valid := []string{"loop", "_start", ".L1", "end$2", "a.b_c"}
	invalid := []string{"", "9lives", "#5", "x0]", "foo-bar"}

	for _, s := range valid {
		if !parser.IsLabelLiteral(s) {
			t.Errorf("IsLabelLiteral(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if parser.IsLabelLiteral(s) {
			t.Errorf("IsLabelLiteral(%q) = true, want false", s)
		}
	}
}

func TestShiftCode(t *testing.T) {
	want := map[string]uint32{"lsl": 0, "lsr": 1, "asr": 2, "ror": 3}
	for name, code := range want {
		got, ok := parser.ShiftCode(name)
		if !ok || got != code {
			t.Errorf("ShiftCode(%q) = %d, %v", name, got, ok)
		}
	}
	if _, ok := parser.ShiftCode("rrx"); ok {
		t.Error("rrx is not a supported shift")
	}
}

func TestAddressSyntaxHelpers(t *testing.T) {
	if !parser.IsAddressBase("[x0") {
		t.Error("[x0 should be an address base")
	}
	if !parser.IsPreIndexOperand("#8]!") {
		t.Error("#8]! should be pre-index")
	}
	if parser.IsPreIndexOperand("#8]") {
		t.Error("#8] is not pre-index")
	}

	tests := map[string]string{
		"[x0":  "x0",
		"[x0]": "x0",
		"#8]":  "#8",
		"#8]!": "#8",
		"x3]":  "x3",
	}
	for in, want := range tests {
		if got := parser.TrimAddressSyntax(in); got != want {
			t.Errorf("TrimAddressSyntax(%q) = %q, want %q", in, got, want)
		}
	}
}
