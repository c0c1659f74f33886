package parser_test

import (
	"testing"

	"github.com/lookbusy1344/aarch64-emulator/parser"
)

func noPatch(t *testing.T) parser.PatchFunc {
	return func(instrAddr uint32, offset int32) error {
		t.Errorf("unexpected patch at 0x%x", instrAddr)
		return nil
	}
}

func TestSymbolTable_BackwardReference(t *testing.T) {
	st := parser.NewSymbolTable()

	if err := st.Define("loop", 8, noPatch(t)); err != nil {
		t.Fatalf("Define: %v", err)
	}

	// Reference from address 16: (8 - 16) / 4 = -2
	if got := st.Reference("loop", 16); got != -2 {
		t.Errorf("Reference = %d, want -2", got)
	}
	if len(st.Undefined()) != 0 {
		t.Error("backward reference should leave nothing pending")
	}
}

func TestSymbolTable_ForwardReferencePatches(t *testing.T) {
	st := parser.NewSymbolTable()

	// Two forward uses before the definition
	if got := st.Reference("end", 0); got != 0 {
		t.Errorf("undefined reference = %d, want 0", got)
	}
	if got := st.Reference("end", 8); got != 0 {
		t.Errorf("undefined reference = %d, want 0", got)
	}

	patches := make(map[uint32]int32)
	err := st.Define("end", 16, func(instrAddr uint32, offset int32) error {
		patches[instrAddr] = offset
		return nil
	})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}

	if patches[0] != 4 || patches[8] != 2 {
		t.Errorf("patches = %v, want {0:4, 8:2}", patches)
	}
	if len(st.Undefined()) != 0 {
		t.Error("pending list should be cleared after definition")
	}
}

func TestSymbolTable_DuplicateDefinition(t *testing.T) {
	st := parser.NewSymbolTable()

	if err := st.Define("x", 0, noPatch(t)); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	if err := st.Define("x", 4, noPatch(t)); err == nil {
		t.Error("duplicate definition should fail")
	}
}

func TestSymbolTable_UndefinedAtEnd(t *testing.T) {
	st := parser.NewSymbolTable()

	st.Reference("missing", 0)
	st.Reference("alsomissing", 4)

	undefined := st.Undefined()
	if len(undefined) != 2 {
		t.Fatalf("Undefined = %v, want 2 entries", undefined)
	}
	// Sorted for stable reporting
	if undefined[0] != "alsomissing" || undefined[1] != "missing" {
		t.Errorf("Undefined = %v", undefined)
	}
}

func TestSymbolTable_Lookup(t *testing.T) {
	st := parser.NewSymbolTable()
	if err := st.Define("here", 12, noPatch(t)); err != nil {
		t.Fatal(err)
	}

	addr, ok := st.Lookup("here")
	if !ok || addr != 12 {
		t.Errorf("Lookup = %d, %v", addr, ok)
	}
	if _, ok := st.Lookup("nowhere"); ok {
		t.Error("Lookup of unknown label should fail")
	}
}
