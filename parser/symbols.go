package parser

import (
	"fmt"
	"sort"
)

// PatchFunc rewrites the displacement field of the already-emitted
// instruction at instrAddr with the now-known offset, in instruction
// units. The assembler supplies it; the symbol table stays ignorant
// of instruction layouts.
type PatchFunc func(instrAddr uint32, offset int32) error

// SymbolTable performs two-pass label resolution. Labels resolve
// immediately when already defined; otherwise the referencing
// instruction address is recorded and patched when the definition
// arrives.
type SymbolTable struct {
	defined map[string]uint32
	pending map[string][]uint32
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		defined: make(map[string]uint32),
		pending: make(map[string][]uint32),
	}
}

// Define records label -> address and patches every pending
// reference. Duplicate definitions are an error.
func (st *SymbolTable) Define(label string, address uint32, patch PatchFunc) error {
	if prev, exists := st.defined[label]; exists {
		return fmt.Errorf("multiple definitions of label %q (0x%x and 0x%x)", label, prev, address)
	}
	st.defined[label] = address

	for _, instrAddr := range st.pending[label] {
		offset := (int32(address) - int32(instrAddr)) / 4
		if err := patch(instrAddr, offset); err != nil {
			return fmt.Errorf("patching reference to %q at 0x%x: %w", label, instrAddr, err)
		}
	}
	delete(st.pending, label)
	return nil
}

// Reference resolves a label use from the instruction at instrAddr.
// If the label is defined the signed offset in instruction units is
// returned; otherwise the use is recorded for later patching and the
// offset is zero.
func (st *SymbolTable) Reference(label string, instrAddr uint32) int32 {
	if address, exists := st.defined[label]; exists {
		return (int32(address) - int32(instrAddr)) / 4
	}
	st.pending[label] = append(st.pending[label], instrAddr)
	return 0
}

// Lookup returns a defined label's address
func (st *SymbolTable) Lookup(label string) (uint32, bool) {
	address, exists := st.defined[label]
	return address, exists
}

// Undefined returns the labels that were referenced but never
// defined, sorted for stable error reporting. It must be empty at
// the end of assembly.
func (st *SymbolTable) Undefined() []string {
	labels := make([]string, 0, len(st.pending))
	for label := range st.pending {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Defined returns all defined labels and their addresses
func (st *SymbolTable) Defined() map[string]uint32 {
	result := make(map[string]uint32, len(st.defined))
	for label, address := range st.defined {
		result[label] = address
	}
	return result
}
