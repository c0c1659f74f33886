package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/aarch64-emulator/parser"
	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// encodeBranch assembles b, br and b.<cond>. Label displacements
// are PC-relative in instruction units; undefined labels encode zero
// and register a pending patch.
func (e *Encoder) encodeBranch(mnemonic string, operands []string, address uint32) (uint32, error) {
	if err := requireOperands(mnemonic, operands, minBranchOperands); err != nil {
		return 0, err
	}

	switch {
	case mnemonic == "b":
		if !parser.IsLabelLiteral(operands[0]) {
			return 0, fmt.Errorf("b: operand %q is not a label", operands[0])
		}
		offset := e.symbols.Reference(operands[0], address)
		return branchFamily | uint32(offset)&0x3FFFFFF, nil

	case mnemonic == "br":
		xn, err := parser.RegisterIndex(operands[0])
		if err != nil {
			return 0, err
		}
		return branchFamily | branchRegKind | branchRegPattern | uint32(xn)<<5, nil

	case strings.HasPrefix(mnemonic, "b."):
		cond, ok := vm.ParseConditionCode(mnemonic[2:])
		if !ok {
			return 0, fmt.Errorf("unrecognized branch condition %q", mnemonic[2:])
		}
		if !parser.IsLabelLiteral(operands[0]) {
			return 0, fmt.Errorf("%s: operand %q is not a label", mnemonic, operands[0])
		}
		offset := e.symbols.Reference(operands[0], address)
		return branchFamily | branchCondKind | (uint32(offset)&0x7FFFF)<<5 | uint32(cond), nil
	}

	return 0, fmt.Errorf("unknown branch instruction %q", mnemonic)
}
