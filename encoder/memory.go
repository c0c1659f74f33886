package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/aarch64-emulator/parser"
)

// encodeLoadStore assembles ldr and str in all five addressing
// modes: PC-relative literal, zero/unsigned immediate offset,
// register offset, pre-index and post-index.
func (e *Encoder) encodeLoadStore(mnemonic string, operands []string, address uint32) (uint32, error) {
	if err := requireOperands(mnemonic, operands, minTransferOperands); err != nil {
		return 0, err
	}

	rt, err := parser.RegisterIndex(operands[0])
	if err != nil {
		return 0, err
	}

	var sfBit uint32
	if parser.Is64Bit(operands[0]) {
		sfBit = bitDTSf64
	}

	// Load literal: second operand is not an addressing mode
	if len(operands) == 2 && !parser.IsAddressBase(operands[1]) {
		return e.encodeLoadLiteral(mnemonic, operands[1], sfBit|uint32(rt), address)
	}

	word := uint32(dtCommonBits) | sfBit | uint32(rt)
	if mnemonic == "ldr" {
		word |= bitLoad
	}

	xn, err := parser.RegisterIndex(parser.TrimAddressSyntax(operands[1]))
	if err != nil {
		return 0, err
	}
	word |= uint32(xn) << 5

	// Zero offset, "[xn]"
	if len(operands) == 2 {
		return word | bitUnsignedOff, nil
	}

	offset := operands[2]
	switch {
	// Pre-index: "#n]!"
	case parser.IsPreIndexOperand(offset):
		simm9, err := parser.ParseImmediate(parser.TrimAddressSyntax(offset))
		if err != nil {
			return 0, err
		}
		return word | bitPreIndex | bitIndexed | (uint32(simm9)&0x1FF)<<12, nil

	// Post-index: a bare immediate after the closed bracket
	case parser.IsImmediate(offset) && !strings.HasSuffix(offset, "]"):
		simm9, err := parser.ParseImmediate(offset)
		if err != nil {
			return 0, err
		}
		return word | bitIndexed | (uint32(simm9)&0x1FF)<<12, nil

	// Unsigned immediate offset: "#n]", scaled by the access size
	case parser.IsImmediate(offset):
		imm, err := parser.ParseImmediate(parser.TrimAddressSyntax(offset))
		if err != nil {
			return 0, err
		}
		scale := int64(4)
		if sfBit != 0 {
			scale = 8
		}
		return word | bitUnsignedOff | (uint32(imm/scale)&0xFFF)<<10, nil

	// Register offset: "xm]"
	case strings.HasSuffix(offset, "]"):
		xm, err := parser.RegisterIndex(parser.TrimAddressSyntax(offset))
		if err != nil {
			return 0, err
		}
		return word | bitRegOffset | regOffsetPattern | uint32(xm)<<16, nil
	}

	return 0, fmt.Errorf("%s: unknown addressing mode %q", mnemonic, offset)
}

// encodeLoadLiteral assembles the PC-relative literal form. The
// displacement is in instruction units; an undefined label encodes
// zero and registers a pending patch.
func (e *Encoder) encodeLoadLiteral(mnemonic, operand string, base uint32, address uint32) (uint32, error) {
	if mnemonic != "ldr" {
		return 0, fmt.Errorf("%s does not support the literal form", mnemonic)
	}

	word := uint32(dtLiteralBits) | base

	switch {
	case parser.IsImmediate(operand):
		value, err := parser.ParseImmediate(operand)
		if err != nil {
			return 0, err
		}
		return word | (uint32(value/4)&0x7FFFF)<<5, nil

	case parser.IsLabelLiteral(operand):
		offset := e.symbols.Reference(operand, address)
		return word | (uint32(offset)&0x7FFFF)<<5, nil
	}

	return 0, fmt.Errorf("ldr: unknown literal operand %q", operand)
}
