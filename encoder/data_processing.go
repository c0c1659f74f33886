package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/aarch64-emulator/parser"
)

// encodeAddSub assembles add, adds, sub, subs in both the immediate
// and the shifted-register forms
func (e *Encoder) encodeAddSub(mnemonic string, operands []string) (uint32, error) {
	if err := requireOperands(mnemonic, operands, minAddSubOperands); err != nil {
		return 0, err
	}

	var word uint32
	if operandWidth64(operands) {
		word |= bitSf64
	}
	if strings.HasPrefix(mnemonic, "sub") {
		word |= bitSubtract
	}
	if strings.HasSuffix(mnemonic, "s") {
		word |= bitSetFlags
	}

	rd, err := parser.RegisterIndex(operands[0])
	if err != nil {
		return 0, err
	}
	rn, err := parser.RegisterIndex(operands[1])
	if err != nil {
		return 0, err
	}
	word |= uint32(rd) | uint32(rn)<<5

	if parser.IsImmediate(operands[2]) {
		word |= dpImmFamily | opiArithmetic

		imm, err := parser.ParseImmediate(operands[2])
		if err != nil {
			return 0, err
		}
		word |= (uint32(imm) & 0xFFF) << 10

		// Optional "lsl #12" moves the immediate to the upper half
		if len(operands) >= 5 {
			amount, err := parser.ParseImmediate(operands[4])
			if err != nil {
				return 0, err
			}
			if amount != 0 {
				word |= bitImm12Shift
			}
		}
		return word, nil
	}

	word |= dpRegFamily | bitRegArith
	rm, err := parser.RegisterIndex(operands[2])
	if err != nil {
		return 0, err
	}
	word |= uint32(rm) << 16

	shift, err := shiftFields(mnemonic, operands)
	if err != nil {
		return 0, err
	}
	return word | shift, nil
}

// encodeLogic assembles and, ands, bic, bics, orr, orn, eor, eon
func (e *Encoder) encodeLogic(mnemonic string, operands []string) (uint32, error) {
	if err := requireOperands(mnemonic, operands, minLogicOperands); err != nil {
		return 0, err
	}

	word := uint32(dpRegFamily)
	if operandWidth64(operands) {
		word |= bitSf64
	}

	switch mnemonic {
	case "and", "bic":
		word |= opcAND
	case "orr", "orn":
		word |= opcOR
	case "eor", "eon":
		word |= opcXOR
	case "ands", "bics":
		word |= opcANDFlags
	}

	switch mnemonic {
	case "bic", "bics", "orn", "eon":
		word |= bitNegateOp2
	}

	rd, err := parser.RegisterIndex(operands[0])
	if err != nil {
		return 0, err
	}
	rn, err := parser.RegisterIndex(operands[1])
	if err != nil {
		return 0, err
	}
	rm, err := parser.RegisterIndex(operands[2])
	if err != nil {
		return 0, err
	}
	word |= uint32(rd) | uint32(rn)<<5 | uint32(rm)<<16

	shift, err := shiftFields(mnemonic, operands)
	if err != nil {
		return 0, err
	}
	return word | shift, nil
}

// encodeWideMove assembles movn, movz, movk with an optional
// "lsl #<n>" half-word shift
func (e *Encoder) encodeWideMove(mnemonic string, operands []string) (uint32, error) {
	if err := requireOperands(mnemonic, operands, minWideMoveOperands); err != nil {
		return 0, err
	}

	word := uint32(dpImmFamily | opiWideMove)
	if operandWidth64(operands) {
		word |= bitSf64
	}

	switch mnemonic {
	case "movn":
		word |= opcMovn
	case "movz":
		word |= opcMovz
	case "movk":
		word |= opcMovk
	}

	rd, err := parser.RegisterIndex(operands[0])
	if err != nil {
		return 0, err
	}
	imm, err := parser.ParseImmediate(operands[1])
	if err != nil {
		return 0, err
	}
	word |= uint32(rd) | (uint32(imm)&0xFFFF)<<5

	if len(operands) >= 4 {
		if operands[2] != "lsl" {
			return 0, fmt.Errorf("%s: unrecognized shift %q", mnemonic, operands[2])
		}
		amount, err := parser.ParseImmediate(operands[3])
		if err != nil {
			return 0, err
		}
		if amount%16 != 0 || amount < 0 || amount > 48 {
			return 0, fmt.Errorf("%s: invalid wide move shift #%d", mnemonic, amount)
		}
		word |= uint32(amount/16) << 21
	}

	return word, nil
}

// encodeMultiply assembles madd and msub
func (e *Encoder) encodeMultiply(mnemonic string, operands []string) (uint32, error) {
	if err := requireOperands(mnemonic, operands, minMultiplyOperands); err != nil {
		return 0, err
	}

	word := uint32(dpRegFamily | bitMultiply | bitRegArith)
	if operandWidth64(operands) {
		word |= bitSf64
	}
	if mnemonic == "msub" {
		word |= bitMultiplySub
	}

	rd, err := parser.RegisterIndex(operands[0])
	if err != nil {
		return 0, err
	}
	rn, err := parser.RegisterIndex(operands[1])
	if err != nil {
		return 0, err
	}
	rm, err := parser.RegisterIndex(operands[2])
	if err != nil {
		return 0, err
	}
	ra, err := parser.RegisterIndex(operands[3])
	if err != nil {
		return 0, err
	}

	return word | uint32(rd) | uint32(rn)<<5 | uint32(ra)<<10 | uint32(rm)<<16, nil
}
