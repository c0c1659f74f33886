package encoder

import (
	"fmt"
	"strings"

	"github.com/lookbusy1344/aarch64-emulator/parser"
)

// Encoder converts canonical statements into 32-bit machine words.
// Aliases must be expanded before encoding. Label operands resolve
// through the symbol table; undefined labels encode a zero
// displacement and register a pending patch.
type Encoder struct {
	symbols *parser.SymbolTable
}

// New creates an encoder over the given symbol table
func New(symbols *parser.SymbolTable) *Encoder {
	return &Encoder{symbols: symbols}
}

// Encode assembles one canonical instruction at the given byte
// address and returns its 32-bit word.
func (e *Encoder) Encode(mnemonic string, operands []string, address uint32) (uint32, error) {
	switch mnemonic {
	case ".int":
		return e.encodeIntDirective(operands)

	case "add", "adds", "sub", "subs":
		return e.encodeAddSub(mnemonic, operands)

	case "madd", "msub":
		return e.encodeMultiply(mnemonic, operands)

	case "and", "ands", "bic", "bics", "orr", "orn", "eor", "eon":
		return e.encodeLogic(mnemonic, operands)

	case "movn", "movz", "movk":
		return e.encodeWideMove(mnemonic, operands)

	case "ldr", "str":
		return e.encodeLoadStore(mnemonic, operands, address)

	case "b", "br":
		return e.encodeBranch(mnemonic, operands, address)
	}

	if strings.HasPrefix(mnemonic, "b.") {
		return e.encodeBranch(mnemonic, operands, address)
	}

	return 0, fmt.Errorf("unknown instruction %q", mnemonic)
}

// encodeIntDirective emits the raw word of ".int <imm>"
func (e *Encoder) encodeIntDirective(operands []string) (uint32, error) {
	if err := requireOperands(".int", operands, 1); err != nil {
		return 0, err
	}
	value, err := parser.ParseImmediate(operands[0])
	if err != nil {
		return 0, err
	}
	return uint32(value), nil
}

// requireOperands checks the family's minimum operand count
func requireOperands(mnemonic string, operands []string, required int) error {
	if len(operands) < required {
		return fmt.Errorf("%s requires %d operands, got %d", mnemonic, required, len(operands))
	}
	return nil
}

// operandWidth64 selects the sf bit source: the first operand,
// unless it is the zero register, in which case the second.
func operandWidth64(operands []string) bool {
	if parser.IsZeroRegister(operands[0]) && len(operands) > 1 {
		return parser.Is64Bit(operands[1])
	}
	return parser.Is64Bit(operands[0])
}

// shiftFields encodes an optional trailing "<kind> #<amount>" shift
// into the type and amount fields of a register-operand form
func shiftFields(mnemonic string, operands []string) (uint32, error) {
	if len(operands) < 5 {
		return 0, nil
	}
	code, ok := parser.ShiftCode(operands[3])
	if !ok {
		return 0, fmt.Errorf("%s: unrecognized shift %q", mnemonic, operands[3])
	}
	amount, err := parser.ParseImmediate(operands[4])
	if err != nil {
		return 0, err
	}
	return code<<22 | (uint32(amount)&0x3F)<<10, nil
}
