package vm

import "fmt"

// Instruction is one 32-bit instruction word. Field accessors below
// define the decode side of every family's bit layout; the encoder
// package builds words from its own bit constants at the same
// positions, and these accessors take them apart again.
type Instruction uint32

// bits extracts the inclusive bit range [hi:lo]
func (i Instruction) bits(hi, lo uint) uint32 {
	return (uint32(i) >> lo) & ((1 << (hi - lo + 1)) - 1)
}

func (i Instruction) bit(n uint) bool {
	return uint32(i)&(1<<n) != 0
}

// SignExtend interprets the low bitLength bits of value as a signed
// integer and widens it to 64 bits.
func SignExtend(value uint64, bitLength uint) int64 {
	shift := 64 - bitLength
	return int64(value<<shift) >> shift
}

// ----- family dispatch -----

// IsBranch reports a branch instruction: bits[28:26] == 101
func (i Instruction) IsBranch() bool {
	return i.bits(28, 26) == 0b101
}

// IsDPImmediate reports data processing (immediate): bits[28:26] == 100
func (i Instruction) IsDPImmediate() bool {
	return i.bits(28, 26) == 0b100
}

// IsDPRegister reports data processing (register): bits[27:25] == 101
func (i Instruction) IsDPRegister() bool {
	return i.bits(27, 25) == 0b101
}

// IsDataTransfer reports a load/store: bit 27 set, bit 25 clear
func (i Instruction) IsDataTransfer() bool {
	return i.bit(27) && !i.bit(25)
}

// ----- shared data processing fields -----

// Sf64 reports 64-bit operation width (the sf bit of DP families)
func (i Instruction) Sf64() bool { return i.bit(31) }

// SetsFlags reports the flag-setting opcode variant of arithmetic
func (i Instruction) SetsFlags() bool { return i.bit(29) }

// IsSubtract distinguishes subtraction from addition
func (i Instruction) IsSubtract() bool { return i.bit(30) }

// Rd is the destination register field
func (i Instruction) Rd() int { return int(i.bits(4, 0)) }

// Rn is the first source register field
func (i Instruction) Rn() int { return int(i.bits(9, 5)) }

// Rm is the second source register field
func (i Instruction) Rm() int { return int(i.bits(20, 16)) }

// ----- data processing (immediate) -----

// Opi discriminator values within the DP immediate family
const (
	OpiArithmetic = 0b010
	OpiWideMove   = 0b101
)

// Opi is the DP immediate sub-family discriminator, bits[25:23]
func (i Instruction) Opi() uint32 { return i.bits(25, 23) }

// Imm12 is the 12-bit unsigned immediate
func (i Instruction) Imm12() uint32 { return i.bits(21, 10) }

// Imm12Shifted reports the sh bit: imm12 left-shifted by 12
func (i Instruction) Imm12Shifted() bool { return i.bit(22) }

// Wide move opc values
const (
	WideMoveN = 0
	WideMoveZ = 2
	WideMoveK = 3
)

// WideOpc selects MOVN/MOVZ/MOVK, bits[30:29]
func (i Instruction) WideOpc() uint32 { return i.bits(30, 29) }

// Imm16 is the wide move immediate
func (i Instruction) Imm16() uint64 { return uint64(i.bits(20, 5)) }

// Hw is the wide move half-word shift selector (shift = hw*16)
func (i Instruction) Hw() uint { return uint(i.bits(22, 21)) }

// ----- data processing (register) -----

// IsMultiply reports the M bit of the DP register family
func (i Instruction) IsMultiply() bool { return i.bit(28) }

// RegIsArith distinguishes register arithmetic (1) from logic (0)
func (i Instruction) RegIsArith() bool { return i.bit(24) }

// Shift encodings for operand2
const (
	ShiftLSL = 0
	ShiftLSR = 1
	ShiftASR = 2
	ShiftROR = 3
)

// ShiftType is the operand2 shift kind, bits[23:22]
func (i Instruction) ShiftType() uint32 { return i.bits(23, 22) }

// ShiftAmount is the operand2 shift amount, bits[15:10]
func (i Instruction) ShiftAmount() uint { return uint(i.bits(15, 10)) }

// Logic opcodes, bits[30:29] of register logic
const (
	LogicAND      = 0
	LogicOR       = 1
	LogicXOR      = 2
	LogicANDFlags = 3
)

// LogicOpc selects the logical operation
func (i Instruction) LogicOpc() uint32 { return i.bits(30, 29) }

// NegateOp2 reports the N bit: operand2 is bitwise inverted
func (i Instruction) NegateOp2() bool { return i.bit(21) }

// Ra is the multiply accumulator register field
func (i Instruction) Ra() int { return int(i.bits(14, 10)) }

// MultiplySub reports the x bit: msub rather than madd
func (i Instruction) MultiplySub() bool { return i.bit(15) }

// ----- data transfer -----

// DTSf64 reports 64-bit transfer width (the sf bit of the DT family
// sits at bit 30, not 31)
func (i Instruction) DTSf64() bool { return i.bit(30) }

// IsLoadLiteral reports the PC-relative literal form (bit 31 clear)
func (i Instruction) IsLoadLiteral() bool { return !i.bit(31) }

// IsLoad distinguishes load (1) from store (0)
func (i Instruction) IsLoad() bool { return i.bit(22) }

// Rt is the transfer register field
func (i Instruction) Rt() int { return int(i.bits(4, 0)) }

// Xn is the base register field (also the target of register branches)
func (i Instruction) Xn() int { return int(i.bits(9, 5)) }

// Xm is the offset register field of the register offset form
func (i Instruction) Xm() int { return int(i.bits(20, 16)) }

// IsImmOffset reports the unsigned immediate offset form (U bit)
func (i Instruction) IsImmOffset() bool { return i.bit(24) }

// IsRegOffset reports the register offset form
func (i Instruction) IsRegOffset() bool { return i.bit(21) }

// IsPreIndex distinguishes pre-index (1) from post-index (0)
func (i Instruction) IsPreIndex() bool { return i.bit(11) }

// Simm9 is the sign-extended pre/post-index offset
func (i Instruction) Simm9() int64 { return SignExtend(uint64(i.bits(20, 12)), 9) }

// Simm19 is the sign-extended 19-bit displacement (conditional
// branches and load literal), in instruction units
func (i Instruction) Simm19() int64 { return SignExtend(uint64(i.bits(23, 5)), 19) }

// ----- branches -----

// Branch kind discriminator, bits[31:30]
const (
	BranchUnconditional = 0
	BranchConditional   = 1
	BranchRegister      = 3
)

// BranchKind selects the branch form
func (i Instruction) BranchKind() uint32 { return i.bits(31, 30) }

// Simm26 is the sign-extended 26-bit displacement of unconditional
// branches, in instruction units
func (i Instruction) Simm26() int64 { return SignExtend(uint64(i.bits(25, 0)), 26) }

// Cond is the condition code of conditional branches
func (i Instruction) Cond() ConditionCode { return ConditionCode(i.bits(3, 0)) }

// ----- label patching -----

func (i Instruction) withBits(hi, lo uint, value uint32) Instruction {
	mask := uint32((1<<(hi-lo+1))-1) << lo
	return Instruction(uint32(i)&^mask | (value << lo & mask))
}

// PatchDisplacement rewrites the PC-relative displacement field of a
// forward-referencing instruction once its label address is known.
// Exactly three carriers exist: the simm26 of an unconditional
// branch, the simm19 of a conditional branch, and the simm19 of a
// load literal. Any other word is a bug in the caller.
func (i Instruction) PatchDisplacement(offset int32) (Instruction, error) {
	if i.IsBranch() {
		switch i.BranchKind() {
		case BranchUnconditional:
			return i.withBits(25, 0, uint32(offset)), nil
		case BranchConditional:
			return i.withBits(23, 5, uint32(offset)), nil
		}
	}
	if i.IsDataTransfer() && i.IsLoadLiteral() {
		return i.withBits(23, 5, uint32(offset)), nil
	}
	return i, fmt.Errorf("instruction 0x%08X has no PC-relative displacement field", uint32(i))
}
