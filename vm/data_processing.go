package vm

import (
	"fmt"
	"math/bits"
)

// executeDPImmediate handles the data processing (immediate) family:
// arithmetic with a 12-bit immediate, and the wide moves.
func (m *VM) executeDPImmediate(inst Instruction) error {
	switch inst.Opi() {
	case OpiArithmetic:
		m.executeImmArithmetic(inst)
		return nil
	case OpiWideMove:
		m.executeWideMove(inst)
		return nil
	}
	return fmt.Errorf("unknown DP immediate form 0x%08X", uint32(inst))
}

// executeDPRegister handles the data processing (register) family:
// multiply, register arithmetic, and register logic.
func (m *VM) executeDPRegister(inst Instruction) error {
	if inst.IsMultiply() {
		m.executeMultiply(inst)
		return nil
	}
	if inst.RegIsArith() {
		m.executeRegArithmetic(inst)
		return nil
	}
	m.executeRegLogic(inst)
	return nil
}

func (m *VM) executeImmArithmetic(inst Instruction) {
	op2 := uint64(inst.Imm12())
	if inst.Imm12Shifted() {
		op2 <<= 12
	}

	if inst.Sf64() {
		src := m.CPU.Read64(inst.Rn())
		m.applyArithmetic64(src, op2, inst.Rd(), inst.SetsFlags(), inst.IsSubtract())
	} else {
		src := m.CPU.Read32(inst.Rn())
		m.applyArithmetic32(src, uint32(op2), inst.Rd(), inst.SetsFlags(), inst.IsSubtract())
	}
}

func (m *VM) executeRegArithmetic(inst Instruction) {
	if inst.Sf64() {
		op2 := applyShift64(m.CPU.Read64(inst.Rm()), inst.ShiftAmount(), inst.ShiftType())
		src := m.CPU.Read64(inst.Rn())
		m.applyArithmetic64(src, op2, inst.Rd(), inst.SetsFlags(), inst.IsSubtract())
	} else {
		op2 := applyShift32(m.CPU.Read32(inst.Rm()), inst.ShiftAmount(), inst.ShiftType())
		src := m.CPU.Read32(inst.Rn())
		m.applyArithmetic32(src, op2, inst.Rd(), inst.SetsFlags(), inst.IsSubtract())
	}
}

func (m *VM) executeRegLogic(inst Instruction) {
	if inst.Sf64() {
		op2 := applyShift64(m.CPU.Read64(inst.Rm()), inst.ShiftAmount(), inst.ShiftType())
		if inst.NegateOp2() {
			op2 = ^op2
		}
		result := applyLogic64(m.CPU.Read64(inst.Rn()), op2, inst.LogicOpc())
		if inst.LogicOpc() == LogicANDFlags {
			m.CPU.PSTATE = PSTATE{
				N: result&(1<<63) != 0,
				Z: result == 0,
			}
		}
		m.CPU.Write64(inst.Rd(), result)
	} else {
		op2 := applyShift32(m.CPU.Read32(inst.Rm()), inst.ShiftAmount(), inst.ShiftType())
		if inst.NegateOp2() {
			op2 = ^op2
		}
		result := applyLogic32(m.CPU.Read32(inst.Rn()), op2, inst.LogicOpc())
		if inst.LogicOpc() == LogicANDFlags {
			m.CPU.PSTATE = PSTATE{
				N: result&(1<<31) != 0,
				Z: result == 0,
			}
		}
		m.CPU.Write32(inst.Rd(), result)
	}
}

func (m *VM) executeWideMove(inst Instruction) {
	shift := 16 * inst.Hw()

	if inst.WideOpc() == WideMoveK {
		value := m.CPU.Read64(inst.Rd())
		value &= ^(uint64(0xFFFF) << shift)
		value |= inst.Imm16() << shift
		if !inst.Sf64() {
			value &= 0xFFFFFFFF
		}
		m.CPU.Write64(inst.Rd(), value)
		return
	}

	operand := inst.Imm16() << shift
	if inst.WideOpc() == WideMoveN {
		operand = ^operand
	}
	if !inst.Sf64() {
		operand &= 0xFFFFFFFF
	}
	m.CPU.Write64(inst.Rd(), operand)
}

// applyArithmetic64 computes src +/- op2 in the 64-bit domain,
// optionally updating the flags, and writes the result unless the
// destination is the zero register.
func (m *VM) applyArithmetic64(src, op2 uint64, rd int, setFlags, subtract bool) {
	var result uint64
	if subtract {
		result = src - op2
	} else {
		result = src + op2
	}

	if setFlags {
		m.CPU.PSTATE.N = result&(1<<63) != 0
		m.CPU.PSTATE.Z = result == 0
		if subtract {
			// Carry set means no borrow
			m.CPU.PSTATE.C = src >= op2
			m.CPU.PSTATE.V = (src^op2)&(src^result)&(1<<63) != 0
		} else {
			// Carry is the unsigned carry-out of the sum
			m.CPU.PSTATE.C = result < src
			m.CPU.PSTATE.V = ^(src^op2)&(src^result)&(1<<63) != 0
		}
	}

	m.CPU.Write64(rd, result)
}

// applyArithmetic32 is the 32-bit counterpart of applyArithmetic64
func (m *VM) applyArithmetic32(src, op2 uint32, rd int, setFlags, subtract bool) {
	var result uint32
	if subtract {
		result = src - op2
	} else {
		result = src + op2
	}

	if setFlags {
		m.CPU.PSTATE.N = result&(1<<31) != 0
		m.CPU.PSTATE.Z = result == 0
		if subtract {
			m.CPU.PSTATE.C = src >= op2
			m.CPU.PSTATE.V = (src^op2)&(src^result)&(1<<31) != 0
		} else {
			m.CPU.PSTATE.C = result < src
			m.CPU.PSTATE.V = ^(src^op2)&(src^result)&(1<<31) != 0
		}
	}

	m.CPU.Write32(rd, result)
}

func applyShift64(value uint64, amount uint, shiftType uint32) uint64 {
	switch shiftType {
	case ShiftLSL:
		if amount >= 64 {
			return 0
		}
		return value << amount
	case ShiftLSR:
		if amount >= 64 {
			return 0
		}
		return value >> amount
	case ShiftASR:
		if amount >= 64 {
			amount = 63
		}
		return uint64(int64(value) >> amount)
	case ShiftROR:
		return bits.RotateLeft64(value, -int(amount%64))
	}
	return value
}

func applyShift32(value uint32, amount uint, shiftType uint32) uint32 {
	switch shiftType {
	case ShiftLSL:
		if amount >= 32 {
			return 0
		}
		return value << amount
	case ShiftLSR:
		if amount >= 32 {
			return 0
		}
		return value >> amount
	case ShiftASR:
		if amount >= 32 {
			amount = 31
		}
		return uint32(int32(value) >> amount)
	case ShiftROR:
		return bits.RotateLeft32(value, -int(amount%32))
	}
	return value
}

func applyLogic64(src, op2 uint64, opc uint32) uint64 {
	switch opc {
	case LogicOR:
		return src | op2
	case LogicXOR:
		return src ^ op2
	default: // AND, with or without flags
		return src & op2
	}
}

func applyLogic32(src, op2 uint32, opc uint32) uint32 {
	switch opc {
	case LogicOR:
		return src | op2
	case LogicXOR:
		return src ^ op2
	default:
		return src & op2
	}
}
