package vm_test

import (
	"encoding/binary"
	"testing"

	"github.com/lookbusy1344/aarch64-emulator/vm"
)

// Hand-built word constructors, written directly from the bit
// layouts. They are deliberately independent of the encoder package
// so the executor tests cross-check both sides.

func immArith(sf, sub, flags bool, rd, rn int, imm12 uint32, shifted bool) uint32 {
	word := uint32(0b100)<<26 | uint32(0b010)<<23
	if sf {
		word |= 1 << 31
	}
	if sub {
		word |= 1 << 30
	}
	if flags {
		word |= 1 << 29
	}
	if shifted {
		word |= 1 << 22
	}
	return word | imm12<<10 | uint32(rn)<<5 | uint32(rd)
}

func wideMove(sf bool, opc uint32, rd int, imm16 uint32, hw uint32) uint32 {
	word := uint32(0b100)<<26 | uint32(0b101)<<23 | opc<<29
	if sf {
		word |= 1 << 31
	}
	return word | hw<<21 | imm16<<5 | uint32(rd)
}

func regArith(sf, sub, flags bool, rd, rn, rm int, shiftType, amount uint32) uint32 {
	word := uint32(0b101)<<25 | 1<<24
	if sf {
		word |= 1 << 31
	}
	if sub {
		word |= 1 << 30
	}
	if flags {
		word |= 1 << 29
	}
	return word | shiftType<<22 | uint32(rm)<<16 | amount<<10 | uint32(rn)<<5 | uint32(rd)
}

func regLogic(sf bool, opc uint32, negate bool, rd, rn, rm int, shiftType, amount uint32) uint32 {
	word := uint32(0b101)<<25 | opc<<29
	if sf {
		word |= 1 << 31
	}
	if negate {
		word |= 1 << 21
	}
	return word | shiftType<<22 | uint32(rm)<<16 | amount<<10 | uint32(rn)<<5 | uint32(rd)
}

func multiply(sf, sub bool, rd, rn, rm, ra int) uint32 {
	word := uint32(0b101)<<25 | 1<<28 | 1<<24
	if sf {
		word |= 1 << 31
	}
	if sub {
		word |= 1 << 15
	}
	return word | uint32(rm)<<16 | uint32(ra)<<10 | uint32(rn)<<5 | uint32(rd)
}

func dtImmOffset(sf64, load bool, rt, xn int, imm12 uint32) uint32 {
	word := uint32(1<<31 | 1<<29 | 1<<28 | 1<<27 | 1<<24)
	if sf64 {
		word |= 1 << 30
	}
	if load {
		word |= 1 << 22
	}
	return word | imm12<<10 | uint32(xn)<<5 | uint32(rt)
}

func dtRegOffset(sf64, load bool, rt, xn, xm int) uint32 {
	word := uint32(1<<31|1<<29|1<<28|1<<27|1<<21) | uint32(0b011010)<<10
	if sf64 {
		word |= 1 << 30
	}
	if load {
		word |= 1 << 22
	}
	return word | uint32(xm)<<16 | uint32(xn)<<5 | uint32(rt)
}

func dtIndexed(sf64, load, pre bool, rt, xn int, simm9 int32) uint32 {
	word := uint32(1<<31 | 1<<29 | 1<<28 | 1<<27 | 1<<10)
	if sf64 {
		word |= 1 << 30
	}
	if load {
		word |= 1 << 22
	}
	if pre {
		word |= 1 << 11
	}
	return word | (uint32(simm9)&0x1FF)<<12 | uint32(xn)<<5 | uint32(rt)
}

func dtLiteral(sf64 bool, rt int, simm19 int32) uint32 {
	word := uint32(1<<28 | 1<<27)
	if sf64 {
		word |= 1 << 30
	}
	return word | (uint32(simm19)&0x7FFFF)<<5 | uint32(rt)
}

func branchUncond(simm26 int32) uint32 {
	return uint32(0b101)<<26 | uint32(simm26)&0x3FFFFFF
}

func branchCond(cond, simm19 uint32) uint32 {
	return uint32(0b101)<<26 | 1<<30 | (simm19&0x7FFFF)<<5 | cond
}

func branchReg(xn int) uint32 {
	return uint32(0b101)<<26 | 3<<30 | uint32(0b1000011111)<<16 | uint32(xn)<<5
}

const halt = vm.HaltInstruction

// loadWords places instruction words at address 0 of a fresh machine
func loadWords(t *testing.T, words []uint32) *vm.VM {
	t.Helper()
	image := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(image[i*4:], w)
	}
	machine := vm.NewVM()
	if err := machine.LoadProgram(image); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	return machine
}

// runProgram executes words until the halt sentinel
func runProgram(t *testing.T, words []uint32) *vm.VM {
	t.Helper()
	machine := loadWords(t, words)
	if err := machine.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if machine.State != vm.StateHalted {
		t.Fatalf("machine state = %v, want halted", machine.State)
	}
	return machine
}

// stepOnce advances one instruction, failing the test on error
func stepOnce(t *testing.T, machine *vm.VM) {
	t.Helper()
	if err := machine.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}
