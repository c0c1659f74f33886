package vm_test

import (
	"testing"

	"github.com/lookbusy1344/aarch64-emulator/vm"
)

func TestZeroRegister_ReadsZero(t *testing.T) {
	cpu := vm.NewCPU()

	if got := cpu.Read64(vm.ZeroRegister); got != 0 {
		t.Errorf("zero register read64 = %d, want 0", got)
	}
	if got := cpu.Read32(vm.ZeroRegister); got != 0 {
		t.Errorf("zero register read32 = %d, want 0", got)
	}
}

func TestZeroRegister_WritesDiscarded(t *testing.T) {
	cpu := vm.NewCPU()

	for _, v := range []uint64{1, 0xFFFFFFFFFFFFFFFF, 42} {
		cpu.Write64(vm.ZeroRegister, v)
		if got := cpu.Read64(vm.ZeroRegister); got != 0 {
			t.Errorf("after writing %#x, zero register = %#x, want 0", v, got)
		}
	}
}

func TestWrite32_ZeroExtends(t *testing.T) {
	cpu := vm.NewCPU()

	cpu.Write64(5, 0xFFFFFFFFFFFFFFFF)
	cpu.Write32(5, 0xDEADBEEF)

	if got := cpu.Read64(5); got != 0xDEADBEEF {
		t.Errorf("after 32-bit write, X5 = %#x, want 0xDEADBEEF", got)
	}
}

func TestRead32_TruncatesUpperBits(t *testing.T) {
	cpu := vm.NewCPU()

	cpu.Write64(3, 0x1234567890ABCDEF)
	if got := cpu.Read32(3); got != 0x90ABCDEF {
		t.Errorf("Read32 = %#x, want 0x90ABCDEF", got)
	}
}

func TestSetSP_Rejected(t *testing.T) {
	cpu := vm.NewCPU()

	if err := cpu.SetSP(0x1000); err == nil {
		t.Error("writing the stack pointer should be rejected")
	}
}

func TestCPU_Reset(t *testing.T) {
	cpu := vm.NewCPU()
	cpu.Write64(0, 99)
	cpu.PC = 0x40
	cpu.PSTATE.N = true

	cpu.Reset()

	if cpu.Read64(0) != 0 || cpu.PC != 0 {
		t.Error("reset should clear registers and PC")
	}
	if cpu.PSTATE != vm.NewPSTATE() {
		t.Errorf("reset PSTATE = %v, want initial state", cpu.PSTATE)
	}
}

func TestInitialPSTATE_OnlyZSet(t *testing.T) {
	p := vm.NewPSTATE()
	if p.N || !p.Z || p.C || p.V {
		t.Errorf("initial PSTATE = %s, want -Z--", p)
	}
}
